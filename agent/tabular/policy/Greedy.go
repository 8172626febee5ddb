package policy

import (
	"github.com/samuelfneumann/tabular/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Greedy always selects the entry with the largest action value
type Greedy struct{}

// NewGreedy creates a new Greedy policy
func NewGreedy() Greedy {
	return Greedy{}
}

// SelectAction selects the first entry with maximal action value
func (Greedy) SelectAction(q mat.Matrix) (int, int) {
	return matutils.ArgMax(q)
}
