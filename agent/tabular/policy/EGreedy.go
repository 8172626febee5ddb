package policy

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// EGreedy implements an ε-greedy policy. With probability ε it
// explores by selecting an entry uniformly at random, otherwise it
// selects greedily.
type EGreedy struct {
	epsilon float64
	rng     *rand.Rand
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random entry is selected
func NewEGreedy(e float64, src rand.Source) *EGreedy {
	return &EGreedy{e, rand.New(src)}
}

// Epsilon returns the exploration probability
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SelectAction selects an entry of q from an ε-greedy policy
func (p *EGreedy) SelectAction(q mat.Matrix) (int, int) {
	if p.rng.Float64() < p.epsilon {
		r, c := q.Dims()
		return p.rng.Intn(r), p.rng.Intn(c)
	}
	return matutils.ArgMax(q)
}
