package dp

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/tabular/environment/gridworld"
	"github.com/samuelfneumann/tabular/utils/floatutils"
	"gonum.org/v1/gonum/mat"
)

// Policy maps every non-terminal cell to a single action
type Policy map[gridworld.Cell]gridworld.Action

// Improve returns the policy that is greedy with respect to the state
// values V. Ties are broken in the order of gridworld.Actions.
func (e *Evaluator) Improve(V mat.Matrix) Policy {
	policy := make(Policy)
	for _, cell := range e.model.States() {
		values := e.ActionValues(V, cell)
		policy[cell] = gridworld.Actions[floatutils.ArgMax(values)]
	}
	return policy
}

// ActionValues returns the one-step lookahead value of every action in
// cell, in the order of gridworld.Actions
func (e *Evaluator) ActionValues(V mat.Matrix, cell gridworld.Cell) []float64 {
	r, c := e.model.Dims()
	if vr, vc := V.Dims(); vr != r || vc != c {
		panic(fmt.Sprintf("actionValues: values have shape (%d, %d), grid "+
			"has shape (%d, %d)", vr, vc, r, c))
	}

	values := make([]float64, len(gridworld.Actions))
	for i, a := range gridworld.Actions {
		values[i] = e.backup(V, cell, a)
	}
	return values
}

// Format returns the policy as a grid of arrows, with terminal cells
// and cells missing from the policy marked by a dot
func (p Policy) Format(r, c int) string {
	var b strings.Builder
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			a, ok := p[gridworld.Cell{Row: i, Col: j}]
			if !ok {
				b.WriteString("·")
				continue
			}
			b.WriteString(Arrow(a))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Arrow returns the arrow pointing in the direction of a
func Arrow(a gridworld.Action) string {
	switch a {
	case gridworld.Up:
		return "↑"
	case gridworld.Down:
		return "↓"
	case gridworld.Left:
		return "←"
	case gridworld.Right:
		return "→"
	}
	return "?"
}
