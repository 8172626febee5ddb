package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/tabular/environment"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// SingleStart starts every episode in the same cell
type SingleStart struct {
	state *mat.VecDense
}

// NewSingleStart returns a new SingleStart starting in cell
func NewSingleStart(cell Cell) SingleStart {
	return SingleStart{cellVec(cell)}
}

// Start returns the starting cell as a (row, column) vector
func (s SingleStart) Start() mat.Vector {
	return mat.VecDenseCopyOf(s.state)
}

// NewUniformStart returns a Starter which samples uniformly over the
// given cells
func NewUniformStart(cells []Cell, seed uint64) (environment.Starter, error) {
	candidates := make([]mat.Vector, len(cells))
	for i, cell := range cells {
		candidates[i] = cellVec(cell)
	}
	return environment.NewUniformCategoricalStarter(candidates,
		rand.NewSource(seed))
}

// WithUniformStart starts every episode in a cell sampled uniformly
// over the non-terminal cells of the GridWorld
func WithUniformStart(seed uint64) Option {
	return func(g *GridWorld) {
		s, err := NewUniformStart(g.States(), seed)
		if err != nil {
			panic(fmt.Sprintf("withUniformStart: %v", err))
		}
		g.Starter = s
	}
}
