package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter samples one of a finite number of candidate
// starting vectors from a categorical distribution
type CategoricalStarter struct {
	candidates []mat.Vector
	rand       distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter which samples
// candidates[i] with probability proportional to weights[i]
func NewCategoricalStarter(candidates []mat.Vector, weights []float64,
	src rand.Source) (CategoricalStarter, error) {
	if len(candidates) == 0 {
		return CategoricalStarter{}, fmt.Errorf("newCategoricalStarter: " +
			"no candidate start states")
	}
	if len(candidates) != len(weights) {
		return CategoricalStarter{}, fmt.Errorf("newCategoricalStarter: "+
			"%d candidates but %d weights", len(candidates), len(weights))
	}

	return CategoricalStarter{candidates, distuv.NewCategorical(weights, src)},
		nil
}

// NewUniformCategoricalStarter returns a new CategoricalStarter which
// samples each candidate with equal probability
func NewUniformCategoricalStarter(candidates []mat.Vector,
	src rand.Source) (CategoricalStarter, error) {
	weights := make([]float64, len(candidates))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}
	return NewCategoricalStarter(candidates, weights, src)
}

// Start returns a starting vector
func (c CategoricalStarter) Start() mat.Vector {
	return c.candidates[int(c.rand.Rand())]
}
