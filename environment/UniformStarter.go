package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples vectors uniformly at random within a bounded
// box, with one interval per dimension
type UniformStarter struct {
	features int
	rand     *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter over bounds
func NewUniformStarter(bounds []r1.Interval, seed uint64) UniformStarter {
	source := rand.NewSource(seed)
	rand := distmv.NewUniform(bounds, source)

	return UniformStarter{len(bounds), rand}
}

// RepeatInterval returns n copies of bounds, for sampling n
// identically distributed dimensions with a UniformStarter
func RepeatInterval(bounds r1.Interval, n int) []r1.Interval {
	intervals := make([]r1.Interval, n)
	for i := range intervals {
		intervals[i] = bounds
	}
	return intervals
}

// Start returns a starting vector
func (u UniformStarter) Start() mat.Vector {
	return mat.NewVecDense(u.features, u.rand.Rand(nil))
}
