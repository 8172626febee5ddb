package environment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/tabular/timestep"
)

func TestSpecCheck(t *testing.T) {
	s := NewSpec(Action, 4)
	require.True(t, s.Contains(0))
	require.True(t, s.Contains(3))
	require.False(t, s.Contains(4))
	require.False(t, s.Contains(-1))

	require.NoError(t, s.Check("step", 2))

	err := s.Check("step", 7)
	require.Error(t, err)
	require.True(t, IsInvalidIndex(err))
	require.True(t, errors.Is(err, ErrInvalidIndex))

	var indexErr *IndexError
	require.True(t, errors.As(err, &indexErr))
	require.Equal(t, 7, indexErr.Index)
	require.Equal(t, 4, indexErr.Bound)
	require.Contains(t, err.Error(), "Action index 7")

	require.Panics(t, func() { NewSpec(Observation, 0) })
}

func TestIsInvalidIndexOther(t *testing.T) {
	require.False(t, IsInvalidIndex(errors.New("other")))
	require.False(t, IsInvalidIndex(nil))
}

func TestUniformStarter(t *testing.T) {
	bounds := RepeatInterval(r1.Interval{Min: 2, Max: 3}, 15)
	require.Len(t, bounds, 15)

	s := NewUniformStarter(bounds, 11)
	for i := 0; i < 20; i++ {
		v := s.Start()
		require.Equal(t, 15, v.Len())
		for j := 0; j < v.Len(); j++ {
			require.GreaterOrEqual(t, v.AtVec(j), 2.0)
			require.LessOrEqual(t, v.AtVec(j), 3.0)
		}
	}

	// Same seed gives the same samples
	a := NewUniformStarter(bounds, 3).Start()
	b := NewUniformStarter(bounds, 3).Start()
	require.True(t, mat.Equal(a, b))
}

func TestCategoricalStarter(t *testing.T) {
	candidates := []mat.Vector{
		mat.NewVecDense(1, []float64{0}),
		mat.NewVecDense(1, []float64{1}),
		mat.NewVecDense(1, []float64{2}),
	}

	// Zero weight candidates are never sampled
	s, err := NewCategoricalStarter(candidates, []float64{0, 1, 0},
		rand.NewSource(1))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		require.Equal(t, 1.0, s.Start().AtVec(0))
	}

	u, err := NewUniformCategoricalStarter(candidates, rand.NewSource(5))
	require.NoError(t, err)
	seen := make(map[float64]bool)
	for i := 0; i < 200; i++ {
		seen[u.Start().AtVec(0)] = true
	}
	require.Len(t, seen, 3)

	_, err = NewCategoricalStarter(candidates, []float64{1}, rand.NewSource(1))
	require.Error(t, err)
	_, err = NewUniformCategoricalStarter(nil, rand.NewSource(1))
	require.Error(t, err)
}

func TestStepLimit(t *testing.T) {
	obs := mat.NewVecDense(1, nil)
	limit := NewStepLimit(3)

	step, done := limit.End(timestep.New(timestep.Mid, -1, 1, obs, 2))
	require.False(t, done)
	require.True(t, step.Mid())

	step, done = limit.End(timestep.New(timestep.Mid, -1, 1, obs, 3))
	require.True(t, done)
	require.True(t, step.Last())
	require.Equal(t, -1.0, step.Reward)

	_, done = limit.End(timestep.New(timestep.Last, 0, 1, obs, 1))
	require.True(t, done)
}
