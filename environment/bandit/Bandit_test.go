package bandit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/tabular/environment"
)

func TestNewDrawsMeansInInterval(t *testing.T) {
	b, err := New(5, 3, 1.0, DefaultMeans, 42)
	require.NoError(t, err)

	m, n := b.Dims()
	require.Equal(t, 5, m)
	require.Equal(t, 3, n)

	means := b.Means()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			require.GreaterOrEqual(t, means.At(i, j), 0.0)
			require.LessOrEqual(t, means.At(i, j), 10.0)
		}
	}

	// Means are a copy
	means.Set(0, 0, 1000)
	require.NotEqual(t, 1000.0, b.Means().At(0, 0))
}

func TestNewInvalid(t *testing.T) {
	_, err := New(0, 3, 1, DefaultMeans, 1)
	require.Error(t, err)

	_, err = New(2, 3, 0, DefaultMeans, 1)
	require.Error(t, err)

	_, err = New(2, 3, 1, r1.Interval{Min: 3, Max: 1}, 1)
	require.Error(t, err)
}

func TestPullStatistics(t *testing.T) {
	means := mat.NewDense(2, 2, []float64{1, 4, -2, 7})
	b, err := NewWithMeans(means, 0.5, 9)
	require.NoError(t, err)

	const pulls = 20000
	samples := make([]float64, pulls)
	for i := range samples {
		samples[i], err = b.Pull(1, 1)
		require.NoError(t, err)
	}

	require.InDelta(t, 7.0, stat.Mean(samples, nil), 0.05)
	require.InDelta(t, 0.5, stat.StdDev(samples, nil), 0.05)
}

func TestPullInvalidIndex(t *testing.T) {
	b, err := NewWithMeans(mat.NewDense(2, 3, nil), 1, 1)
	require.NoError(t, err)

	for _, idx := range [][2]int{{2, 0}, {-1, 0}, {0, 3}, {0, -1}} {
		_, err := b.Pull(idx[0], idx[1])
		require.Error(t, err)
		require.True(t, environment.IsInvalidIndex(err))
	}
}

func TestPullDeterministicPerSeed(t *testing.T) {
	a, err := New(3, 3, 1, DefaultMeans, 17)
	require.NoError(t, err)
	b, err := New(3, 3, 1, DefaultMeans, 17)
	require.NoError(t, err)

	require.True(t, mat.Equal(a.Means(), b.Means()))
	for i := 0; i < 10; i++ {
		ra, _ := a.Pull(i%3, (i+1)%3)
		rb, _ := b.Pull(i%3, (i+1)%3)
		require.Equal(t, ra, rb)
	}
}

func TestBest(t *testing.T) {
	b, err := NewWithMeans(mat.NewDense(2, 3, []float64{1, 9, 3, 9, 2, 0}), 1, 1)
	require.NoError(t, err)

	machine, lever, mean := b.Best()
	require.Equal(t, 0, machine)
	require.Equal(t, 1, lever)
	require.Equal(t, 9.0, mean)
	require.Contains(t, b.String(), "Machines: 2")
}
