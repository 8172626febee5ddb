package bandit

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/tabular/agent/tabular/policy"
	env "github.com/samuelfneumann/tabular/environment/bandit"
	"github.com/samuelfneumann/tabular/utils/floatutils"
)

// rewards recovers the per-step rewards of a History
func rewards(h History) []float64 {
	r := make([]float64, len(h.Cumulative))
	prev := 0.0
	for i, c := range h.Cumulative {
		r[i] = c - prev
		prev = c
	}
	return r
}

func TestEpsilonGreedyScenario(t *testing.T) {
	b, err := env.New(5, 3, 1, env.DefaultMeans, 2024)
	require.NoError(t, err)

	s := NewSolver(b, 1000, 2024)
	h := s.EpsilonGreedy(0.01)

	require.Len(t, h.Cumulative, 1000)
	require.Len(t, h.Actions, 1000)
	require.Equal(t, 1000, h.Len())
	require.True(t, floatutils.AllFinite(h.Cumulative))
	require.Equal(t, s.Total(), h.Total())

	for _, a := range h.Actions {
		require.True(t, a.Machine >= 0 && a.Machine < 5)
		require.True(t, a.Lever >= 0 && a.Lever < 3)
	}

	// Every pull is counted exactly once
	require.InDelta(t, 1000.0, mat.Sum(s.Counts()), 1e-9)
}

func TestActionValuesAreSampleMeans(t *testing.T) {
	b, err := env.New(2, 3, 2, env.DefaultMeans, 5)
	require.NoError(t, err)

	for _, run := range []func(*Solver) History{
		func(s *Solver) History { return s.EpsilonGreedy(0.3) },
		func(s *Solver) History { return s.Softmax(2) },
	} {
		s := NewSolver(b, 500, 6)
		h := run(s)

		perLever := make(map[Lever][]float64)
		for i, r := range rewards(h) {
			perLever[h.Actions[i]] = append(perLever[h.Actions[i]], r)
		}

		q, counts := s.QValues(), s.Counts()
		for lever, rs := range perLever {
			require.InDelta(t, stat.Mean(rs, nil), q.At(lever.Machine, lever.Lever),
				1e-9)
			require.Equal(t, float64(len(rs)), counts.At(lever.Machine, lever.Lever))
		}
	}
}

func TestCumulativeNonDecreasingForPositiveRewards(t *testing.T) {
	means := mat.NewDense(5, 3, []float64{
		8, 7, 9,
		6, 9.5, 7,
		8, 8, 6,
		9, 7, 8,
		6, 6, 7.5,
	})
	b, err := env.NewWithMeans(means, 1, 8)
	require.NoError(t, err)

	s := NewSolver(b, 1000, 8)
	for _, h := range []History{s.EpsilonGreedy(0.01), s.Softmax(1)} {
		require.Len(t, h.Cumulative, 1000)
		for i := 1; i < len(h.Cumulative); i++ {
			require.GreaterOrEqual(t, h.Cumulative[i], h.Cumulative[i-1])
		}
	}
}

func TestHistoryContinuesWithoutReset(t *testing.T) {
	means := mat.NewDense(2, 2, []float64{5, 5, 5, 5})
	b, err := env.NewWithMeans(means, 0.1, 1)
	require.NoError(t, err)

	s := NewSolver(b, 10, 1)
	first := s.EpsilonGreedy(0.1)
	second := s.EpsilonGreedy(0.1)

	// The second run keeps accumulating from the first run's total
	require.InDelta(t, first.Total()+5, second.Cumulative[0], 0.5)
	require.Equal(t, s.Total(), second.Total())
	require.InDelta(t, 20.0, mat.Sum(s.Counts()), 1e-9)

	s.Reset()
	require.Equal(t, 0.0, s.Total())
	require.Equal(t, 0.0, mat.Sum(s.Counts()))
	require.Equal(t, 0.0, mat.Sum(s.QValues()))
}

// spreadMeans has a single best lever at (0, 0) and the remaining means
// spread over [0, 6]
func spreadMeans() *mat.Dense {
	return mat.NewDense(5, 3, []float64{
		9, 2, 4,
		1, 5, 3,
		6, 0, 2,
		3, 4, 1,
		5, 2, 0,
	})
}

func TestEpsilonGreedyBeatsHotSoftmax(t *testing.T) {
	// At τ = 5 softmax keeps pulling the worse levers, earning about 4.5
	// per step against about 9 for epsilon-greedy
	const seeds = 20
	for seed := uint64(0); seed < seeds; seed++ {
		b, err := env.NewWithMeans(spreadMeans(), 1, seed)
		require.NoError(t, err)

		s := NewSolver(b, 1000, seed)
		greedy := s.EpsilonGreedy(0.01)
		s.Reset()
		softmax := s.Softmax(5)

		require.Greater(t, greedy.Total(), softmax.Total()+2000,
			"seed %d", seed)
	}
}

func TestEpsilonGreedyExploitsBestLever(t *testing.T) {
	best := Lever{0, 0}
	for seed := uint64(0); seed < 20; seed++ {
		b, err := env.NewWithMeans(spreadMeans(), 1, seed)
		require.NoError(t, err)

		h := NewSolver(b, 1000, seed).EpsilonGreedy(0.01)

		found := -1
		for i, a := range h.Actions {
			if a == best {
				found = i
				break
			}
		}
		require.NotEqual(t, -1, found, "seed %d", seed)

		// Once found, the best lever is pulled on all greedy steps and
		// on a share of the exploratory ones
		pulls := 0
		for _, a := range h.Actions[found:] {
			if a == best {
				pulls++
			}
		}
		share := float64(pulls) / float64(len(h.Actions)-found)
		require.GreaterOrEqual(t, share, 0.97, "seed %d", seed)
	}
}

func TestRunWithPolicyAndLogging(t *testing.T) {
	means := mat.NewDense(1, 3, []float64{1, 5, 2})
	b, err := env.NewWithMeans(means, 0.1, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	s := NewSolver(b, 5, 4, WithLogger(zerolog.New(&buf)))
	h := s.Run(policy.NewGreedy())

	// Greedy pulls the first lever, whose positive estimate keeps it best
	for _, a := range h.Actions {
		require.Equal(t, Lever{0, 0}, a)
	}
	require.Contains(t, buf.String(), "bandit run complete")
	require.Equal(t, "(0, 0)", h.Actions[0].String())
}
