package montecarlo

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/tabular/environment/blackjack"
	"github.com/samuelfneumann/tabular/timestep"
	"github.com/samuelfneumann/tabular/utils/matutils"
)

type countingTracker struct {
	steps, last int
}

func (c *countingTracker) Track(t timestep.TimeStep) {
	c.steps++
	if t.Last() {
		c.last++
	}
}

func TestInitialPolicy(t *testing.T) {
	c := NewController(blackjack.New(1))

	for _, s := range blackjack.States() {
		if s.Sum >= 20 {
			require.Equal(t, blackjack.Stick, c.Action(s), "state %v", s)
		} else {
			require.Equal(t, blackjack.Hit, c.Action(s), "state %v", s)
		}
	}
	require.Equal(t, 0, c.Episodes())
}

func TestEpisodeTrajectory(t *testing.T) {
	c := NewController(blackjack.New(3))

	for i := 0; i < 500; i++ {
		ep := c.RunEpisode()
		require.NotEmpty(t, ep.Trajectory)
		require.Contains(t, []float64{-1, 0, 1}, ep.Reward)

		for j, v := range ep.Trajectory {
			require.True(t, v.State.Valid(), "state %v", v.State)
			if j < len(ep.Trajectory)-1 {
				require.Equal(t, blackjack.Hit, v.Action)
			}
			if v.State.ForcedStick() {
				require.Equal(t, blackjack.Stick, v.Action)
			}
		}

		// Only a bust can end an episode on a hit
		if last := ep.Trajectory[len(ep.Trajectory)-1]; last.Action == blackjack.Hit {
			require.Equal(t, -1.0, ep.Reward)
		}
	}
	require.Equal(t, 500, c.Episodes())
}

func TestEstimatesAreMeansOfReturns(t *testing.T) {
	c := NewController(blackjack.New(5))
	c.Run(5000)

	visited := 0
	for _, s := range blackjack.States() {
		for _, a := range blackjack.Actions {
			returns := c.Returns(s, a)
			require.Equal(t, len(returns), c.Count(s, a))
			if len(returns) == 0 {
				require.Equal(t, 0.0, c.Q(s, a))
				continue
			}
			visited++
			require.InDelta(t, stat.Mean(returns, nil), c.Q(s, a), 1e-9)
		}

		// The forced rule means hitting is never tried on 20 or 21
		if s.ForcedStick() {
			require.Equal(t, 0, c.Count(s, blackjack.Hit))
		}
	}
	require.Greater(t, visited, 100)
}

func TestPolicyIsGreedyAfterEachEpisode(t *testing.T) {
	c := NewController(blackjack.New(9))

	for i := 0; i < 200; i++ {
		c.RunEpisode()
		snap := c.Snapshot()
		for idx, s := range blackjack.States() {
			want := blackjack.Stick
			if !s.ForcedStick() {
				want = blackjack.Action(matutils.ArgMaxRow(snap.Q, idx))
			}
			require.Equal(t, want, snap.Action(s), "state %v", s)
		}
	}
}

func TestTrackersAndLogging(t *testing.T) {
	var buf bytes.Buffer
	tracker := &countingTracker{}
	c := NewController(blackjack.New(2), WithTrackers(tracker),
		WithLogger(zerolog.New(&buf)))
	c.Run(100)

	require.Equal(t, 100, tracker.last)
	require.GreaterOrEqual(t, tracker.steps, 200)
	require.Contains(t, buf.String(), "monte carlo control complete")
}

func TestDeterministicForSeed(t *testing.T) {
	a := NewController(blackjack.New(77))
	b := NewController(blackjack.New(77))
	a.Run(2000)
	b.Run(2000)

	sa, sb := a.Snapshot(), b.Snapshot()
	require.True(t, mat.Equal(sa.Q, sb.Q))
	require.True(t, mat.Equal(sa.Counts, sb.Counts))
	if diff := cmp.Diff(sa.Policy, sb.Policy); diff != "" {
		t.Errorf("policy mismatch (-a +b):\n%s", diff)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	c := NewController(blackjack.New(4))
	c.Run(10)

	snap := c.Snapshot()
	s := blackjack.State{Sum: 12, Dealer: 2}
	snap.Policy[s.Index()] = blackjack.Stick
	snap.Q.Set(s.Index(), 0, 99)

	require.NotEqual(t, 99.0, c.Q(s, blackjack.Hit))
	require.Equal(t, 10, snap.Episodes)
	require.Equal(t, 99.0, snap.Value(s, blackjack.Hit))
}

func TestStickValuesConvergeToExact(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long monte carlo run")
	}

	c := NewController(blackjack.New(2024))
	c.Run(200000)
	snap := c.Snapshot()

	// Returns after sticking do not depend on the policy, so every
	// well-visited estimate must lie within a few standard errors of
	// the exact value
	checked := 0
	for _, s := range blackjack.States() {
		n := c.Count(s, blackjack.Stick)
		if n < 500 {
			continue
		}
		checked++

		want := blackjack.StickValue(s.Sum, s.Dealer)
		tol := 5 / math.Sqrt(float64(n))
		require.InDelta(t, want, snap.Value(s, blackjack.Stick), tol,
			"state %v with %d visits", s, n)
	}

	// Every forced stick on a hard 20 is visited often enough
	require.GreaterOrEqual(t, checked, blackjack.NumDealerCards)
	for dealer := 1; dealer <= blackjack.NumDealerCards; dealer++ {
		s := blackjack.State{Sum: 20, Dealer: dealer}
		require.Equal(t, blackjack.Stick, snap.Action(s))
		require.GreaterOrEqual(t, c.Count(s, blackjack.Stick), 500)
	}
}

func TestExploringActions(t *testing.T) {
	c := NewController(blackjack.New(3), WithExploringActions(3))

	firstHits := 0
	for i := 0; i < 2000; i++ {
		e := c.RunEpisode()
		first := e.Trajectory[0]
		if first.State.ForcedStick() {
			require.Equal(t, blackjack.Stick, first.Action)
		} else if first.Action == blackjack.Hit {
			firstHits++
		}
	}

	// Most deals are below 20 and half of those open with a hit
	require.Greater(t, firstHits, 500)
	require.Less(t, firstHits, 1000)
}

func TestSticksOnHardNineteen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long monte carlo run")
	}

	c := NewController(blackjack.New(7), WithExploringActions(7))
	c.Run(100000)

	// Hitting a hard 19 busts on all but an ace or a two, so once both
	// actions are sampled the learned policy sticks against any dealer
	// card but an ace
	for dealer := 2; dealer <= blackjack.NumDealerCards; dealer++ {
		s := blackjack.State{Sum: 19, Dealer: dealer}
		require.GreaterOrEqual(t, c.Count(s, blackjack.Hit), 50, "%v", s)
		require.GreaterOrEqual(t, c.Count(s, blackjack.Stick), 50, "%v", s)

		require.Greater(t, c.Q(s, blackjack.Stick), c.Q(s, blackjack.Hit),
			"%v", s)
		require.Equal(t, blackjack.Stick, c.Action(s), "%v", s)
	}
}
