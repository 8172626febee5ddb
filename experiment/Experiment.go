// Package experiment implements functionality for running the bandit,
// blackjack and gridworld experiments from a configuration, returning
// finished snapshots of everything they learned
package experiment

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/tabular/agent/tabular/bandit"
	"github.com/samuelfneumann/tabular/agent/tabular/dp"
	"github.com/samuelfneumann/tabular/agent/tabular/montecarlo"
	"github.com/samuelfneumann/tabular/config"
	"github.com/samuelfneumann/tabular/environment"
	env "github.com/samuelfneumann/tabular/environment/bandit"
	"github.com/samuelfneumann/tabular/environment/blackjack"
	"github.com/samuelfneumann/tabular/environment/gridworld"
	"github.com/samuelfneumann/tabular/experiment/trackers"
	ts "github.com/samuelfneumann/tabular/timestep"
	"github.com/samuelfneumann/tabular/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Offsets of the seeds of each component from the configured seed
const (
	banditSeed uint64 = iota * 1000
	banditSolverSeed
	blackjackSeed
	blackjackEvalSeed
	blackjackExploreSeed
	gridWorldStartSeed
)

// BanditResult holds the outcome of running both action-selection
// strategies on the same bandit
type BanditResult struct {
	Means *mat.Dense
	Best  bandit.Lever

	EpsilonGreedy  bandit.History
	EpsilonGreedyQ *mat.Dense

	Softmax  bandit.History
	SoftmaxQ *mat.Dense
}

// RunBandit runs an ε-greedy solver and then, from scratch, a softmax
// solver on the same bandit
func RunBandit(c config.Bandit, seed uint64,
	logger zerolog.Logger) (BanditResult, error) {
	if err := c.Validate(); err != nil {
		return BanditResult{}, fmt.Errorf("runBandit: %w", err)
	}

	b, err := env.New(c.Machines, c.Levers, c.StdDev, c.Means(),
		seed+banditSeed)
	if err != nil {
		return BanditResult{}, fmt.Errorf("runBandit: %w", err)
	}

	solver := bandit.NewSolver(b, c.Steps, seed+banditSolverSeed,
		bandit.WithLogger(logger))

	machine, lever, _ := b.Best()
	result := BanditResult{
		Means: b.Means(),
		Best:  bandit.Lever{Machine: machine, Lever: lever},
	}
	result.EpsilonGreedy = solver.EpsilonGreedy(c.Epsilon)
	result.EpsilonGreedyQ = solver.QValues()

	solver.Reset()
	result.Softmax = solver.Softmax(c.Tau)
	result.SoftmaxQ = solver.QValues()

	return result, nil
}

// Stats summarizes a set of blackjack games
type Stats struct {
	trackers.Outcome
	MeanReturn float64
	MeanLength float64
}

// BlackjackResult holds the outcome of Monte Carlo control on
// blackjack
type BlackjackResult struct {
	montecarlo.Snapshot

	// Training summarizes the games played while learning
	Training Stats

	// Evaluation summarizes the games played with the final policy
	Evaluation Stats
}

// RunBlackjack learns a blackjack policy with Monte Carlo control and
// then plays the learned policy without learning. If progress is
// non-nil, it is called after every training episode with the number
// of episodes completed.
func RunBlackjack(c config.Blackjack, seed uint64, logger zerolog.Logger,
	progress func(done int)) (BlackjackResult, error) {
	if err := c.Validate(); err != nil {
		return BlackjackResult{}, fmt.Errorf("runBlackjack: %w", err)
	}

	returns := trackers.NewReturn()
	lengths := trackers.NewEpisodeLength()
	outcomes := trackers.NewOutcome()
	opts := []montecarlo.Option{
		montecarlo.WithTrackers(returns, lengths, outcomes),
		montecarlo.WithLogger(logger),
	}
	if c.ExploringActions {
		opts = append(opts,
			montecarlo.WithExploringActions(seed+blackjackExploreSeed))
	}
	controller := montecarlo.NewController(blackjack.New(seed+blackjackSeed),
		opts...)

	for i := 1; i <= c.Episodes; i++ {
		controller.RunEpisode()
		if progress != nil {
			progress(i)
		}
	}

	result := BlackjackResult{
		Snapshot: controller.Snapshot(),
		Training: stats(outcomes, returns, lengths),
	}
	logger.Info().
		Int("episodes", c.Episodes).
		Float64("winRate", outcomes.WinRate()).
		Msg("blackjack training complete")

	evalReturns := trackers.NewReturn()
	evalLengths := trackers.NewEpisodeLength()
	evalOutcomes := trackers.NewOutcome()

	game := blackjack.New(seed + blackjackEvalSeed)
	policy := func(t ts.TimeStep) blackjack.Action {
		return result.Action(blackjack.StateOf(t.Observation))
	}
	NewOnline[blackjack.Action](game, policy, nil, evalReturns, evalLengths,
		evalOutcomes).Run(c.EvalEpisodes)

	result.Evaluation = stats(evalOutcomes, evalReturns, evalLengths)
	logger.Info().
		Int("episodes", c.EvalEpisodes).
		Float64("winRate", evalOutcomes.WinRate()).
		Msg("blackjack evaluation complete")

	return result, nil
}

func stats(o *trackers.Outcome, r *trackers.Return,
	l *trackers.EpisodeLength) Stats {
	return Stats{Outcome: *o, MeanReturn: r.Mean(), MeanLength: l.Mean()}
}

// GridWorldResult holds the outcome of dynamic programming on the
// gridworld
type GridWorldResult struct {
	Rows, Cols int

	TwoTable       dp.Result
	TwoTablePolicy dp.Policy

	OneTable       dp.Result
	OneTablePolicy dp.Policy

	// SchemeDiff is the largest absolute difference between the values
	// of the two evaluation schemes
	SchemeDiff float64

	// Rollout is the path of an episode played with TwoTablePolicy
	// from a random start, ending in a terminal cell unless the step
	// limit was reached first
	Rollout       []gridworld.Cell
	RolloutReturn float64
	Terminated    bool
}

// RunGridWorld evaluates the random policy on the gridworld with both
// the two-table and the one-table scheme, improves a policy from each,
// and plays an episode with the improved two-table policy. If an
// evaluation reaches the sweep limit, the result holds the values
// computed so far, no policies and no rollout, and an error is returned.
func RunGridWorld(c config.GridWorld, seed uint64,
	logger zerolog.Logger) (GridWorldResult, error) {
	if err := c.Validate(); err != nil {
		return GridWorldResult{}, fmt.Errorf("runGridWorld: %w", err)
	}

	g, err := gridworld.NewSquare(c.Size,
		gridworld.WithUniformStart(seed+gridWorldStartSeed),
		gridworld.WithDiscount(c.Discount))
	if err != nil {
		return GridWorldResult{}, fmt.Errorf("runGridWorld: %w", err)
	}

	evaluator, err := dp.NewEvaluator(g, c.DP(), dp.WithLogger(logger))
	if err != nil {
		return GridWorldResult{}, fmt.Errorf("runGridWorld: %w", err)
	}

	result := GridWorldResult{Rows: c.Size, Cols: c.Size}
	if result.TwoTable, err = evaluator.EvaluateTwoTable(); err != nil {
		return result, fmt.Errorf("runGridWorld: %w", err)
	}
	if result.OneTable, err = evaluator.EvaluateOneTable(); err != nil {
		return result, fmt.Errorf("runGridWorld: %w", err)
	}
	result.SchemeDiff = matutils.MaxAbsDiff(result.TwoTable.V,
		result.OneTable.V)
	result.TwoTablePolicy = evaluator.Improve(result.TwoTable.V)
	result.OneTablePolicy = evaluator.Improve(result.OneTable.V)

	path := &pathTracker{}
	returns := trackers.NewReturn()
	policy := func(t ts.TimeStep) gridworld.Action {
		return result.TwoTablePolicy[gridworld.CellOf(t.Observation)]
	}
	rollout := NewOnline[gridworld.Action](g, policy,
		environment.NewStepLimit(c.RolloutSteps), path, returns)
	result.Terminated = rollout.RunEpisode()
	result.Rollout = path.cells
	result.RolloutReturn = returns.Data()[0]

	logger.Info().
		Int("steps", len(path.cells)-1).
		Bool("terminated", result.Terminated).
		Msg("gridworld rollout complete")

	return result, nil
}

// pathTracker records the cell of every TimeStep of a gridworld episode
type pathTracker struct {
	cells []gridworld.Cell
}

func (p *pathTracker) Track(t ts.TimeStep) {
	p.cells = append(p.cells, gridworld.CellOf(t.Observation))
}
