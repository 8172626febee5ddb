// Package bandit implements action-value methods for solving
// multi-armed bandit problems
package bandit

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/agent/tabular/estimator"
	"github.com/samuelfneumann/tabular/agent/tabular/policy"
	env "github.com/samuelfneumann/tabular/environment/bandit"
	"gonum.org/v1/gonum/mat"
)

// Lever identifies a single lever of a single machine
type Lever struct {
	Machine int
	Lever   int
}

func (l Lever) String() string {
	return fmt.Sprintf("(%d, %d)", l.Machine, l.Lever)
}

// History records a run of a Solver. Cumulative[i] is the total reward
// accumulated after the (i+1)th pull and Actions[i] is the lever pulled
// at that step.
type History struct {
	Cumulative []float64
	Actions    []Lever
}

// Total returns the total reward at the end of the run
func (h History) Total() float64 {
	if len(h.Cumulative) == 0 {
		return 0
	}
	return h.Cumulative[len(h.Cumulative)-1]
}

// Len returns the number of steps in the History
func (h History) Len() int {
	return len(h.Actions)
}

// Option configures a Solver
type Option func(*Solver)

// WithLogger sets the logger a Solver reports completed runs to
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// Solver learns action values of every lever of a bandit by sample
// averaging, acting with some action-selection policy for a fixed
// number of steps.
//
// A Solver accumulates total reward and action values over all of its
// runs. Call Reset between runs to compare policies from scratch.
type Solver struct {
	bandit *env.MultiArmed
	steps  int
	values *estimator.Incremental
	total  float64
	src    rand.Source
	logger zerolog.Logger
}

// NewSolver returns a new Solver which pulls steps levers of bandit in
// each run. All randomness of the action-selection policies is drawn
// from a source seeded with seed.
func NewSolver(bandit *env.MultiArmed, steps int, seed uint64,
	opts ...Option) *Solver {
	machines, levers := bandit.Dims()
	s := &Solver{
		bandit: bandit,
		steps:  steps,
		values: estimator.NewIncremental(machines, levers),
		src:    rand.NewSource(seed),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EpsilonGreedy runs the Solver with an ε-greedy policy
func (s *Solver) EpsilonGreedy(epsilon float64) History {
	return s.run("epsilon-greedy", policy.NewEGreedy(epsilon, s.src))
}

// Softmax runs the Solver with a softmax policy of temperature tau,
// which must be positive
func (s *Solver) Softmax(tau float64) History {
	return s.run("softmax", policy.NewSoftmax(tau, s.src))
}

// Run runs the Solver with an arbitrary policy
func (s *Solver) Run(p policy.Policy) History {
	return s.run(fmt.Sprintf("%T", p), p)
}

func (s *Solver) run(name string, p policy.Policy) History {
	h := History{
		Cumulative: make([]float64, 0, s.steps),
		Actions:    make([]Lever, 0, s.steps),
	}

	for i := 0; i < s.steps; i++ {
		machine, lever := p.SelectAction(s.values.View())

		reward, err := s.bandit.Pull(machine, lever)
		if err != nil {
			panic(fmt.Sprintf("run: %v selected an invalid lever: %v", name,
				err))
		}

		s.values.Update(machine, lever, reward)
		s.total += reward

		h.Cumulative = append(h.Cumulative, s.total)
		h.Actions = append(h.Actions, Lever{machine, lever})
	}

	s.logger.Info().
		Str("policy", name).
		Int("steps", s.steps).
		Float64("total", s.total).
		Msg("bandit run complete")

	return h
}

// Reset forgets all action values, counts, and accumulated reward
func (s *Solver) Reset() {
	s.values.Reset()
	s.total = 0
}

// Total returns the reward accumulated since creation or the last Reset
func (s *Solver) Total() float64 {
	return s.total
}

// QValues returns a copy of the current action value estimates
func (s *Solver) QValues() *mat.Dense {
	return s.values.Values()
}

// Counts returns a copy of the number of times each lever was pulled
func (s *Solver) Counts() *mat.Dense {
	return s.values.Counts()
}
