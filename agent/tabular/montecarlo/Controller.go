// Package montecarlo implements Monte Carlo control with exploring
// starts for blackjack.
//
// The Controller plays episodes with its current greedy policy,
// records every (state, action) pair visited, and after each episode
// appends the episode's terminal reward to the return log of every
// visited pair. Since the only non-zero reward arrives at the end of an
// episode and returns are undiscounted, the return following every
// visit is the terminal reward. The policy of every state is then
// re-set to the action with the larger estimated value.
//
// Exploring starts are approximated by the random deal of each game
// together with the rule that the player always sticks on totals of 20
// or more, which is fixed and never learned. WithExploringActions
// additionally draws the first action of each game uniformly at random.
package montecarlo

import (
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/agent/tabular/estimator"
	"github.com/samuelfneumann/tabular/environment/blackjack"
	"github.com/samuelfneumann/tabular/timestep"
	"github.com/samuelfneumann/tabular/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Tracker receives every TimeStep generated by the Controller
type Tracker interface {
	Track(t timestep.TimeStep)
}

// Visit is a single (state, action) pair of a trajectory
type Visit struct {
	State  blackjack.State
	Action blackjack.Action
}

// Episode is a completed game: the trajectory of the player and the
// terminal reward
type Episode struct {
	Trajectory []Visit
	Reward     float64
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger the Controller reports completed runs to
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithTrackers registers trackers which receive every TimeStep of
// every episode played
func WithTrackers(trackers ...Tracker) Option {
	return func(c *Controller) {
		c.trackers = append(c.trackers, trackers...)
	}
}

// WithExploringActions makes the first action of every episode uniformly
// random, unless the starting total forces a stick. Without it, an
// action whose first few returns were poor may never be tried again.
func WithExploringActions(seed uint64) Option {
	return func(c *Controller) {
		c.explore = rand.New(rand.NewSource(seed))
	}
}

// Controller implements every-visit Monte Carlo control with exploring
// starts.
//
// A Controller is not safe for concurrent use. Episodes are processed
// strictly one after another, which keeps every estimate exactly equal
// to the mean of its logged returns.
type Controller struct {
	env      *blackjack.Blackjack
	returns  *estimator.ReturnLog
	policy   []blackjack.Action
	episodes int

	explore  *rand.Rand
	trackers []Tracker
	logger   zerolog.Logger
}

// NewController returns a new Controller learning on env. The initial
// policy sticks on totals of 20 or more and hits otherwise.
func NewController(env *blackjack.Blackjack, opts ...Option) *Controller {
	states := env.ObservationSpec().N
	actions := env.ActionSpec().N

	policy := make([]blackjack.Action, states)
	for i := range policy {
		if blackjack.StateAt(i).ForcedStick() {
			policy[i] = blackjack.Stick
		} else {
			policy[i] = blackjack.Hit
		}
	}

	c := &Controller{
		env:     env,
		returns: estimator.NewReturnLog(states, actions),
		policy:  policy,
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run plays and learns from n episodes
func (c *Controller) Run(n int) {
	var total float64
	for i := 0; i < n; i++ {
		total += c.RunEpisode().Reward
	}

	if n > 0 {
		c.logger.Info().
			Int("episodes", n).
			Int("totalEpisodes", c.episodes).
			Float64("meanReward", total/float64(n)).
			Msg("monte carlo control complete")
	}
}

// RunEpisode plays a single episode with the current policy, updates
// the action values of every pair visited, improves the policy and
// returns the episode
func (c *Controller) RunEpisode() Episode {
	step := c.env.Reset()
	c.track(step)

	var trajectory []Visit
	for {
		state := c.env.State()
		action := c.Action(state)
		if len(trajectory) == 0 && c.explore != nil && !state.ForcedStick() {
			action = blackjack.Action(c.explore.Intn(blackjack.NumActions))
		}
		trajectory = append(trajectory, Visit{state, action})

		var done bool
		step, done = c.env.Step(action)
		c.track(step)
		if done {
			break
		}
	}

	c.update(trajectory, step.Reward)
	c.improve()
	c.episodes++

	return Episode{Trajectory: trajectory, Reward: step.Reward}
}

// update appends the episode's return to the return log of each
// visited pair
func (c *Controller) update(trajectory []Visit, reward float64) {
	for _, v := range trajectory {
		c.returns.Append(v.State.Index(), int(v.Action), reward)
	}
}

// improve sets the policy of every state that is not forced to stick
// to the action with the largest action value, breaking ties in favour
// of hitting
func (c *Controller) improve() {
	q := c.returns.View()
	for i := range c.policy {
		if blackjack.StateAt(i).ForcedStick() {
			c.policy[i] = blackjack.Stick
			continue
		}
		c.policy[i] = blackjack.Action(matutils.ArgMaxRow(q, i))
	}
}

func (c *Controller) track(step timestep.TimeStep) {
	for _, t := range c.trackers {
		t.Track(step)
	}
}

// Action returns the action taken in state s
func (c *Controller) Action(s blackjack.State) blackjack.Action {
	if s.ForcedStick() {
		return blackjack.Stick
	}
	return c.policy[s.Index()]
}

// Q returns the estimated value of taking action a in state s
func (c *Controller) Q(s blackjack.State, a blackjack.Action) float64 {
	return c.returns.Value(s.Index(), int(a))
}

// Returns returns a copy of the returns logged for taking action a in
// state s
func (c *Controller) Returns(s blackjack.State, a blackjack.Action) []float64 {
	return c.returns.Returns(s.Index(), int(a))
}

// Count returns the number of times action a was taken in state s
func (c *Controller) Count(s blackjack.State, a blackjack.Action) int {
	return c.returns.Count(s.Index(), int(a))
}

// Episodes returns the number of episodes played
func (c *Controller) Episodes() int {
	return c.episodes
}

// Snapshot returns a copy of the Controller's current estimates and
// policy
func (c *Controller) Snapshot() Snapshot {
	policy := make([]blackjack.Action, len(c.policy))
	copy(policy, c.policy)

	return Snapshot{
		Q:        c.returns.Values(),
		Counts:   c.returns.Counts(),
		Policy:   policy,
		Episodes: c.episodes,
	}
}

// Snapshot is an immutable copy of a Controller's estimates and policy.
// Q and Counts have one row per state, in the enumeration order of
// blackjack.StateAt, and one column per action.
type Snapshot struct {
	Q        *mat.Dense
	Counts   *mat.Dense
	Policy   []blackjack.Action
	Episodes int
}

// Action returns the policy's action in state s
func (s Snapshot) Action(state blackjack.State) blackjack.Action {
	return s.Policy[state.Index()]
}

// Value returns the estimated value of taking action a in state s
func (s Snapshot) Value(state blackjack.State, a blackjack.Action) float64 {
	return s.Q.At(state.Index(), int(a))
}
