package experiment

import (
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/experiment/trackers"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Environment is an episodic environment taking actions of type A
type Environment[A any] interface {
	Reset() ts.TimeStep
	Step(a A) (ts.TimeStep, bool)
}

// Policy selects an action given the most recent TimeStep
type Policy[A any] func(t ts.TimeStep) A

// Online runs episodes of an environment with a fixed policy, sending
// every TimeStep to its Trackers. No learning happens during an Online
// experiment; it is used to measure policies once they are learned.
type Online[A any] struct {
	env      Environment[A]
	policy   Policy[A]
	ender    environment.Ender
	trackers []trackers.Tracker
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given policy. If ender is non-nil, it may cut
// episodes off before the environment ends them.
func NewOnline[A any](env Environment[A], policy Policy[A],
	ender environment.Ender, t ...trackers.Tracker) *Online[A] {
	return &Online[A]{env, policy, ender, t}
}

// Register registers a Tracker with the experiment so that data
// generated during the experiment can be tracked
func (o *Online[A]) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment and returns
// whether the environment ended the episode, rather than the ender
func (o *Online[A]) RunEpisode() bool {
	step := o.env.Reset()
	o.track(step)

	for {
		var done, cut bool
		step, done = o.env.Step(o.policy(step))
		if !done && o.ender != nil {
			step, cut = o.ender.End(step)
		}
		o.track(step)

		if done || cut {
			return done
		}
	}
}

// Run runs n episodes and returns the number the environment ended
func (o *Online[A]) Run(n int) int {
	var finished int
	for i := 0; i < n; i++ {
		if o.RunEpisode() {
			finished++
		}
	}
	return finished
}

// track tracks the current timestep by caching its data in each Tracker
func (o *Online[A]) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
