package environment

import (
	"github.com/samuelfneumann/tabular/timestep"
)

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended, the returned TimeStep is a copy of t with type
// timestep.Last.
func (s StepLimit) End(t timestep.TimeStep) (timestep.TimeStep, bool) {
	if t.Last() {
		return t, true
	}
	if t.Number >= s.episodeSteps {
		return timestep.New(timestep.Last, t.Reward, t.Discount,
			t.Observation, t.Number), true
	}
	return t, false
}
