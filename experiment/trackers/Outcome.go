package trackers

import "github.com/samuelfneumann/tabular/timestep"

// Outcome counts finished episodes by the sign of their final reward,
// which in games scored +1, 0 or -1 at the end are wins, draws and
// losses
type Outcome struct {
	Wins, Draws, Losses int
}

// NewOutcome returns a new Outcome Tracker
func NewOutcome() *Outcome {
	return &Outcome{}
}

// Track records the outcome of an episode on its last timestep
func (o *Outcome) Track(t timestep.TimeStep) {
	if !t.Last() {
		return
	}

	switch {
	case t.Reward > 0:
		o.Wins++
	case t.Reward < 0:
		o.Losses++
	default:
		o.Draws++
	}
}

// Total returns the number of episodes recorded
func (o *Outcome) Total() int {
	return o.Wins + o.Draws + o.Losses
}

// WinRate returns the fraction of episodes won, or zero if no episode
// has been recorded
func (o *Outcome) WinRate() float64 {
	if o.Total() == 0 {
		return 0
	}
	return float64(o.Wins) / float64(o.Total())
}
