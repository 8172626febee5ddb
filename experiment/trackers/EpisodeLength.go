package trackers

import (
	"github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/stat"
)

// EpisodeLength tracks the lengths of episodes in an experiment.
// Note that an episode must finish for this Tracker to record its
// length.
type EpisodeLength struct {
	episodeLengths []int
}

// NewEpisodeLength returns a new EpisodeLength Tracker
func NewEpisodeLength() *EpisodeLength {
	return &EpisodeLength{}
}

// Track caches the episode length if the timestep passed to it is the
// last timestep in the episode
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
	}
}

// Data returns a copy of the length of every finished episode
func (e *EpisodeLength) Data() []int {
	data := make([]int, len(e.episodeLengths))
	copy(data, e.episodeLengths)
	return data
}

// Mean returns the mean length of finished episodes, or zero if no
// episode has finished
func (e *EpisodeLength) Mean() float64 {
	if len(e.episodeLengths) == 0 {
		return 0
	}
	lengths := make([]float64, len(e.episodeLengths))
	for i, l := range e.episodeLengths {
		lengths[i] = float64(l)
	}
	return stat.Mean(lengths, nil)
}
