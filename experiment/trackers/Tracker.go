// Package trackers implements Trackers, which record data from the
// TimeSteps of an experiment
package trackers

import ts "github.com/samuelfneumann/tabular/timestep"

// Tracker keeps track of experiment data. Data is held in memory and
// read back once the experiment has finished.
type Tracker interface {
	Track(t ts.TimeStep)
}
