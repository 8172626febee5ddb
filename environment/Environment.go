// Package environment outlines the interfaces and structs shared by the
// tabular environments
package environment

import (
	"github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Ender determines when an episode should be cut off before the
// environment reaches a terminal state
type Ender interface {
	End(t timestep.TimeStep) (timestep.TimeStep, bool)
}
