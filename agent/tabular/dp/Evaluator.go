// Package dp implements iterative policy evaluation of the equiprobable
// random policy on a gridworld, and greedy policy improvement from the
// resulting state values.
//
// Two evaluation schemes are provided. EvaluateTwoTable computes every
// update of a sweep from the values of the previous sweep, which are
// held fixed until the sweep ends. EvaluateOneTable overwrites values in
// place as it visits states in row-major order, so later states in a
// sweep see the updates of earlier ones. Both converge to the same
// values; the in-place scheme usually needs fewer sweeps.
package dp

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/tabular/environment/gridworld"
	"gonum.org/v1/gonum/mat"
)

// Model is the transition model of a deterministic gridworld
type Model interface {
	Dims() (r, c int)
	States() []gridworld.Cell
	IsTerminal(gridworld.Cell) bool
	Next(gridworld.Cell, gridworld.Action) gridworld.Cell
	Reward() float64
}

// Result is the outcome of a policy evaluation
type Result struct {
	// V holds the value of every cell, with zero in terminal cells
	V *mat.Dense

	// Sweeps is the number of complete sweeps performed
	Sweeps int

	// Delta is the largest change of any value in the final sweep
	Delta float64
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithLogger sets the logger evaluations are reported to
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// Evaluator evaluates the equiprobable random policy on a Model and
// extracts greedy policies from state values
type Evaluator struct {
	model  Model
	config Config
	logger zerolog.Logger
}

// NewEvaluator returns a new Evaluator of model
func NewEvaluator(model Model, config Config, opts ...Option) (*Evaluator,
	error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newEvaluator: %v", err)
	}

	e := &Evaluator{
		model:  model,
		config: config,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the Evaluator's configuration
func (e *Evaluator) Config() Config {
	return e.config
}

// EvaluateTwoTable evaluates the random policy with a separate table for
// the values of the previous sweep. An error is returned alongside the
// last values computed if the sweep limit is reached before
// convergence.
func (e *Evaluator) EvaluateTwoTable() (Result, error) {
	r, c := e.model.Dims()
	old := mat.NewDense(r, c, nil)
	next := mat.NewDense(r, c, nil)

	return e.evaluate("two-table", func() float64 {
		delta := e.sweep(old, next)
		old, next = next, old
		return delta
	}, func() *mat.Dense { return old })
}

// EvaluateOneTable evaluates the random policy updating a single table
// in place. An error is returned alongside the last values computed if
// the sweep limit is reached before convergence.
func (e *Evaluator) EvaluateOneTable() (Result, error) {
	r, c := e.model.Dims()
	v := mat.NewDense(r, c, nil)

	return e.evaluate("one-table", func() float64 {
		return e.sweep(v, v)
	}, func() *mat.Dense { return v })
}

// evaluate runs sweeps until the largest change in a sweep falls below
// theta
func (e *Evaluator) evaluate(scheme string, sweep func() float64,
	values func() *mat.Dense) (Result, error) {
	var sweeps int
	var delta float64

	for {
		if e.config.MaxSweeps > 0 && sweeps >= e.config.MaxSweeps {
			result := Result{mat.DenseCopyOf(values()), sweeps, delta}
			return result, fmt.Errorf("evaluate: %s evaluation did not "+
				"converge after %d sweeps, delta = %v", scheme, sweeps, delta)
		}

		delta = sweep()
		sweeps++
		if delta < e.config.Theta {
			break
		}
	}

	e.logger.Info().
		Str("scheme", scheme).
		Int("sweeps", sweeps).
		Float64("delta", delta).
		Msg("policy evaluation converged")

	return Result{mat.DenseCopyOf(values()), sweeps, delta}, nil
}

// sweep performs a single backup of every non-terminal cell, reading
// values from src and writing them to dst, and returns the largest
// change. When src and dst are the same table the sweep is in place.
func (e *Evaluator) sweep(src, dst *mat.Dense) float64 {
	prob := 1.0 / float64(gridworld.NumActions)
	var delta float64

	for _, cell := range e.model.States() {
		var v float64
		for _, a := range gridworld.Actions {
			v += prob * e.backup(src, cell, a)
		}

		delta = math.Max(delta, math.Abs(v-src.At(cell.Row, cell.Col)))
		dst.Set(cell.Row, cell.Col, v)
	}
	return delta
}

// backup returns the one-step lookahead value of taking action a in
// cell. A transition into a terminal cell is worth its reward only.
func (e *Evaluator) backup(v mat.Matrix, cell gridworld.Cell,
	a gridworld.Action) float64 {
	next := e.model.Next(cell, a)
	if e.model.IsTerminal(next) {
		return e.model.Reward()
	}
	return e.model.Reward() + e.config.Discount*v.At(next.Row, next.Col)
}
