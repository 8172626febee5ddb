// Package estimator implements tabular sample-average estimators.
//
// Estimates are kept in tables indexed by (row, column), for example
// (machine, lever) for a bandit or (state, action) for a Markov
// decision process.
package estimator

import (
	"gonum.org/v1/gonum/mat"
)

// Incremental maintains a table of running sample averages. Entry
// (i, j) is updated with step size 1/n, where n is the number of
// samples seen for that entry including the new one, so that the table
// holds the exact arithmetic mean of every sample without storing any
// of them.
type Incremental struct {
	values *mat.Dense
	counts *mat.Dense
}

// NewIncremental returns a new Incremental estimator with r rows and c
// columns, with all estimates and counts initialized to zero
func NewIncremental(r, c int) *Incremental {
	return &Incremental{
		values: mat.NewDense(r, c, nil),
		counts: mat.NewDense(r, c, nil),
	}
}

// Update records a new sample for entry (i, j) and returns the updated
// estimate
func (e *Incremental) Update(i, j int, sample float64) float64 {
	// The count must be incremented before the step size is computed
	n := e.counts.At(i, j) + 1
	e.counts.Set(i, j, n)

	q := e.values.At(i, j)
	q += (sample - q) / n
	e.values.Set(i, j, q)

	return q
}

// Value returns the current estimate of entry (i, j)
func (e *Incremental) Value(i, j int) float64 {
	return e.values.At(i, j)
}

// Count returns the number of samples seen for entry (i, j)
func (e *Incremental) Count(i, j int) int {
	return int(e.counts.At(i, j))
}

// Dims returns the dimensions of the estimate table
func (e *Incremental) Dims() (r, c int) {
	return e.values.Dims()
}

// View returns a read-only view of the current estimates. The view
// reflects later updates and must not be modified.
func (e *Incremental) View() mat.Matrix {
	return e.values
}

// Values returns a copy of the current estimates
func (e *Incremental) Values() *mat.Dense {
	return mat.DenseCopyOf(e.values)
}

// Counts returns a copy of the current sample counts
func (e *Incremental) Counts() *mat.Dense {
	return mat.DenseCopyOf(e.counts)
}

// Reset sets all estimates and counts back to zero
func (e *Incremental) Reset() {
	e.values.Zero()
	e.counts.Zero()
}
