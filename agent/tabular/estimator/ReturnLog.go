package estimator

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ReturnLog records every sampled return for each (key, action) pair of
// a table. The estimate of each pair is the arithmetic mean of its
// logged returns. Estimates are kept incrementally, so that appending a
// return is constant time, while the full log remains available for
// inspection.
//
// For each pair, the length of its log always equals its sample count.
type ReturnLog struct {
	returns [][]float64
	actions int
	mean    *Incremental
}

// NewReturnLog returns a new, empty ReturnLog for keys × actions pairs
func NewReturnLog(keys, actions int) *ReturnLog {
	return &ReturnLog{
		returns: make([][]float64, keys*actions),
		actions: actions,
		mean:    NewIncremental(keys, actions),
	}
}

// Append logs a return for the pair (key, action) and returns the new
// estimate for the pair
func (l *ReturnLog) Append(key, action int, ret float64) float64 {
	idx := key*l.actions + action
	l.returns[idx] = append(l.returns[idx], ret)
	return l.mean.Update(key, action, ret)
}

// Value returns the estimate for the pair (key, action), which is zero
// if no returns have been logged for the pair
func (l *ReturnLog) Value(key, action int) float64 {
	return l.mean.Value(key, action)
}

// Mean recomputes the arithmetic mean of the logged returns of the
// pair (key, action) directly from the log
func (l *ReturnLog) Mean(key, action int) float64 {
	returns := l.returns[key*l.actions+action]
	if len(returns) == 0 {
		return 0
	}
	return stat.Mean(returns, nil)
}

// Len returns the number of returns logged for the pair (key, action)
func (l *ReturnLog) Len(key, action int) int {
	return len(l.returns[key*l.actions+action])
}

// Count returns the sample count of the pair (key, action)
func (l *ReturnLog) Count(key, action int) int {
	return l.mean.Count(key, action)
}

// Returns returns a copy of the returns logged for (key, action)
func (l *ReturnLog) Returns(key, action int) []float64 {
	returns := l.returns[key*l.actions+action]
	out := make([]float64, len(returns))
	copy(out, returns)
	return out
}

// View returns a read-only view of the current estimates, with one row
// per key and one column per action
func (l *ReturnLog) View() mat.Matrix {
	return l.mean.View()
}

// Values returns a copy of the current estimates
func (l *ReturnLog) Values() *mat.Dense {
	return l.mean.Values()
}

// Counts returns a copy of the sample counts
func (l *ReturnLog) Counts() *mat.Dense {
	return l.mean.Counts()
}
