// Package policy implements action-selection policies over tabular
// action-value estimates.
//
// A policy selects an entry of an action-value table. When the table
// has more than one row, for example one row per bandit machine and one
// column per lever, every entry is a candidate action and entries are
// enumerated in row-major order. Greedy selection always breaks ties by
// the first entry in this order.
package policy

import "gonum.org/v1/gonum/mat"

// Policy selects an entry of an action-value table
type Policy interface {
	SelectAction(q mat.Matrix) (row, col int)
}
