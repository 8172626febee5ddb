package gridworld

import (
	"fmt"
	"strings"
)

// Goal represents the task of reaching one of a set of terminal cells
// in a GridWorld, with the same reward for every transition
type Goal struct {
	terminals []Cell
	set       map[Cell]bool
	reward    float64
}

// NewGoal creates and returns a new goal with the given terminal cells,
// given that the gridworld has r rows and c columns
func NewGoal(terminals []Cell, r, c int, reward float64) (*Goal, error) {
	set := make(map[Cell]bool, len(terminals))
	for i, cell := range terminals {
		if cell.Row < 0 || cell.Row >= r || cell.Col < 0 || cell.Col >= c {
			return nil, fmt.Errorf("newGoal: terminals[%d] = %v outside of "+
				"%dx%d grid", i, cell, r, c)
		}
		set[cell] = true
	}

	cells := make([]Cell, len(terminals))
	copy(cells, terminals)
	return &Goal{cells, set, reward}, nil
}

// IsTerminal returns whether cell is a terminal cell
func (g *Goal) IsTerminal(cell Cell) bool {
	return g.set[cell]
}

// Terminals returns a copy of the terminal cells
func (g *Goal) Terminals() []Cell {
	cells := make([]Cell, len(g.terminals))
	copy(cells, g.terminals)
	return cells
}

// Reward returns the reward received on every transition
func (g *Goal) Reward() float64 {
	return g.reward
}

// String returns the Goal as a string
func (g *Goal) String() string {
	cells := make([]string, len(g.terminals))
	for i, cell := range g.terminals {
		cells[i] = cell.String()
	}
	return "[" + strings.Join(cells, " ") + "]"
}
