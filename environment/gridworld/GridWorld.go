// Package gridworld implements a 2D gridworld Markov decision process
// with deterministic moves and absorbing terminal cells
package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

// DefaultSize is the number of rows and columns of the default grid
const DefaultSize = 4

// DefaultReward is the reward for every transition of the default grid
const DefaultReward = -1.0

// Cell is a single position in the grid
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Action is a move between neighbouring cells
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the number of actions available in every cell
const NumActions = 4

// Actions lists every action in the order ties are broken
var Actions = []Action{Up, Down, Left, Right}

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// delta returns the change in row and column caused by the action
func (a Action) delta() (dr, dc int) {
	switch a {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	panic(fmt.Sprintf("delta: invalid action %d", int(a)))
}

// Option configures a GridWorld
type Option func(*GridWorld)

// WithStarter sets the distribution of starting cells used by Reset.
// Starting vectors hold the (row, column) of the starting cell.
func WithStarter(s environment.Starter) Option {
	return func(g *GridWorld) {
		g.Starter = s
	}
}

// WithDiscount sets the discount reported in every TimeStep
func WithDiscount(discount float64) Option {
	return func(g *GridWorld) {
		g.discount = discount
	}
}

// GridWorld is a rectangular grid in which an agent moves up, down,
// left or right. A move off the grid leaves the agent where it is.
// Every transition has the same reward and terminal cells are
// absorbing.
//
// The GridWorld serves both as the model used by dynamic programming,
// through Next and Reward, and as an episodic environment, through
// Reset and Step.
type GridWorld struct {
	*Goal
	environment.Starter
	r, c int

	position    Cell
	discount    float64
	currentStep timestep.TimeStep
}

// New returns a new GridWorld with r rows and c columns, the given
// terminal cells and the given reward for every transition. Unless a
// starter is given, episodes start in the first non-terminal cell in
// row-major order.
func New(r, c int, terminals []Cell, reward float64,
	opts ...Option) (*GridWorld, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("new: grid must have positive dimensions, "+
			"got (%d, %d)", r, c)
	}

	goal, err := NewGoal(terminals, r, c, reward)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	g := &GridWorld{
		Goal:     goal,
		r:        r,
		c:        c,
		discount: 1.0,
	}

	states := g.States()
	if len(states) == 0 {
		return nil, fmt.Errorf("new: every cell is terminal")
	}
	g.Starter = NewSingleStart(states[0])

	for _, opt := range opts {
		opt(g)
	}

	// Step panics until Reset is called
	g.currentStep = timestep.New(timestep.Last, 0, g.discount, nil, 0)
	return g, nil
}

// NewSquare returns an n x n GridWorld with terminal cells in the
// top-left and bottom-right corners and a reward of -1 for every
// transition
func NewSquare(n int, opts ...Option) (*GridWorld, error) {
	terminals := []Cell{{0, 0}, {n - 1, n - 1}}
	return New(n, n, terminals, DefaultReward, opts...)
}

// Default returns the square GridWorld of size DefaultSize
func Default(opts ...Option) *GridWorld {
	g, err := NewSquare(DefaultSize, opts...)
	if err != nil {
		panic(fmt.Sprintf("default: %v", err))
	}
	return g
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// Contains returns whether the cell lies inside the grid
func (g *GridWorld) Contains(cell Cell) bool {
	return cell.Row >= 0 && cell.Row < g.r && cell.Col >= 0 && cell.Col < g.c
}

// Next returns the cell reached by taking action a in cell. Moves
// off the grid and moves out of a terminal cell leave the agent in
// place.
func (g *GridWorld) Next(cell Cell, a Action) Cell {
	if !g.Contains(cell) {
		panic(fmt.Sprintf("next: cell %v outside of %dx%d grid", cell, g.r,
			g.c))
	}
	if g.IsTerminal(cell) {
		return cell
	}

	dr, dc := a.delta()
	next := Cell{cell.Row + dr, cell.Col + dc}
	if !g.Contains(next) {
		return cell
	}
	return next
}

// States returns every non-terminal cell in row-major order
func (g *GridWorld) States() []Cell {
	var states []Cell
	for i := 0; i < g.r; i++ {
		for j := 0; j < g.c; j++ {
			if cell := (Cell{i, j}); !g.IsTerminal(cell) {
				states = append(states, cell)
			}
		}
	}
	return states
}

// Index returns the index of a cell in the row-major flattening of the
// grid
func (g *GridWorld) Index(cell Cell) int {
	return cell.Row*g.c + cell.Col
}

// CellAt is the inverse of Index
func (g *GridWorld) CellAt(i int) Cell {
	return Cell{i / g.c, i % g.c}
}

// ObservationSpec returns the specification of observations. An
// observation indexes the grid through Index.
func (g *GridWorld) ObservationSpec() environment.Spec {
	return environment.NewSpec(environment.Observation, g.r*g.c)
}

// ActionSpec returns the specification of actions
func (g *GridWorld) ActionSpec() environment.Spec {
	return environment.NewSpec(environment.Action, NumActions)
}

// Reset starts a new episode in a cell sampled from the GridWorld's
// Starter
func (g *GridWorld) Reset() timestep.TimeStep {
	start := CellOf(g.Start())
	if !g.Contains(start) || g.IsTerminal(start) {
		panic(fmt.Sprintf("reset: invalid start cell %v", start))
	}

	g.position = start
	g.currentStep = timestep.New(timestep.First, 0, g.discount,
		g.observation(), 0)
	return g.currentStep
}

// Step takes action a in the current cell and returns the resulting
// TimeStep and whether the episode has ended
func (g *GridWorld) Step(a Action) (timestep.TimeStep, bool) {
	if g.currentStep.Last() {
		panic("step: episode is over, call Reset")
	}

	reward := g.Reward()
	g.position = g.Next(g.position, a)

	stepType := timestep.Mid
	if g.IsTerminal(g.position) {
		stepType = timestep.Last
	}

	number := g.currentStep.Number + 1
	g.currentStep = timestep.New(stepType, reward, g.discount,
		g.observation(), number)
	return g.currentStep, stepType == timestep.Last
}

// Position returns the agent's current cell
func (g *GridWorld) Position() Cell {
	return g.position
}

// LastTimeStep returns the last TimeStep generated
func (g *GridWorld) LastTimeStep() timestep.TimeStep {
	return g.currentStep
}

func (g *GridWorld) observation() *mat.VecDense {
	return cellVec(g.position)
}

// CellOf returns the cell encoded by an observation or start vector
func CellOf(obs mat.Vector) Cell {
	if obs.Len() != 2 {
		panic(fmt.Sprintf("cellOf: observation must have length 2, got %d",
			obs.Len()))
	}
	return Cell{int(obs.AtVec(0)), int(obs.AtVec(1))}
}

func cellVec(cell Cell) *mat.VecDense {
	return mat.NewVecDense(2, []float64{float64(cell.Row), float64(cell.Col)})
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |  Goal: %v  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, g.position, g.Goal, g.r, g.c)
}
