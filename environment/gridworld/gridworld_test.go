package gridworld

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	g := Default()

	tests := []struct {
		name string
		from Cell
		a    Action
		want Cell
	}{
		{"up", Cell{2, 1}, Up, Cell{1, 1}},
		{"down", Cell{2, 1}, Down, Cell{3, 1}},
		{"left", Cell{2, 1}, Left, Cell{2, 0}},
		{"right", Cell{2, 1}, Right, Cell{2, 2}},
		{"off top", Cell{0, 2}, Up, Cell{0, 2}},
		{"off bottom", Cell{3, 1}, Down, Cell{3, 1}},
		{"off left", Cell{1, 0}, Left, Cell{1, 0}},
		{"off right", Cell{2, 3}, Right, Cell{2, 3}},
		{"into terminal", Cell{0, 1}, Left, Cell{0, 0}},
		{"terminal absorbs", Cell{3, 3}, Up, Cell{3, 3}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, g.Next(test.from, test.a))
		})
	}

	require.Panics(t, func() { g.Next(Cell{4, 0}, Up) })
}

func TestStates(t *testing.T) {
	g := Default()
	states := g.States()

	require.Len(t, states, 14)
	require.Equal(t, Cell{0, 1}, states[0])
	require.Equal(t, Cell{3, 2}, states[13])
	for _, s := range states {
		require.False(t, g.IsTerminal(s))
	}
	require.True(t, g.IsTerminal(Cell{0, 0}))
	require.True(t, g.IsTerminal(Cell{3, 3}))
	require.Equal(t, -1.0, g.Reward())

	if diff := cmp.Diff([]Cell{{0, 0}, {3, 3}}, g.Terminals()); diff != "" {
		t.Errorf("terminals mismatch (-want +got):\n%s", diff)
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(0, 4, nil, -1)
	require.Error(t, err)

	_, err = New(2, 2, []Cell{{2, 0}}, -1)
	require.Error(t, err)

	_, err = New(1, 1, []Cell{{0, 0}}, -1)
	require.Error(t, err)
}

func TestIndex(t *testing.T) {
	g, err := New(3, 5, []Cell{{0, 0}}, -1)
	require.NoError(t, err)

	r, c := g.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 5, c)
	require.Equal(t, 15, g.ObservationSpec().N)
	require.Equal(t, NumActions, g.ActionSpec().N)

	for i := 0; i < r*c; i++ {
		require.Equal(t, i, g.Index(g.CellAt(i)))
	}
}

func TestEpisode(t *testing.T) {
	g := Default(WithStarter(NewSingleStart(Cell{0, 2})))
	require.Panics(t, func() { g.Step(Up) })

	step := g.Reset()
	require.True(t, step.First())
	require.Equal(t, Cell{0, 2}, CellOf(step.Observation))

	step, done := g.Step(Up)
	require.False(t, done)
	require.Equal(t, -1.0, step.Reward)
	require.Equal(t, Cell{0, 2}, g.Position())

	g.Step(Left)
	step, done = g.Step(Left)
	require.True(t, done)
	require.True(t, step.Last())
	require.Equal(t, 3, step.Number)
	require.Equal(t, -1.0, step.Reward)
	require.Equal(t, Cell{0, 0}, CellOf(g.LastTimeStep().Observation))

	require.Panics(t, func() { g.Step(Right) })
}

func TestUniformStart(t *testing.T) {
	g := Default(WithUniformStart(11))

	seen := make(map[Cell]int)
	for i := 0; i < 2000; i++ {
		cell := CellOf(g.Reset().Observation)
		require.False(t, g.IsTerminal(cell))
		seen[cell]++
	}
	require.Len(t, seen, 14)
}

func TestResetRejectsTerminalStart(t *testing.T) {
	g := Default(WithStarter(NewSingleStart(Cell{3, 3})))
	require.Panics(t, func() { g.Reset() })
}

func TestNewSquare(t *testing.T) {
	g, err := NewSquare(6)
	require.NoError(t, err)
	require.Len(t, g.States(), 34)
	require.True(t, g.IsTerminal(Cell{5, 5}))

	_, err = NewSquare(1)
	require.Error(t, err)
}
