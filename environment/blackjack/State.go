package blackjack

import "fmt"

// Action is an action the player can take
type Action int

const (
	Hit Action = iota
	Stick
)

// NumActions is the number of player actions
const NumActions = 2

// Actions lists the player actions in enumeration order
var Actions = []Action{Hit, Stick}

func (a Action) String() string {
	switch a {
	case Hit:
		return "HIT"
	case Stick:
		return "STICK"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

const (
	// MinSum and MaxSum bound the player totals of non-terminal states
	MinSum = 4
	MaxSum = 21

	// NumDealerCards is the number of values the dealer's visible card
	// may take, ace (1) through ten
	NumDealerCards = 10

	// StickThreshold is the player total from which the player always
	// sticks, regardless of any learned policy
	StickThreshold = 20

	// NumStates is the number of distinct player states
	NumStates = (MaxSum - MinSum + 1) * NumDealerCards * 2
)

// State is the player's view of a game: their total, the dealer's
// visible card, and whether they hold a usable ace
type State struct {
	Sum       int
	Dealer    int
	UsableAce bool
}

// Valid returns whether the State lies within the enumerated state
// space
func (s State) Valid() bool {
	return s.Sum >= MinSum && s.Sum <= MaxSum &&
		s.Dealer >= 1 && s.Dealer <= NumDealerCards
}

// Index returns the position of the state in the enumeration of all
// states. States are enumerated by total, then dealer card, then by
// usable ace with true before false.
func (s State) Index() int {
	ace := 1
	if s.UsableAce {
		ace = 0
	}
	return ((s.Sum-MinSum)*NumDealerCards+(s.Dealer-1))*2 + ace
}

// StateAt returns the state with enumeration index i. It is the inverse
// of State.Index.
func StateAt(i int) State {
	ace := i % 2
	i /= 2
	return State{
		Sum:       i/NumDealerCards + MinSum,
		Dealer:    i%NumDealerCards + 1,
		UsableAce: ace == 0,
	}
}

// States returns every state in enumeration order
func States() []State {
	states := make([]State, NumStates)
	for i := range states {
		states[i] = StateAt(i)
	}
	return states
}

// ForcedStick returns whether the player must stick in the state
func (s State) ForcedStick() bool {
	return s.Sum >= StickThreshold
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %d, %v)", s.Sum, s.Dealer, s.UsableAce)
}
