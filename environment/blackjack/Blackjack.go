// Package blackjack implements a simplified, episodic game of
// blackjack played against a dealer with a fixed strategy.
//
// Cards are drawn from an infinite deck. The player starts with two
// cards and may hit, drawing another card, or stick. Exceeding 21 is a
// bust and immediately loses. When the player sticks, the dealer draws
// until their total is at least 17. A dealer bust wins for the player,
// and otherwise the larger total wins. Equal totals are a draw.
//
// Rewards are +1 for a win, -1 for a loss and 0 for a draw, given on
// the last step of the episode. All other rewards are zero.
package blackjack

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

// Blackjack implements the game of blackjack as an episodic environment
type Blackjack struct {
	deck        CardSource
	player      Hand
	dealer      Hand
	currentStep timestep.TimeStep
}

// New creates a new Blackjack environment, dealing cards from a deck
// seeded with seed. The environment must be Reset before each episode.
func New(seed uint64) *Blackjack {
	return NewWithDeck(NewDeck(rand.NewSource(seed)))
}

// NewWithDeck creates a new Blackjack environment dealing from d
func NewWithDeck(d CardSource) *Blackjack {
	obs := mat.NewVecDense(3, nil)
	last := timestep.New(timestep.Last, 0, 1, obs, 0)
	return &Blackjack{deck: d, currentStep: last}
}

// Reset deals a new game and returns its first TimeStep
func (b *Blackjack) Reset() timestep.TimeStep {
	b.player = Hand{b.deck.Draw(), b.deck.Draw()}
	b.dealer = Hand{b.deck.Draw(), b.deck.Draw()}

	b.currentStep = timestep.New(timestep.First, 0, 1, b.observation(), 0)
	return b.currentStep
}

// Step takes action a in the current game and returns the next TimeStep
// and whether the game has ended
func (b *Blackjack) Step(a Action) (timestep.TimeStep, bool) {
	if b.currentStep.Last() {
		panic("step: game has ended, Reset must be called first")
	}

	number := b.currentStep.Number + 1
	switch a {
	case Hit:
		b.player = append(b.player, b.deck.Draw())
		if b.player.Bust() {
			return b.end(-1, number), true
		}
		b.currentStep = timestep.New(timestep.Mid, 0, 1, b.observation(),
			number)
		return b.currentStep, false

	case Stick:
		b.dealer = PlayDealer(b.dealer, b.deck)
		return b.end(b.outcome(), number), true
	}

	panic(fmt.Sprintf("step: no such action %v", a))
}

// outcome returns the player's reward after the dealer has played
func (b *Blackjack) outcome() float64 {
	if b.dealer.Bust() {
		return 1
	}

	player, dealer := b.player.Total(), b.dealer.Total()
	switch {
	case player > dealer:
		return 1
	case player < dealer:
		return -1
	default:
		return 0
	}
}

func (b *Blackjack) end(reward float64, number int) timestep.TimeStep {
	b.currentStep = timestep.New(timestep.Last, reward, 1, b.observation(),
		number)
	return b.currentStep
}

// State returns the player's current state
func (b *Blackjack) State() State {
	total, usable := b.player.Value()
	return State{Sum: total, Dealer: b.dealer[0], UsableAce: usable}
}

// Player returns a copy of the player's hand
func (b *Blackjack) Player() Hand {
	return append(Hand(nil), b.player...)
}

// DealerHand returns a copy of the dealer's hand
func (b *Blackjack) DealerHand() Hand {
	return append(Hand(nil), b.dealer...)
}

// LastTimeStep returns the most recent TimeStep
func (b *Blackjack) LastTimeStep() timestep.TimeStep {
	return b.currentStep
}

// ObservationSpec returns the specification of the player states
func (b *Blackjack) ObservationSpec() environment.Spec {
	return environment.NewSpec(environment.Observation, NumStates)
}

// ActionSpec returns the specification of the player actions
func (b *Blackjack) ActionSpec() environment.Spec {
	return environment.NewSpec(environment.Action, NumActions)
}

// observation encodes the player's state as the vector
// (total, dealer card, usable ace)
func (b *Blackjack) observation() *mat.VecDense {
	s := b.State()
	ace := 0.0
	if s.UsableAce {
		ace = 1.0
	}
	return mat.NewVecDense(3, []float64{float64(s.Sum), float64(s.Dealer),
		ace})
}

// StateOf decodes an observation returned by a Blackjack environment
func StateOf(obs mat.Vector) State {
	return State{
		Sum:       int(obs.AtVec(0)),
		Dealer:    int(obs.AtVec(1)),
		UsableAce: obs.AtVec(2) != 0,
	}
}

func (b *Blackjack) String() string {
	return fmt.Sprintf("Blackjack | Player: %v  |  Dealer: %v  |  %v",
		b.player, b.dealer, b.currentStep)
}
