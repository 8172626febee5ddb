package blackjack

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Ranks is the number of card ranks in a suit, ace through king
const Ranks = 13

// CardSource deals card values in [1, 10], with an ace dealt as 1
type CardSource interface {
	Draw() int
}

// Deck is an infinite deck of cards: every draw is independent and
// uniform over the thirteen ranks. Face cards are worth 10 and an ace
// is drawn as 1.
type Deck struct {
	rank distuv.Categorical
}

// NewDeck returns a new Deck drawing from src
func NewDeck(src rand.Source) *Deck {
	weights := make([]float64, Ranks)
	for i := range weights {
		weights[i] = 1.0 / Ranks
	}
	return &Deck{distuv.NewCategorical(weights, src)}
}

// Draw draws a single card and returns its value in [1, 10]
func (d *Deck) Draw() int {
	return CardValue(int(d.rank.Rand()) + 1)
}

// CardValue returns the value of a card of rank r in [1, 13]
func CardValue(r int) int {
	if r > 10 {
		return 10
	}
	return r
}
