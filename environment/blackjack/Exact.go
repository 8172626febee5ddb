package blackjack

import "fmt"

// Bust is the key under which DealerOutcomes reports the probability
// that the dealer busts
const Bust = BustThreshold + 1

// cardProbability returns the probability that a single draw from an
// infinite deck has value v in [1, 10]
func cardProbability(v int) float64 {
	if v == 10 {
		return 4.0 / Ranks
	}
	return 1.0 / Ranks
}

// DealerOutcomes returns the exact distribution of the dealer's final
// total given the dealer's showing card, when the dealer plays the
// fixed strategy of PlayDealer against an infinite deck. Keys are the
// final totals 17 through 21, plus Bust.
func DealerOutcomes(showing int) map[int]float64 {
	if showing < 1 || showing > 10 {
		panic(fmt.Sprintf("dealerOutcomes: invalid showing card %d", showing))
	}

	memo := make(map[dealerState]map[int]float64)
	outcomes := make(map[int]float64)
	for card := 1; card <= 10; card++ {
		p := cardProbability(card)
		start := dealerState{showing + card, showing == 1 || card == 1}
		for total, q := range start.outcomes(memo) {
			outcomes[total] += p * q
		}
	}
	return outcomes
}

// dealerState is the part of a dealer's hand that determines how the
// rest of the dealer's play unfolds
type dealerState struct {
	hard   int
	hasAce bool
}

func (d dealerState) total() int {
	if d.hasAce && d.hard+10 <= BustThreshold {
		return d.hard + 10
	}
	return d.hard
}

func (d dealerState) outcomes(memo map[dealerState]map[int]float64) map[int]float64 {
	if out, ok := memo[d]; ok {
		return out
	}

	out := make(map[int]float64)
	switch total := d.total(); {
	case total > BustThreshold:
		out[Bust] = 1
	case total >= DealerStickThreshold:
		out[total] = 1
	default:
		for card := 1; card <= 10; card++ {
			next := dealerState{d.hard + card, d.hasAce || card == 1}
			p := cardProbability(card)
			for t, q := range next.outcomes(memo) {
				out[t] += p * q
			}
		}
	}

	memo[d] = out
	return out
}

// StickValue returns the exact expected reward of sticking with a
// total of sum against the dealer's showing card
func StickValue(sum, showing int) float64 {
	var value float64
	for total, p := range DealerOutcomes(showing) {
		switch {
		case total == Bust || total < sum:
			value += p
		case total > sum:
			value -= p
		}
	}
	return value
}
