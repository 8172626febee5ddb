package blackjack

// Hand is the list of card values held by the player or the dealer
type Hand []int

// BustThreshold is the largest total a hand can have without busting
const BustThreshold = 21

// DealerStickThreshold is the total at which the dealer stops drawing
const DealerStickThreshold = 17

// Value returns the total of the hand and whether the hand holds a
// usable ace, that is, an ace which counts as 11 without the total
// exceeding 21
func (h Hand) Value() (total int, usableAce bool) {
	hasAce := false
	for _, card := range h {
		total += card
		if card == 1 {
			hasAce = true
		}
	}

	if hasAce && total+10 <= BustThreshold {
		return total + 10, true
	}
	return total, false
}

// Total returns the value of the hand, counting a usable ace as 11
func (h Hand) Total() int {
	total, _ := h.Value()
	return total
}

// Bust returns whether the hand's total exceeds 21
func (h Hand) Bust() bool {
	return h.Total() > BustThreshold
}

// PlayDealer plays the dealer's fixed strategy on h, drawing from d
// until the total is at least 17, and returns the final hand
func PlayDealer(h Hand, d CardSource) Hand {
	for h.Total() < DealerStickThreshold {
		h = append(h, d.Draw())
	}
	return h
}
