package filter

import "transitpay/internal/models"

// ActiveCards returns the cards usable for tap-in.
func ActiveCards(cards []models.Card) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// DefaultCard returns the active default card, falling back to the only active card.
func DefaultCard(cards []models.Card) (models.Card, bool) {
	active := ActiveCards(cards)
	for _, c := range active {
		if c.IsDefault {
			return c, true
		}
	}
	if len(active) == 1 {
		return active[0], true
	}
	return models.Card{}, false
}
