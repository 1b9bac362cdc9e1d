// internal/game/deck.go
package game

import (
	"math/rand"

	"github.com/unoroom/server/internal/models"
)

// DeckSize is the fixed card count of a full deck. The total is conserved
// across deck + discard pile + all hands for the life of a round.
const DeckSize = 108

// NewDeck builds the standard 108-card deck in deterministic order:
// per color one "0" and two of each of "1".."9", skip, reverse and draw2,
// then four wilds and four wild-draw-fours.
func NewDeck() []models.Card {
	deck := make([]models.Card, 0, DeckSize)
	for _, color := range models.Colors {
		for _, rank := range models.NumberRanks {
			deck = append(deck, models.Card{Color: color, Rank: rank})
			if rank != models.NumberRanks[0] {
				deck = append(deck, models.Card{Color: color, Rank: rank})
			}
		}
		for _, rank := range []models.Rank{models.RankSkip, models.RankReverse, models.RankDrawTwo} {
			deck = append(deck,
				models.Card{Color: color, Rank: rank},
				models.Card{Color: color, Rank: rank},
			)
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck,
			models.Card{Rank: models.RankWild},
			models.Card{Rank: models.RankWildDrawFour},
		)
	}
	return deck
}

// ShuffleDeck permutes cards in place with an unbiased Fisher-Yates shuffle.
func ShuffleDeck(cards []models.Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
