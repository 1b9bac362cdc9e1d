// internal/models/card.go
package models

// Color is one of the four deck colors, or empty for a wild card that has
// not been bound to a color yet.
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorNone   Color = ""
)

// Colors lists the four concrete deck colors in deck-build order.
var Colors = []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// Rank identifies a card face. The string values double as the wire encoding
// under the "type" key.
type Rank string

const (
	RankSkip         Rank = "skip"
	RankReverse      Rank = "reverse"
	RankDrawTwo      Rank = "draw2"
	RankWild         Rank = "wild"
	RankWildDrawFour Rank = "wild4"
)

// NumberRanks lists the numeric ranks "0".."9".
var NumberRanks = []Rank{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// IsWild reports whether the rank is one of the two wild ranks.
func (r Rank) IsWild() bool {
	return r == RankWild || r == RankWildDrawFour
}

// Card is a single playing card. A wild card carries ColorNone until it is
// played; the client merges the chosen color into the card it sends, and that
// bound card is what lands on the discard pile.
type Card struct {
	Color Color `json:"color,omitempty"`
	Rank  Rank  `json:"type"`
}

// IsWild reports whether the card is a wild or wild-draw-four.
func (c Card) IsWild() bool {
	return c.Rank.IsWild()
}

// MatchesHeld reports whether c, as sent by a client, identifies the held
// card h in a hand. Wild cards match by rank alone because the client has
// already merged its color choice into c; everything else matches exactly.
func (c Card) MatchesHeld(h Card) bool {
	if c.IsWild() {
		return c.Rank == h.Rank
	}
	return c.Color == h.Color && c.Rank == h.Rank
}
