// internal/game/rules.go
package game

import "github.com/unoroom/server/internal/models"

// Outcome names the result of attempting a game action. Rejected covers
// out-of-turn and illegal moves, which are silent on the wire but must stay
// distinguishable from a crash for callers and tests.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeRejected
	OutcomeWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeRejected:
		return "rejected"
	case OutcomeWon:
		return "won"
	}
	return "unknown"
}

// Legal reports whether card may be played onto top: same color, same rank,
// or any wild.
func Legal(card, top models.Card) bool {
	return card.Color == top.Color || card.Rank == top.Rank || card.IsWild()
}

// announceStatus computes the "about to win" flag for a hand: a single card,
// or several cards that all share one non-wild rank (playable as one group).
func announceStatus(hand []models.Card) bool {
	if len(hand) == 1 {
		return true
	}
	if len(hand) < 2 {
		return false
	}
	first := hand[0]
	if first.IsWild() {
		return false
	}
	for _, c := range hand[1:] {
		if c.Rank != first.Rank {
			return false
		}
	}
	return true
}
