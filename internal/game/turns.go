// internal/game/turns.go
package game

import (
	"github.com/google/uuid"

	"github.com/unoroom/server/internal/models"
)

// Play resolves a single-card play. Out-of-turn, illegal and unheld cards
// reject without touching any state; rejection is silent on the wire.
func (l *Lobby) Play(playerID uuid.UUID, card models.Card) Outcome {
	return l.playCards(playerID, []models.Card{card})
}

// PlayGroup resolves a same-rank multi-card play. The first card must be
// legal against the discard top; the last card lands on the pile and drives
// the effect, scaled by the group size. The turn advance itself stays at the
// single-card step count for draw cards; that asymmetry is the house rule,
// not a bug.
func (l *Lobby) PlayGroup(playerID uuid.UUID, cards []models.Card) Outcome {
	if len(cards) == 0 {
		return OutcomeRejected
	}
	return l.playCards(playerID, cards)
}

// Draw passes the turn in exchange for one card off the deck tail. No
// playability re-check happens; the drawn card waits for a later turn.
func (l *Lobby) Draw(playerID uuid.UUID) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.Game.Started {
		return OutcomeRejected
	}
	idx := l.playerIndexLocked(playerID)
	if idx < 0 || idx != l.Game.Turn {
		return OutcomeRejected
	}

	p := l.Players[idx]
	p.Hand = append(p.Hand, l.drawFromDeckLocked(1)...)
	l.advanceLocked(1)

	l.recordLocked(playerID, "draw", nil)
	l.broadcastUpdateLocked()
	return OutcomeApplied
}

func (l *Lobby) playCards(playerID uuid.UUID, cards []models.Card) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.Game.Started || len(l.Game.DiscardPile) == 0 {
		return OutcomeRejected
	}
	idx := l.playerIndexLocked(playerID)
	if idx < 0 || idx != l.Game.Turn {
		return OutcomeRejected
	}

	first := cards[0]
	for _, c := range cards[1:] {
		if c.Rank != first.Rank {
			return OutcomeRejected
		}
	}
	if !Legal(first, l.Game.DiscardPile[len(l.Game.DiscardPile)-1]) {
		return OutcomeRejected
	}

	p := l.Players[idx]
	remaining, ok := removeCards(p.Hand, cards)
	if !ok {
		return OutcomeRejected
	}
	p.Hand = remaining

	n := len(cards)
	last := cards[n-1]
	l.Game.DiscardPile = append(l.Game.DiscardPile, last)

	switch last.Rank {
	case models.RankSkip:
		l.advanceLocked(n + 1)
	case models.RankReverse:
		if n%2 == 1 {
			l.Game.Direction *= -1
		}
		l.advanceLocked(1)
	case models.RankDrawTwo:
		l.dealPenaltyLocked(2 * n)
		l.advanceLocked(2)
	case models.RankWildDrawFour:
		l.dealPenaltyLocked(4 * n)
		l.advanceLocked(2)
	default:
		l.advanceLocked(1)
	}

	l.recordLocked(playerID, "play", map[string]interface{}{"cards": cards})
	l.broadcastUpdateLocked()

	if len(p.Hand) == 0 {
		l.broadcastWinLocked(p.Name)
		return OutcomeWon
	}
	return OutcomeApplied
}

// advanceLocked moves the turn index steps positions along the current
// direction, reduced with a Euclidean modulo so the index stays in range
// under either sign.
func (l *Lobby) advanceLocked(steps int) {
	n := len(l.Players)
	if n == 0 {
		l.Game.Turn = 0
		return
	}
	l.Game.Turn = euclidMod(l.Game.Turn+steps*l.Game.Direction, n)
}

// dealPenaltyLocked hands count cards to the player one step along the
// current direction.
func (l *Lobby) dealPenaltyLocked(count int) {
	n := len(l.Players)
	if n == 0 {
		return
	}
	next := l.Players[euclidMod(l.Game.Turn+l.Game.Direction, n)]
	next.Hand = append(next.Hand, l.drawFromDeckLocked(count)...)
}

// drawFromDeckLocked pops up to count cards from the deck tail. When the
// deck runs dry the discard pile minus its top card is shuffled back in;
// if that still cannot cover the draw, the draw stops short rather than
// inventing cards.
func (l *Lobby) drawFromDeckLocked(count int) []models.Card {
	drawn := make([]models.Card, 0, count)
	for i := 0; i < count; i++ {
		if len(l.Game.Deck) == 0 {
			l.replenishDeckLocked()
		}
		if len(l.Game.Deck) == 0 {
			break
		}
		top := len(l.Game.Deck) - 1
		drawn = append(drawn, l.Game.Deck[top])
		l.Game.Deck = l.Game.Deck[:top]
	}
	return drawn
}

// replenishDeckLocked recycles the discard pile into the deck, keeping only
// the pile's top card in place.
func (l *Lobby) replenishDeckLocked() {
	if len(l.Game.DiscardPile) <= 1 {
		return
	}
	top := l.Game.DiscardPile[len(l.Game.DiscardPile)-1]
	recycled := append([]models.Card(nil), l.Game.DiscardPile[:len(l.Game.DiscardPile)-1]...)
	ShuffleDeck(recycled, l.rng)
	l.Game.Deck = append(recycled, l.Game.Deck...)
	l.Game.DiscardPile = []models.Card{top}
}

// removeCards returns hand minus one held instance per requested card, or
// ok=false leaving the caller's hand untouched when any card is missing.
// Wild cards match held cards by rank alone since the client sends them with
// the chosen color already merged in.
func removeCards(hand, cards []models.Card) ([]models.Card, bool) {
	remaining := append([]models.Card(nil), hand...)
	for _, want := range cards {
		found := -1
		for i, held := range remaining {
			if want.MatchesHeld(held) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	return remaining, true
}
