// internal/game/rules_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unoroom/server/internal/models"
)

func TestLegal(t *testing.T) {
	top := card(models.ColorRed, "5")

	assert.True(t, Legal(card(models.ColorRed, "9"), top), "color match")
	assert.True(t, Legal(card(models.ColorBlue, "5"), top), "rank match")
	assert.True(t, Legal(card(models.ColorGreen, models.RankWild), top), "wild always legal")
	assert.True(t, Legal(card(models.ColorGreen, models.RankWildDrawFour), top), "wild4 always legal")
	assert.False(t, Legal(card(models.ColorBlue, "9"), top))
	assert.False(t, Legal(card(models.ColorGreen, models.RankSkip), top))
}

func TestAnnounceStatus(t *testing.T) {
	assert.False(t, announceStatus(nil))
	assert.True(t, announceStatus([]models.Card{card(models.ColorRed, "5")}), "single card")
	assert.False(t, announceStatus([]models.Card{
		card(models.ColorRed, "5"),
		card(models.ColorRed, "7"),
	}), "differing ranks")
	assert.True(t, announceStatus([]models.Card{
		card(models.ColorRed, "7"),
		card(models.ColorGreen, "7"),
		card(models.ColorBlue, "7"),
	}), "one non-wild rank across the hand")
	assert.False(t, announceStatus([]models.Card{
		card(models.ColorNone, models.RankWild),
		card(models.ColorNone, models.RankWild),
	}), "wild ranks never announce as a group")
}

func TestMatchesHeld(t *testing.T) {
	held := card(models.ColorNone, models.RankWild)
	assert.True(t, card(models.ColorBlue, models.RankWild).MatchesHeld(held), "wilds match by rank, color already merged")
	assert.False(t, card(models.ColorBlue, models.RankWildDrawFour).MatchesHeld(held))

	heldRed := card(models.ColorRed, "5")
	assert.True(t, card(models.ColorRed, "5").MatchesHeld(heldRed))
	assert.False(t, card(models.ColorBlue, "5").MatchesHeld(heldRed), "non-wilds match exactly")
}

func TestEuclidMod(t *testing.T) {
	assert.Equal(t, 2, euclidMod(-1, 3))
	assert.Equal(t, 0, euclidMod(3, 3))
	assert.Equal(t, 1, euclidMod(-5, 3))
	assert.Equal(t, 1, euclidMod(4, 3))
}
