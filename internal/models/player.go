// internal/models/player.go
package models

import "github.com/google/uuid"

// Player is a member of a lobby. Hand is deliberately excluded from JSON:
// a player's cards only ever travel in the private "hand" field of their own
// start/update events.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Ready     bool      `json:"ready"`
	IsCreator bool      `json:"isCreator"`
	Announce  bool      `json:"uno"`
	Hand      []Card    `json:"-"`
}

// PlayerInfo is the public roster view of a player: everything except the
// hand contents, plus the card count.
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Ready     bool   `json:"ready"`
	IsCreator bool   `json:"isCreator"`
	Uno       bool   `json:"uno"`
	CardCount int    `json:"cardCount"`
}

// Info returns the public view of the player.
func (p *Player) Info() PlayerInfo {
	return PlayerInfo{
		ID:        p.ID.String(),
		Name:      p.Name,
		Ready:     p.Ready,
		IsCreator: p.IsCreator,
		Uno:       p.Announce,
		CardCount: len(p.Hand),
	}
}
