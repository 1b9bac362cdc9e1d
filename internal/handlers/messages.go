// internal/handlers/messages.go
package handlers

import (
	"github.com/google/uuid"

	"github.com/unoroom/server/internal/models"
)

// ClientMessage is one inbound JSON frame. The "action" field selects the
// operation; the remaining fields are populated per action. Wild cards
// arrive with the client's color choice already merged in.
type ClientMessage struct {
	Action  string        `json:"action"`
	Name    string        `json:"name,omitempty"`
	LobbyID string        `json:"lobbyId,omitempty"`
	Card    *models.Card  `json:"card,omitempty"`
	Cards   []models.Card `json:"cards,omitempty"`
}

// Session is the per-connection record tying a transport channel to a
// player and their lobby. It is owned by the websocket handler and passed
// explicitly into every dispatch; there is no ambient lookup.
type Session struct {
	PlayerID uuid.UUID
	LobbyID  string
}
