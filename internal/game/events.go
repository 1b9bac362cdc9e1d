// internal/game/events.go
package game

import (
	"github.com/google/uuid"

	"github.com/unoroom/server/internal/models"
)

// Action is the "action" discriminator on every server-to-client event.
type Action string

const (
	ActionError   Action = "error"
	ActionPlayers Action = "players"
	ActionStart   Action = "start"
	ActionUpdate  Action = "update"
	ActionWin     Action = "win"
)

// Event is one server-to-client message. Fields are populated per action;
// Hand is always the recipient's own hand, never another player's, so start
// and update events are built once per recipient rather than broadcast
// verbatim.
type Event struct {
	Action      Action              `json:"action"`
	Message     string              `json:"message,omitempty"`
	LobbyID     string              `json:"lobbyId,omitempty"`
	ID          string              `json:"id,omitempty"`
	Players     []models.PlayerInfo `json:"players,omitempty"`
	Turn        *int                `json:"turn,omitempty"`
	Hand        []models.Card       `json:"hand,omitempty"`
	DiscardPile []models.Card       `json:"discardPile,omitempty"`
	Winner      string              `json:"winner,omitempty"`
}

// MemberConn is a player's presence in a lobby: the handle the engine uses
// to push events toward one websocket without knowing about the transport.
type MemberConn struct {
	PlayerID uuid.UUID
	Out      chan Event
}

// NewMemberConn builds a connection handle with a buffered out channel.
func NewMemberConn(playerID uuid.UUID) *MemberConn {
	return &MemberConn{
		PlayerID: playerID,
		Out:      make(chan Event, 16),
	}
}

// Write pushes an event onto the member's out channel without blocking.
// A full or abandoned channel drops the event; a slow recipient must never
// stall the lobby or the other recipients.
func (c *MemberConn) Write(ev Event) {
	select {
	case c.Out <- ev:
	default:
	}
}

// WriteError sends an error event to this member only.
func (c *MemberConn) WriteError(msg string) {
	c.Write(Event{Action: ActionError, Message: msg})
}

// Recorder receives applied game actions for external history keeping.
// Implementations must not block the caller.
type Recorder interface {
	Record(lobbyID string, actor uuid.UUID, action string, payload map[string]interface{})
}
