// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/unoroom/server/internal/game"
	"github.com/unoroom/server/internal/middleware"
)

// WSHandler upgrades the connection and runs the session: a write pump
// goroutine draining the member's out channel, and a read loop dispatching
// client actions into the lobby engine. Every action for a lobby is applied
// under that lobby's own lock, so no two mutations of one game interleave.
func WSHandler(logger *logrus.Logger, store *game.LobbyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"uno"},
			OriginPatterns: []string{"*"}, // Adjust in production.
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "uno" {
			c.Close(websocket.StatusPolicyViolation, "client must speak the uno subprotocol")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		session := &Session{PlayerID: uuid.New()}
		member := game.NewMemberConn(session.PlayerID)

		go writePump(ctx, c, member, logger)

		readErr := readPump(ctx, c, session, member, store, logger)

		// Transport gone: treat as leave under the same per-lobby exclusion
		// as any other action.
		if session.LobbyID != "" {
			if lob, ok := store.Get(session.LobbyID); ok {
				lob.Remove(session.PlayerID)
			}
		}
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, readErr)
	}
}

// readPump decodes inbound frames and routes them. A malformed frame is
// fatal to that frame only, never to the session.
func readPump(ctx context.Context, c *websocket.Conn, session *Session, member *game.MemberConn, store *game.LobbyStore, logger *logrus.Logger) error {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway ||
				strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("player %s sent invalid json: %v", session.PlayerID, err)
			member.WriteError("invalid JSON payload")
			continue
		}

		dispatch(session, member, store, logger, msg)
	}
}

// dispatch applies one client action. Out-of-turn and illegal moves come
// back Rejected and stay silent on the wire; only duplicate names produce
// an error event.
func dispatch(session *Session, member *game.MemberConn, store *game.LobbyStore, logger *logrus.Logger, msg ClientMessage) {
	if msg.Action == "join" {
		handleJoin(session, member, store, logger, msg)
		return
	}

	if session.LobbyID == "" {
		return
	}
	lob, ok := store.Get(session.LobbyID)
	if !ok {
		return
	}

	switch msg.Action {
	case "ready":
		lob.ToggleReady(session.PlayerID)
	case "play":
		if msg.Card == nil {
			return
		}
		outcome := lob.Play(session.PlayerID, *msg.Card)
		logger.Debugf("player %s play: %s", session.PlayerID, outcome)
	case "play_multiple":
		outcome := lob.PlayGroup(session.PlayerID, msg.Cards)
		logger.Debugf("player %s play_multiple(%d): %s", session.PlayerID, len(msg.Cards), outcome)
	case "draw":
		outcome := lob.Draw(session.PlayerID)
		logger.Debugf("player %s draw: %s", session.PlayerID, outcome)
	case "uno":
		lob.CallUno(session.PlayerID)
	case "leave":
		lob.Remove(session.PlayerID)
		session.LobbyID = ""
	default:
		logger.Warnf("player %s sent unknown action %q", session.PlayerID, msg.Action)
	}
}

func handleJoin(session *Session, member *game.MemberConn, store *game.LobbyStore, logger *logrus.Logger, msg ClientMessage) {
	if msg.Name == "" {
		member.WriteError("a name is required to join")
		return
	}
	if session.LobbyID != "" {
		// A post-win reset clears the roster but keeps the session pointing
		// at the old lobby; such stale memberships detach so the player can
		// join again. An active membership stays put.
		if old, ok := store.Get(session.LobbyID); ok {
			if old.HasPlayer(session.PlayerID) {
				logger.Warnf("player %s attempted to join while already in lobby %s", session.PlayerID, session.LobbyID)
				return
			}
			old.Remove(session.PlayerID)
		}
		session.LobbyID = ""
	}

	lobbyID := msg.LobbyID
	if lobbyID == "" {
		lobbyID = store.GenerateID()
	}
	lob := store.FindOrCreate(lobbyID)
	if err := lob.Join(msg.Name, member); err != nil {
		text := err.Error()
		if errors.Is(err, game.ErrDuplicateName) {
			text += ". Please choose a different name."
		}
		member.WriteError(text)
		return
	}
	session.LobbyID = lobbyID
}

// writePump serializes events from the member's out channel to the socket
// and keeps the connection alive with periodic pings. A failed write or
// ping ends the pump; the read loop observes the closure and cleans up.
func writePump(ctx context.Context, c *websocket.Conn, member *game.MemberConn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-member.Out:
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Warnf("failed to marshal %s event for player %s: %v", ev.Action, member.PlayerID, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to player %s: %v", member.PlayerID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping to player %s failed, assuming disconnect: %v", member.PlayerID, err)
				return
			}
		}
	}
}
