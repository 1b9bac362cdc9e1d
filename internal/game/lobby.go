// internal/game/lobby.go
package game

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/unoroom/server/internal/models"
)

// ErrDuplicateName is returned by Join when the requested name is already
// taken in the lobby, compared case-insensitively.
var ErrDuplicateName = errors.New("a player with that name already exists in this lobby")

// ErrLobbyFull is returned by Join once the roster has reached MaxPlayers.
var ErrLobbyFull = errors.New("this lobby is full")

// HandSize is the number of cards dealt to each player at game start.
const HandSize = 7

// MaxPlayers caps the roster. Fifteen hands of seven consume 105 of the 108
// cards; a sixteenth player could not be dealt a full hand.
const MaxPlayers = 15

// GameState is the round-scoped state of a lobby. The draw pile's top is the
// slice end; dealing consumes from the front. DiscardPile's top is the last
// element.
type GameState struct {
	Deck        []models.Card
	DiscardPile []models.Card
	Turn        int
	Direction   int
	Started     bool
}

// Lobby is an isolated game session: roster, live connections and game state
// behind a single mutex. Every inbound action and every disconnect for this
// lobby is applied under that lock, so at most one mutation is ever in
// flight; lobbies are fully independent of each other.
type Lobby struct {
	ID      string
	Players []*models.Player
	Game    GameState

	conns map[uuid.UUID]*MemberConn
	mu    sync.Mutex

	rng *rand.Rand
	log *logrus.Entry
	rec Recorder

	// OnEmpty is invoked after the last member is gone, typically to remove
	// the lobby from its store.
	OnEmpty func(id string)
}

// NewLobby creates an empty pre-game lobby.
func NewLobby(id string, logger *logrus.Logger, rec Recorder) *Lobby {
	return &Lobby{
		ID:    id,
		Game:  GameState{Direction: 1},
		conns: make(map[uuid.UUID]*MemberConn),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		log:   logger.WithField("lobby", id),
		rec:   rec,
	}
}

// Join appends a new player to the roster and registers their connection.
// Full lobbies and duplicate names reject with their sentinel errors; the
// first joiner becomes the creator. On success the updated roster is
// broadcast to every member.
func (l *Lobby) Join(name string, conn *MemberConn) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.Players) >= MaxPlayers {
		return ErrLobbyFull
	}
	for _, p := range l.Players {
		if strings.EqualFold(p.Name, name) {
			return ErrDuplicateName
		}
	}

	player := &models.Player{
		ID:        conn.PlayerID,
		Name:      name,
		IsCreator: len(l.Players) == 0,
	}
	l.Players = append(l.Players, player)
	l.conns[conn.PlayerID] = conn

	l.log.Infof("player %s (%s) joined", name, conn.PlayerID)
	l.recordLocked(conn.PlayerID, "join", map[string]interface{}{"name": name})
	l.broadcastRosterLocked()
	return nil
}

// ToggleReady flips the player's ready flag, broadcasts the roster and
// starts the game once more than one player is present and all are ready.
// Unknown players are a no-op.
func (l *Lobby) ToggleReady(playerID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.playerLocked(playerID)
	if p == nil {
		return
	}
	p.Ready = !p.Ready
	l.recordLocked(playerID, "ready", map[string]interface{}{"ready": p.Ready})
	l.broadcastRosterLocked()

	if l.Game.Started || len(l.Players) < 2 {
		return
	}
	for _, pl := range l.Players {
		if !pl.Ready {
			return
		}
	}
	l.startLocked()
}

// CallUno handles an explicit uno call: valid only while holding exactly one
// card, in which case the announce flag is set and the roster broadcast.
func (l *Lobby) CallUno(playerID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.playerLocked(playerID)
	if p == nil || len(p.Hand) != 1 {
		return
	}
	p.Announce = true
	l.recordLocked(playerID, "uno", nil)
	l.broadcastRosterLocked()
}

// Remove drops a player from the roster and forgets their connection, for
// both explicit leave and transport disconnect. The turn index is reduced
// back into range; beyond that, mid-game removal keeps the plain modulo
// bookkeeping, so whose turn is "next" can shift. When the last member is
// gone the OnEmpty callback fires.
func (l *Lobby) Remove(playerID uuid.UUID) {
	l.mu.Lock()

	delete(l.conns, playerID)

	idx := -1
	for i, p := range l.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		name := l.Players[idx].Name
		l.Players = append(l.Players[:idx], l.Players[idx+1:]...)
		if n := len(l.Players); n > 0 {
			l.Game.Turn = euclidMod(l.Game.Turn, n)
		}
		l.log.Infof("player %s left", name)
		l.recordLocked(playerID, "leave", nil)
		l.broadcastRosterLocked()
	}

	empty := len(l.Players) == 0 && len(l.conns) == 0
	onEmpty := l.OnEmpty
	l.mu.Unlock()

	if empty && onEmpty != nil {
		onEmpty(l.ID)
	}
}

// HasPlayer reports whether the player is currently on the roster.
func (l *Lobby) HasPlayer(playerID uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playerLocked(playerID) != nil
}

// MemberCount returns the number of live connections.
func (l *Lobby) MemberCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.conns)
}

// PlayerCount returns the roster size.
func (l *Lobby) PlayerCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Players)
}

// startLocked begins the round: fresh shuffled deck, seven cards each in
// join order dealt from the deck front, then the initial discard.
func (l *Lobby) startLocked() {
	l.Game.Started = true
	l.Game.Deck = NewDeck()
	ShuffleDeck(l.Game.Deck, l.rng)

	for _, p := range l.Players {
		p.Hand = append([]models.Card(nil), l.Game.Deck[:HandSize]...)
		l.Game.Deck = l.Game.Deck[HandSize:]
		p.Announce = false
	}

	l.flipInitialDiscardLocked()
	l.refreshAnnounceLocked()

	l.log.Infof("game started with %d players", len(l.Players))
	l.recordLocked(uuid.Nil, "start", map[string]interface{}{"players": len(l.Players)})

	turn := l.Game.Turn
	roster := l.rosterLocked()
	for id, conn := range l.conns {
		p := l.playerLocked(id)
		if p == nil {
			continue
		}
		conn.Write(Event{
			Action:      ActionStart,
			ID:          id.String(),
			Players:     roster,
			Turn:        &turn,
			Hand:        append([]models.Card(nil), p.Hand...),
			DiscardPile: append([]models.Card(nil), l.Game.DiscardPile...),
		})
	}
}

// flipInitialDiscardLocked moves the first non-wild card of the deck onto
// the discard pile. A deck whose remainder is all wilds is reshuffled and
// rescanned once.
func (l *Lobby) flipInitialDiscardLocked() {
	for attempt := 0; attempt < 2; attempt++ {
		for i, c := range l.Game.Deck {
			if !c.IsWild() {
				l.Game.Deck = append(l.Game.Deck[:i], l.Game.Deck[i+1:]...)
				l.Game.DiscardPile = append(l.Game.DiscardPile, c)
				return
			}
		}
		ShuffleDeck(l.Game.Deck, l.rng)
	}
}

// resetLocked returns the lobby to its pre-game state after a win: roster
// cleared, game zeroed. Connections stay open so the same clients can join
// again under the same lobby id.
func (l *Lobby) resetLocked() {
	l.Players = nil
	l.Game = GameState{Direction: 1}
}

// refreshAnnounceLocked recomputes the derived announce flag for everyone.
func (l *Lobby) refreshAnnounceLocked() {
	for _, p := range l.Players {
		p.Announce = announceStatus(p.Hand)
	}
}

// broadcastRosterLocked fans the players event out to every member.
func (l *Lobby) broadcastRosterLocked() {
	turn := l.Game.Turn
	ev := Event{
		Action:  ActionPlayers,
		Players: l.rosterLocked(),
		Turn:    &turn,
		LobbyID: l.ID,
	}
	for _, conn := range l.conns {
		conn.Write(ev)
	}
}

// broadcastUpdateLocked recomputes announce flags and sends each member a
// tailored update carrying their own hand.
func (l *Lobby) broadcastUpdateLocked() {
	l.refreshAnnounceLocked()

	turn := l.Game.Turn
	roster := l.rosterLocked()
	discard := append([]models.Card(nil), l.Game.DiscardPile...)
	for id, conn := range l.conns {
		var hand []models.Card
		if p := l.playerLocked(id); p != nil {
			hand = append([]models.Card(nil), p.Hand...)
		}
		conn.Write(Event{
			Action:      ActionUpdate,
			Players:     roster,
			Turn:        &turn,
			Hand:        hand,
			DiscardPile: discard,
		})
	}
}

// broadcastWinLocked announces the winner and resets the lobby to pre-game.
func (l *Lobby) broadcastWinLocked(winner string) {
	ev := Event{Action: ActionWin, Winner: winner}
	for _, conn := range l.conns {
		conn.Write(ev)
	}
	l.log.Infof("player %s won, lobby reset", winner)
	l.recordLocked(uuid.Nil, "win", map[string]interface{}{"winner": winner})
	l.resetLocked()
}

func (l *Lobby) rosterLocked() []models.PlayerInfo {
	roster := make([]models.PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		roster[i] = p.Info()
	}
	return roster
}

func (l *Lobby) playerLocked(id uuid.UUID) *models.Player {
	for _, p := range l.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (l *Lobby) playerIndexLocked(id uuid.UUID) int {
	for i, p := range l.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (l *Lobby) recordLocked(actor uuid.UUID, action string, payload map[string]interface{}) {
	if l.rec == nil {
		return
	}
	l.rec.Record(l.ID, actor, action, payload)
}

// euclidMod reduces i into [0, n) for any sign of i.
func euclidMod(i, n int) int {
	return ((i % n) + n) % n
}
