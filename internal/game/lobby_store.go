// internal/game/lobby_store.go
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	lobbyIDLength  = 6
	lobbyIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// LobbyStore manages live lobbies in memory only. Lobbies are created lazily
// on first join and remove themselves through OnEmpty once the last member
// is gone.
type LobbyStore struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
	rng     *rand.Rand
	logger  *logrus.Logger
	rec     Recorder
}

// LobbyInfo is a listing entry for a live lobby.
type LobbyInfo struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Started bool   `json:"started"`
}

// NewLobbyStore returns an in-memory store. rec may be nil when action
// recording is disabled.
func NewLobbyStore(logger *logrus.Logger, rec Recorder) *LobbyStore {
	return &LobbyStore{
		lobbies: make(map[string]*Lobby),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  logger,
		rec:     rec,
	}
}

// FindOrCreate retrieves the lobby for id, creating it if it does not exist.
func (s *LobbyStore) FindOrCreate(id string) *Lobby {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.lobbies[id]; ok {
		return l
	}
	l := NewLobby(id, s.logger, s.rec)
	l.OnEmpty = s.Delete
	s.lobbies[id] = l
	return l
}

// Get retrieves a lobby if it exists.
func (s *LobbyStore) Get(id string) (*Lobby, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lobbies[id]
	return l, ok
}

// Delete removes the lobby from memory.
func (s *LobbyStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lobbies, id)
}

// GenerateID produces a short human-typable lobby id, re-rolling on the
// unlikely collision with a live lobby.
func (s *LobbyStore) GenerateID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		id := make([]byte, lobbyIDLength)
		for i := range id {
			id[i] = lobbyIDCharset[s.rng.Intn(len(lobbyIDCharset))]
		}
		if _, taken := s.lobbies[string(id)]; !taken {
			return string(id)
		}
	}
}

// List returns a snapshot of the live lobbies, typically for debugging.
func (s *LobbyStore) List() []LobbyInfo {
	s.mu.Lock()
	lobbies := make([]*Lobby, 0, len(s.lobbies))
	for _, l := range s.lobbies {
		lobbies = append(lobbies, l)
	}
	s.mu.Unlock()

	infos := make([]LobbyInfo, 0, len(lobbies))
	for _, l := range lobbies {
		l.mu.Lock()
		infos = append(infos, LobbyInfo{ID: l.ID, Players: len(l.Players), Started: l.Game.Started})
		l.mu.Unlock()
	}
	return infos
}
