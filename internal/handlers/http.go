// internal/handlers/http.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/unoroom/server/internal/game"
)

// ListLobbiesHandler returns the live lobbies as JSON, for debugging and
// simple lobby browsers.
func ListLobbiesHandler(logger *logrus.Logger, store *game.LobbyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(store.List()); err != nil {
			logger.Warnf("failed to encode lobby list: %v", err)
		}
	}
}

// HealthHandler is a liveness probe.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
