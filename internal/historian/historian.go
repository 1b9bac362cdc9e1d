// internal/historian/historian.go
package historian

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ActionRecord is one applied game action, pushed onto a Redis list for an
// external historian consumer. This is an action log, not game state: the
// server never reads it back.
type ActionRecord struct {
	LobbyID   string                 `json:"lobby_id"`
	ActorID   uuid.UUID              `json:"actor_id"`
	Action    string                 `json:"action"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Historian publishes action records to a Redis queue. It satisfies
// game.Recorder.
type Historian struct {
	rdb    *redis.Client
	queue  string
	logger *logrus.Logger
}

// Connect dials Redis and verifies the connection with a ping.
func Connect(addr string, db int, queue string, logger *logrus.Logger) (*Historian, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &Historian{rdb: rdb, queue: queue, logger: logger}, nil
}

// Record serializes the action and pushes it onto the queue. The push runs
// on its own goroutine: recording happens under the lobby lock and must not
// block play on a slow Redis.
func (h *Historian) Record(lobbyID string, actor uuid.UUID, action string, payload map[string]interface{}) {
	rec := ActionRecord{
		LobbyID:   lobbyID,
		ActorID:   actor,
		Action:    action,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		h.logger.Warnf("historian: failed to marshal %s record for lobby %s: %v", action, lobbyID, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := h.rdb.RPush(ctx, h.queue, data).Err(); err != nil {
			h.logger.Warnf("historian: failed to push %s record for lobby %s: %v", action, lobbyID, err)
		}
	}()
}

// Close releases the Redis client.
func (h *Historian) Close() error {
	return h.rdb.Close()
}
