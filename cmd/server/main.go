// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/unoroom/server/internal/config"
	"github.com/unoroom/server/internal/game"
	"github.com/unoroom/server/internal/handlers"
	"github.com/unoroom/server/internal/historian"
	"github.com/unoroom/server/internal/middleware"
)

func main() {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(config.LogLevel()); err == nil {
		logger.SetLevel(level)
	}

	var rec game.Recorder
	if config.HistorianEnabled() {
		h, err := historian.Connect(config.RedisAddr(), config.RedisDB(), config.HistorianQueue(), logger)
		if err != nil {
			log.Fatalf("historian: %v", err)
		}
		defer h.Close()
		rec = h
		logger.Infof("historian publishing to %s", config.HistorianQueue())
	}

	store := game.NewLobbyStore(logger, rec)

	mux := http.NewServeMux()
	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.WSHandler(logger, store),
	)))
	mux.Handle("/lobbies", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.ListLobbiesHandler(logger, store),
	)))
	mux.HandleFunc("/healthz", handlers.HealthHandler)

	addr := ":" + config.Port()
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
