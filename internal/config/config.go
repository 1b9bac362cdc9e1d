// internal/config/config.go
package config

import (
	"os"
	"strconv"
)

// Typed getters over the process environment. A .env file, if present, is
// loaded by the godotenv autoload import in cmd/server.

// Port returns the HTTP listen port.
func Port() string {
	return getEnv("PORT", "8080")
}

// LogLevel returns the logrus level name.
func LogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

// HistorianEnabled reports whether applied actions should be published to
// Redis for the historian consumer.
func HistorianEnabled() bool {
	return getEnv("HISTORIAN_ENABLED", "false") == "true"
}

// RedisAddr returns the Redis address for the historian queue.
func RedisAddr() string {
	return getEnv("REDIS_ADDR", "localhost:6379")
}

// RedisDB returns the Redis database index.
func RedisDB() int {
	return getEnvInt("REDIS_DB", 0)
}

// HistorianQueue returns the Redis list name for action records.
func HistorianQueue() string {
	return getEnv("HISTORIAN_QUEUE_NAME", "unoroom_actions")
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
