package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the server wiring, resolved from the environment. A .env file is
// honored when present; every key has a working default so the binary runs
// with nothing set.
type Config struct {
	Addr          string
	LedgerBackend string // memory | sqlite | redis
	SQLitePath    string
	RedisAddr     string
	RegistryFile  string
	HistoryWindow time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:          getEnv("ROUTING_ADDR", ":8080"),
		LedgerBackend: getEnv("ROUTING_LEDGER", "memory"),
		SQLitePath:    getEnv("ROUTING_SQLITE_PATH", "routing.db"),
		RedisAddr:     getEnv("ROUTING_REDIS_ADDR", "localhost:6379"),
		RegistryFile:  getEnv("ROUTING_REGISTRY_FILE", ""),
		HistoryWindow: getDuration("ROUTING_HISTORY_WINDOW", 30*24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
