package config

import (
	"os"
	"strings"

	"vitrina/pkg/logger"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. It is built
// once in main and passed down; nothing else reads os.Getenv for these.
type Config struct {
	Port        string
	AdminToken  string // empty means admin routes fail closed
	DatabaseURL string // Postgres DSN; when empty the embedded SQLite store is used
	SQLitePath  string
	PublicDir   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	cfg := &Config{
		Port:        getenv("PORT", "3000"),
		AdminToken:  strings.TrimSpace(os.Getenv("ADMIN_TOKEN")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:  getenv("SQLITE_PATH", "vitrina.db"),
		PublicDir:   getenv("PUBLIC_DIR", "public"),
	}

	if cfg.AdminToken == "" {
		logger.Sugar.Warn("ADMIN_TOKEN is not set; admin endpoints will reject every request")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
