package database

import (
	"database/sql"
	"strings"
	"time"

	"vitrina/config"
	"vitrina/pkg/logger"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// One table, two rows. TIMESTAMP and TEXT are understood by both Postgres
// and SQLite, and the ON CONFLICT upsert in the repository works on both.
const createDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Connect opens the document store. With DATABASE_URL set it connects to
// Postgres; otherwise it falls back to an embedded SQLite file so the server
// runs with zero configuration. The documents table is created if absent.
func Connect(cfg *config.Config) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", withSSLMode(cfg.DatabaseURL))
		if err != nil {
			return nil, err
		}
		// Retry a few times in case of temporary DNS/network blips.
		for i := 0; i < 5; i++ {
			if err = db.Ping(); err == nil {
				break
			}
			logger.Sugar.Infof("Database connection failed, retrying in 2s... (%v)", err)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			db.Close()
			return nil, err
		}
		logger.Sugar.Info("Successfully connected to the database")
	} else {
		logger.Sugar.Infof("DATABASE_URL not set, using embedded SQLite store at %s", cfg.SQLitePath)
		db, err = sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// withSSLMode appends sslmode=require when the URL does not pick one itself.
// Managed Postgres hosts want TLS but usually without a verifiable CA.
func withSSLMode(url string) string {
	if strings.Contains(url, "sslmode=") {
		return url
	}
	if strings.Contains(url, "?") {
		return url + "&sslmode=require"
	}
	return url + "?sslmode=require"
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(createDocumentsTable)
	return err
}
