package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"vitrina/pkg/logger"
)

type ContentRepository struct {
	DB *sql.DB
}

func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// Get returns the stored document, or nil when the row is absent. Absence is
// legal before seeding and is not an error.
func (r *ContentRepository) Get(key string) (json.RawMessage, error) {
	var value []byte
	err := r.DB.QueryRow(`SELECT value FROM documents WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to read document %s: %v", key, err)
		return nil, err
	}
	return json.RawMessage(value), nil
}

// Upsert overwrites the document wholesale in a single statement, so
// concurrent writers race only at the database's row-level atomicity.
// The value is bound as a string: lib/pq rejects []byte for text columns
// holding JSON.
func (r *ContentRepository) Upsert(key string, value json.RawMessage) (time.Time, error) {
	now := time.Now().UTC()
	_, err := r.DB.Exec(`INSERT INTO documents (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now)
	if err != nil {
		logger.Sugar.Errorf("Failed to upsert document %s: %v", key, err)
		return time.Time{}, err
	}
	return now, nil
}
