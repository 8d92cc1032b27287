package service

import (
	"encoding/json"
	"time"

	"vitrina/internal/content/model"
	"vitrina/internal/content/repository"
	"vitrina/internal/content/schema"
	"vitrina/internal/content/seed"
	"vitrina/pkg/logger"
	"vitrina/socket"
)

// ValidationError carries the validator's message for a rejected document.
// Handlers map it to 400; every other error is a storage failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type ContentService struct {
	Repo *repository.ContentRepository
	Hub  *socket.Hub // may be nil when no preview channel is wired
}

func NewContentService(repo *repository.ContentRepository, hub *socket.Hub) *ContentService {
	return &ContentService{Repo: repo, Hub: hub}
}

// GetDocument reads the stored document, falling back to the embedded seed
// when the row is absent so the public site always renders.
func (s *ContentService) GetDocument(key string) (json.RawMessage, error) {
	value, err := s.Repo.Get(key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		fallback, _ := seed.Document(key)
		return fallback, nil
	}
	return value, nil
}

// SaveDocument validates and persists a submitted document, then notifies
// preview subscribers. The document is overwritten wholesale; last writer
// wins.
func (s *ContentService) SaveDocument(key string, doc map[string]interface{}) (time.Time, error) {
	if msg := schema.Validate(key, doc); msg != "" {
		return time.Time{}, &ValidationError{Message: msg}
	}

	value, err := json.Marshal(doc)
	if err != nil {
		return time.Time{}, err
	}

	updatedAt, err := s.Repo.Upsert(key, value)
	if err != nil {
		return time.Time{}, err
	}

	if s.Hub != nil {
		s.Hub.Publish(key, value)
	}
	return updatedAt, nil
}

// SeedDefaults inserts the bundled document for every key the store does not
// have yet. Failures are logged and skipped: the server still starts, and
// the health checker reports the missing document until an admin PUTs one.
func (s *ContentService) SeedDefaults() {
	for _, key := range model.Keys() {
		existing, err := s.Repo.Get(key)
		if err != nil {
			logger.Sugar.Errorf("Seed check for %s failed: %v", key, err)
			continue
		}
		if existing != nil {
			continue
		}

		raw, ok := seed.Document(key)
		if !ok {
			logger.Sugar.Errorf("No bundled seed for %s", key)
			continue
		}
		var doc map[string]interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			logger.Sugar.Errorf("Bundled seed for %s is not valid JSON: %v", key, err)
			continue
		}
		if msg := schema.Validate(key, doc); msg != "" {
			logger.Sugar.Errorf("Bundled seed for %s failed validation: %s", key, msg)
			continue
		}
		if _, err := s.Repo.Upsert(key, raw); err != nil {
			logger.Sugar.Errorf("Failed to seed %s: %v", key, err)
			continue
		}
		logger.Sugar.Infof("Seeded default %s document", key)
	}
}
