package service

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"vitrina/internal/content/model"
	"vitrina/internal/content/repository"
	"vitrina/internal/content/seed"
	"vitrina/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newMockService(t *testing.T) (*ContentService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContentService(repository.NewContentRepository(db), nil), mock
}

func TestSaveDocumentRejectsInvalidDocument(t *testing.T) {
	svc, mock := newMockService(t)

	_, err := svc.SaveDocument(model.KeyProducts, map[string]interface{}{"items": []interface{}{}})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, `missing required field "categories"`, verr.Message)
	// The store must not be touched for a rejected document.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveDocumentPersistsValidDocument(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs(model.KeyProducts, `{"categories":[]}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updatedAt, err := svc.SaveDocument(model.KeyProducts, map[string]interface{}{"categories": []interface{}{}})
	require.NoError(t, err)
	assert.False(t, updatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDocumentFallsBackToSeed(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT value FROM documents WHERE key = \$1`).
		WithArgs(model.KeyProducts).
		WillReturnError(sql.ErrNoRows)

	value, err := svc.GetDocument(model.KeyProducts)
	require.NoError(t, err)

	want, ok := seed.Document(model.KeyProducts)
	require.True(t, ok)
	assert.JSONEq(t, string(want), string(value))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDocumentPrefersStoredValue(t *testing.T) {
	svc, mock := newMockService(t)

	stored := `{"categories":[{"category":"Breads","items":[]}]}`
	mock.ExpectQuery(`SELECT value FROM documents WHERE key = \$1`).
		WithArgs(model.KeyProducts).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(stored)))

	value, err := svc.GetDocument(model.KeyProducts)
	require.NoError(t, err)
	assert.JSONEq(t, stored, string(value))
}

func TestSeedDefaultsPopulatesEmptyStore(t *testing.T) {
	svc, mock := newMockService(t)

	for _, key := range model.Keys() {
		raw, ok := seed.Document(key)
		require.True(t, ok)

		mock.ExpectQuery(`SELECT value FROM documents WHERE key = \$1`).
			WithArgs(key).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`INSERT INTO documents`).
			WithArgs(key, string(raw), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	svc.SeedDefaults()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDefaultsSkipsExistingDocuments(t *testing.T) {
	svc, mock := newMockService(t)

	for _, key := range model.Keys() {
		mock.ExpectQuery(`SELECT value FROM documents WHERE key = \$1`).
			WithArgs(key).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{}`)))
	}

	svc.SeedDefaults()
	// No inserts expected; an unexpected Exec would fail the expectation check.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDefaultsSurvivesStoreErrors(t *testing.T) {
	svc, mock := newMockService(t)

	for _, key := range model.Keys() {
		mock.ExpectQuery(`SELECT value FROM documents WHERE key = \$1`).
			WithArgs(key).
			WillReturnError(errors.New("connection refused"))
	}

	// Must not panic or abort; seeding failures are logged and skipped.
	svc.SeedDefaults()
	assert.NoError(t, mock.ExpectationsWereMet())
}
