package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"vitrina/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newMockRepo(t *testing.T) (*ContentRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContentRepository(db), mock
}

func TestGetReturnsStoredValue(t *testing.T) {
	repo, mock := newMockRepo(t)

	stored := `{"categories":[]}`
	mock.ExpectQuery(`SELECT value FROM documents WHERE key = \$1`).
		WithArgs("products").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(stored)))

	value, err := repo.Get("products")
	require.NoError(t, err)
	assert.JSONEq(t, stored, string(value))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAbsentRowIsNotAnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT value FROM documents WHERE key = \$1`).
		WithArgs("site").
		WillReturnError(sql.ErrNoRows)

	value, err := repo.Get("site")
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPropagatesQueryErrors(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT value FROM documents WHERE key = \$1`).
		WithArgs("site").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get("site")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertIsIdempotent(t *testing.T) {
	repo, mock := newMockRepo(t)

	value := json.RawMessage(`{"categories":[]}`)
	for i := 0; i < 2; i++ {
		mock.ExpectExec(`INSERT INTO documents`).
			WithArgs("products", string(value), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	first, err := repo.Upsert("products", value)
	require.NoError(t, err)
	assert.False(t, first.IsZero())

	_, err = repo.Upsert("products", value)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertPropagatesExecErrors(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs("site", `{}`, sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))

	_, err := repo.Upsert("site", json.RawMessage(`{}`))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
