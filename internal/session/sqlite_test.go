package session

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/voice-gateway/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := newSQLiteStore(db, logger.Nop())
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s, mock
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestSQLiteStore_Get_Success(t *testing.T) {
	s, mock := newTestSQLiteStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM sessions WHERE name = ?")).
		WithArgs("user").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"client_id":"abc"}`))

	got, err := s.Get(context.Background(), "user")

	require.NoError(t, err)
	assert.Equal(t, `{"client_id":"abc"}`, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Get_NotFound(t *testing.T) {
	s, mock := newTestSQLiteStore(t)

	mock.ExpectQuery("SELECT value FROM sessions").
		WithArgs("user").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "user")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_Get_DBError(t *testing.T) {
	s, mock := newTestSQLiteStore(t)

	mock.ExpectQuery("SELECT value FROM sessions").
		WithArgs("user").
		WillReturnError(errors.New("disk I/O error"))

	_, err := s.Get(context.Background(), "user")

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrNotFound)
}

// ── Set ──────────────────────────────────────────────────────────────────────

func TestSQLiteStore_Set_Upserts(t *testing.T) {
	s, mock := newTestSQLiteStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions (name,value,updated_at) VALUES (?,?,?) ON CONFLICT(name) DO UPDATE")).
		WithArgs("user", "v", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.Set(context.Background(), "user", "v")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Set_DBError(t *testing.T) {
	s, mock := newTestSQLiteStore(t)

	mock.ExpectExec("INSERT INTO sessions").
		WillReturnError(errors.New("readonly database"))

	err := s.Set(context.Background(), "user", "v")

	assert.ErrorIs(t, err, ErrExecutingQuery)
}

// ── Remove ───────────────────────────────────────────────────────────────────

func TestSQLiteStore_Remove_Success(t *testing.T) {
	s, mock := newTestSQLiteStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE name = ?")).
		WithArgs("user").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Remove(context.Background(), "user"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestSQLiteStore_Remove_MissingKey verifies that deleting nothing is fine.
func TestSQLiteStore_Remove_MissingKey(t *testing.T) {
	s, mock := newTestSQLiteStore(t)

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("user").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Remove(context.Background(), "user"))
}

func TestSQLiteStore_Remove_DBError(t *testing.T) {
	s, mock := newTestSQLiteStore(t)

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("user").
		WillReturnError(errors.New("locked"))

	assert.ErrorIs(t, s.Remove(context.Background(), "user"), ErrExecutingQuery)
}
