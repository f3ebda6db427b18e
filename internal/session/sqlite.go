package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/voice-gateway/internal/config"
	"github.com/MKhiriev/voice-gateway/internal/logger"
	"github.com/MKhiriev/voice-gateway/migrations"
)

const sessionsTable = "sessions"

// SQLiteStore is a [Store] persisted in a local sqlite file.
type SQLiteStore struct {
	db     *sql.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLiteStore opens (creating if needed) the sqlite file named by
// cfg.DSN, applies pending migrations and returns a ready store.
func NewSQLiteStore(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*SQLiteStore, error) {
	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = migrations.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newSQLiteStore(db, log), nil
}

func newSQLiteStore(db *sql.DB, log *logger.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: log, now: time.Now}
}

// NewConnectSQLite opens a connection to the sqlite file named by cfg.DSN and
// pings it.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*sql.DB, error) {
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return conn, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	query, args, err := sq.Select("value").
		From(sessionsTable).
		Where(sq.Eq{"name": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "SQLiteStore.Get").
			Str("key", key).
			Msg("failed to read session value")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	query, args, err := sq.Insert(sessionsTable).
		Columns("name", "value", "updated_at").
		Values(key, value, s.now().UTC()).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "SQLiteStore.Set").
			Str("key", key).
			Msg("failed to upsert session value")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	query, args, err := sq.Delete(sessionsTable).
		Where(sq.Eq{"name": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "SQLiteStore.Remove").
			Str("key", key).
			Msg("failed to delete session value")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
