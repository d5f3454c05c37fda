package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"schemereg/pkg/platform/sentinel"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
	key        TEXT PRIMARY KEY,
	data       BYTEA NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps sessions in a sessions table. Expired rows are invisible to Get and
// are overwritten by the next Set; PurgeExpired removes them in bulk.
type PostgresStore struct {
	pool *pgxpool.Pool
	idle time.Duration
	now  func() time.Time
}

// NewPostgres constructs a Postgres-backed session store.
func NewPostgres(pool *pgxpool.Pool, idle time.Duration) *PostgresStore {
	return &PostgresStore{pool: pool, idle: idle, now: time.Now}
}

// EnsureSchema creates the sessions table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createSessionsTable); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

// Get reads a live session and slides its expiry.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	now := s.now()
	var data []byte
	err := s.pool.QueryRow(ctx, `
		UPDATE sessions
		SET expires_at = $2
		WHERE key = $1 AND expires_at > $3
		RETURNING data
	`, key, now.Add(s.idle), now).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return data, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (key, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at
	`, key, data, s.now().Add(ttl))
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
