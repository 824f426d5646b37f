// Package optionstore persists per-user TTS options in PostgreSQL behind an
// in-memory cache. Reads are served from the cache only; writes go to the
// database first and update the cache only after the row is durable.
package optionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reiyw/ttsbot/pkg/tts"
)

// Schema is the SQL DDL for the tts_options table. Execute it via
// [Store.Migrate] or apply it manually during deployment.
//
// Discord snowflake IDs fit in a signed 64-bit column; the store converts
// from uint64 at the database boundary.
const Schema = `
CREATE TABLE IF NOT EXISTS tts_options (
    user_id BIGINT PRIMARY KEY,
    options JSONB NOT NULL
);
`

// DB is the database interface used by [Store]. Both *pgxpool.Pool and
// *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store caches every user's options in memory and writes through to
// PostgreSQL. Safe for concurrent use.
type Store struct {
	db DB

	mu    sync.RWMutex
	cache map[uint64]tts.Options
}

// New creates a Store over the given database connection or pool. The caller
// is responsible for calling [Store.Migrate] and [Store.Load] before serving
// requests.
func New(db DB) *Store {
	return &Store{db: db, cache: make(map[uint64]tts.Options)}
}

// Connect opens a pgx pool for dsn, verifies connectivity, ensures the
// schema, and loads every stored row into the cache. The caller owns the
// returned pool and must Close it on shutdown.
func Connect(ctx context.Context, dsn string) (*Store, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("optionstore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("optionstore: ping: %w", err)
	}
	s := New(pool)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := s.Load(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return s, pool, nil
}

// Migrate executes the [Schema] DDL against the database, creating the
// tts_options table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("optionstore: migrate: %w", err)
	}
	return nil
}

// Load reads every row into a fresh cache and swaps it in wholesale. A row
// that fails to decode is a hard error: a corrupt stored document must
// surface at startup, not silently revert a user to defaults.
func (s *Store) Load(ctx context.Context) error {
	const query = `SELECT user_id, options FROM tts_options`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("optionstore: load: %w", err)
	}
	defer rows.Close()

	cache := make(map[uint64]tts.Options)
	for rows.Next() {
		var (
			userID  int64
			rawOpts []byte
		)
		if err := rows.Scan(&userID, &rawOpts); err != nil {
			return fmt.Errorf("optionstore: load scan: %w", err)
		}
		var opts tts.Options
		if err := json.Unmarshal(rawOpts, &opts); err != nil {
			return fmt.Errorf("optionstore: decode options for user %d: %w", userID, err)
		}
		cache[uint64(userID)] = opts
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("optionstore: load: %w", err)
	}

	s.mu.Lock()
	s.cache = cache
	s.mu.Unlock()
	return nil
}

// Get returns the cached options for userID, or the process-wide default
// when the user has never stored a preference. The result is an independent
// copy; mutating it does not touch the cache. Get never hits the database.
func (s *Store) Get(userID uint64) tts.Options {
	s.mu.RLock()
	opts, ok := s.cache[userID]
	s.mu.RUnlock()
	if !ok {
		return tts.DefaultOptions()
	}
	return opts.Clone()
}

// Len reports the number of users with stored options.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// Set upserts the user's options durably, then updates the cache. When the
// write fails or ctx is cancelled the cache is left unchanged, so reads keep
// reflecting durable state. Concurrent Sets for the same user may leave the
// cache holding the loser of the database race until the next Load.
func (s *Store) Set(ctx context.Context, userID uint64, opts tts.Options) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("optionstore: encode options: %w", err)
	}

	const query = `
		INSERT INTO tts_options (user_id, options)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET options = EXCLUDED.options`

	if _, err := s.db.Exec(ctx, query, int64(userID), raw); err != nil {
		return fmt.Errorf("optionstore: set for user %d: %w", userID, err)
	}

	s.mu.Lock()
	s.cache[userID] = opts.Clone()
	s.mu.Unlock()
	return nil
}
