package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresStore persists visibility-edge entries as JSONB rows, the
// storage-agnostic counterpart to RedisStore demonstrating that Store has
// no Redis-specific assumptions baked into its contract.
type PostgresStore struct {
	db *sqlx.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS visibility_edge_cache (
	cache_key  TEXT PRIMARY KEY,
	entry      JSONB NOT NULL,
	created_at BIGINT NOT NULL
)`

// NewPostgresStore opens dsn and ensures the backing table exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure visibility_edge_cache table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw, `SELECT entry FROM visibility_edge_cache WHERE cache_key = $1`, key)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("postgres get %s: %w", key, err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("decode visibility edge entry %s: %w", key, err)
	}
	return e, true, nil
}

// Set implements Store.
func (s *PostgresStore) Set(ctx context.Context, key string, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode visibility edge entry %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO visibility_edge_cache (cache_key, entry, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key) DO UPDATE SET entry = EXCLUDED.entry, created_at = EXCLUDED.created_at`,
		key, raw, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
