package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/rostlab/tmvis/internal/adapters/driven/storage/postgres/migrations"
	"github.com/rostlab/tmvis/internal/adapters/driven/storage/sqlstore"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
)

// ConnectTimeout bounds the initial ping.
const ConnectTimeout = 10 * time.Second

var _ driven.ProteinStore = (*Store)(nil)

const createVersionTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMPTZ DEFAULT NOW()
	)`

// Store is a PostgreSQL-backed protein store.
type Store struct {
	*sqlstore.ProteinStore
	db *sql.DB
}

// Open connects to dsn, verifies the connection and applies migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres: empty connection string")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := sqlstore.Migrate(db, migrations.FS, createVersionTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{
		ProteinStore: sqlstore.NewProteinStore(db, sqlstore.Postgres),
		db:           db,
	}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
