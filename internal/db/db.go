package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB — пул соединений с PostgreSQL и схема, приведённая к последней миграции.
type DB struct {
	pool *pgxpool.Pool
}

// Open connects to PostgreSQL, pings it and applies pending migrations.
func Open(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("database ready", "host", pool.Config().ConnConfig.Host)
	return &DB{pool: pool}, nil
}

// Close closes the pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Fixtures returns a fixed-object store backed by this database.
func (d *DB) Fixtures(v2 bool) *FixtureStore {
	return NewFixtureStore(d.pool, NewChunkRepository(d.pool), v2)
}
