package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/udisondev/isoworld/internal/db"
)

// SetupTestDB возвращает pool к PostgreSQL с применёнными миграциями.
// DB_ADDR задаёт готовую базу (DSN); иначе поднимается testcontainer
// postgres:16-alpine. Тест пропускается в -short режиме и когда docker
// недоступен.
func SetupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()
	if testing.Short() {
		tb.Skip("skipping database test in short mode")
	}
	ctx := context.Background()

	dsn := os.Getenv("DB_ADDR")
	if dsn == "" {
		dsn = startPostgres(tb, ctx)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		tb.Fatalf("connecting to test db: %v", err)
	}
	tb.Cleanup(func() { pool.Close() })

	if err := db.Migrate(ctx, pool); err != nil {
		tb.Fatalf("running migrations: %v", err)
	}

	// Shared DB_ADDR bases keep rows between runs.
	if _, err := pool.Exec(ctx, "TRUNCATE chunk_fixtures"); err != nil {
		tb.Fatalf("truncating chunk_fixtures: %v", err)
	}
	return pool
}

func startPostgres(tb testing.TB, ctx context.Context) string {
	tb.Helper()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		tb.Skipf("starting postgres container (docker unavailable?): %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("terminating postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("getting connection string: %v", err)
	}
	return dsn
}
