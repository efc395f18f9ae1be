package sqlstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPostgresStore needs Docker; enable with RESULTSAPI_PG_TESTS=1.
func TestPostgresStore(t *testing.T) {
	if os.Getenv("RESULTSAPI_PG_TESTS") != "1" {
		t.Skip("set RESULTSAPI_PG_TESTS=1 to run against a postgres container")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("resultsapi"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := New(DriverPostgres, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runStoreSuite(t, db)
}
