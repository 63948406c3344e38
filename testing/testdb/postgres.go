package testdb

import (
	"context"
	"strings"
	"sync"
	"testing"

	"orientation-service/internal/db"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
)

var (
	sharedContainer *PostgresContainer
	sharedOnce      sync.Once
)

// PostgresContainer wraps the postgres testcontainer
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DB        *bun.DB
	DSN       string
}

// SetupSharedPostgres starts one PostgreSQL container per test binary.
//
// Tests using the shared container cannot run in parallel, and a package
// should call Cleanup only once, from its single top level database test.
//
// Usage:
//
//	func TestRepository(t *testing.T) {
//	    pgContainer := testdb.SetupSharedPostgres(t)
//	    defer pgContainer.Cleanup(t)
//
//	    pgContainer.RunMigrations(t, schema.Tables()...)
//
//	    t.Run("Create", func(t *testing.T) {
//	        testdb.CleanupTables(t, pgContainer.DB, "universities")
//	        // ...
//	    })
//	}
func SetupSharedPostgres(t *testing.T) *PostgresContainer {
	t.Helper()

	sharedOnce.Do(func() {
		ctx := context.Background()
		pgContainer, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("orientation_test"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
			),
		)
		require.NoError(t, err)

		connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)

		database, err := db.NewWithDSN(connStr)
		require.NoError(t, err)

		sharedContainer = &PostgresContainer{
			Container: pgContainer,
			DB:        database,
			DSN:       connStr,
		}
	})

	require.NotNil(t, sharedContainer, "shared postgres container failed to start")
	return sharedContainer
}

func (pc *PostgresContainer) Cleanup(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if pc.DB != nil {
		pc.DB.Close()
	}

	if pc.Container != nil {
		if err := pc.Container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
}

// RunMigrations bootstraps tables through the same code path the service uses.
func (pc *PostgresContainer) RunMigrations(t *testing.T, tables ...db.Table) {
	t.Helper()
	err := db.RunMigrations(context.Background(), pc.DB, tables...)
	require.NoError(t, err, "failed to run migrations")
}

// CleanupTables truncates tables and resets their identity sequences.
func CleanupTables(t *testing.T, database bun.IDB, tables ...string) {
	t.Helper()

	_, err := database.ExecContext(context.Background(),
		"TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	require.NoError(t, err, "failed to truncate tables: %v", tables)
}
