package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection checks and schema setup.
const TestTimeout = 10 * time.Second

// GetTestDatabaseURL returns the database URL for tests. TASKAPI_TEST_DATABASE_URL
// is checked first, then DATABASE_URL.
func GetTestDatabaseURL() string {
	if url := os.Getenv("TASKAPI_TEST_DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

// GetTestDBWithT opens a connection to the test database, applies the schema
// and closes the pool when the test ends. It skips the test if no database
// URL is set.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("TASKAPI_TEST_DATABASE_URL or DATABASE_URL not set - skipping integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "Database ping failed")
	require.NoError(t, postgres.Migrate(ctx, db, nil), "Failed to apply schema")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// can share one database without seeing each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// ResetTasks empties the tasks table and restarts its ID sequence. Use it
// for tests that need committed data, such as end-to-end HTTP tests.
func ResetTasks(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(`TRUNCATE TABLE tasks RESTART IDENTITY`)
	require.NoError(t, err, "Failed to reset tasks table")
}
