package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.Migrate()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"clients",
		"departments",
		"roles",
		"users",
		"projects",
		"tasks",
		"invoices",
		"contacts",
		"company",
		"api_tokens",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestMigrateIdempotent verifies the schema can be applied twice
func TestMigrateIdempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.Migrate())
}

// TestStatusConstraints verifies the enum CHECK constraints reject unknown values
func TestStatusConstraints(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(
		`INSERT INTO clients (id, name, email, company, status, created_at, updated_at)
		 VALUES ('c1', 'Acme', 'acme@example.com', 'Acme Corp', 'bogus', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.Error(t, err, "should reject unknown client status")

	_, err = db.Exec(
		`INSERT INTO clients (id, name, email, company, status, created_at, updated_at)
		 VALUES ('c1', 'Acme', 'acme@example.com', 'Acme Corp', 'active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
}

// TestUniqueEmails verifies client emails are unique case-insensitively
func TestUniqueEmails(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(
		`INSERT INTO clients (id, name, email, company, status, created_at, updated_at)
		 VALUES ('c1', 'Acme', 'acme@example.com', 'Acme Corp', 'active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO clients (id, name, email, company, status, created_at, updated_at)
		 VALUES ('c2', 'Other', 'ACME@example.com', 'Other Inc', 'active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.Error(t, err, "should reject duplicate email regardless of case")
	require.True(t, isUniqueViolation(err))
}
