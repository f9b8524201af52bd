package database

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/keiba-desk/internal/config"
)

// SetupTestDB connects to the database configured through KEIBA_DESK_DATABASE_*
// environment variables and applies the schema. The test is skipped when
// no database is enabled.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg, err := config.LoadWithDefaults("")
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	if !cfg.Database.Enabled {
		t.Skip("Integration test - set KEIBA_DESK_DATABASE_ENABLED=true and connection settings")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}
	return db
}

// TeardownTestDB removes test rows and closes the pool
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.pool.Exec(ctx, "TRUNCATE simulated_purchases"); err != nil {
		t.Logf("warning: failed to truncate test table: %v", err)
	}
	db.Close()
}
