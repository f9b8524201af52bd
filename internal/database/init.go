package database

import (
	"context"
	"fmt"

	"github.com/yourusername/keiba-desk/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS simulated_purchases (
	id          UUID PRIMARY KEY,
	session_id  UUID NOT NULL,
	race        JSONB NOT NULL,
	bet_type    TEXT NOT NULL,
	budget      INTEGER NOT NULL CHECK (budget >= 0),
	rows        JSONB NOT NULL,
	total       INTEGER NOT NULL,
	shortfall   INTEGER NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_simulated_purchases_session
	ON simulated_purchases (session_id, created_at DESC);
`

// Initialize connects to the database and creates the schema if missing
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
