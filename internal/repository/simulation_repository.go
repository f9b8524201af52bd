package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/keiba-desk/internal/database"
	"github.com/yourusername/keiba-desk/internal/models"
)

// PostgresSimulationRepository implements SimulationRepository for PostgreSQL
type PostgresSimulationRepository struct {
	db *database.DB
}

// NewPostgresSimulationRepository creates a new simulation repository
func NewPostgresSimulationRepository(db *database.DB) SimulationRepository {
	return &PostgresSimulationRepository{db: db}
}

// Create inserts a new simulated purchase
func (s *PostgresSimulationRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	race, err := json.Marshal(purchase.Race)
	if err != nil {
		return fmt.Errorf("failed to encode race: %w", err)
	}
	rows, err := json.Marshal(purchase.Rows)
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}

	query := `
		INSERT INTO simulated_purchases (id, session_id, race, bet_type, budget, rows, total, shortfall, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = s.db.Querier(ctx).Exec(ctx, query,
		purchase.ID, purchase.SessionID, race, purchase.BetType, purchase.Budget,
		rows, purchase.Total, purchase.Shortfall, purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create simulated purchase: %w", err)
	}

	return nil
}

const selectPurchase = `
	SELECT id, session_id, race, bet_type, budget, rows, total, shortfall, created_at
	FROM simulated_purchases
`

// GetByID retrieves a simulated purchase by ID
func (s *PostgresSimulationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	row := s.db.Querier(ctx).QueryRow(ctx, selectPurchase+" WHERE id = $1", id)

	purchase, err := scanPurchase(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulated purchase: %w", err)
	}

	return purchase, nil
}

// ListBySession retrieves a session's simulated purchases, newest first
func (s *PostgresSimulationRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.Purchase, error) {
	rows, err := s.db.Querier(ctx).Query(ctx, selectPurchase+" WHERE session_id = $1 ORDER BY created_at DESC", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulated purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan simulated purchase: %w", err)
		}
		purchases = append(purchases, purchase)
	}

	return purchases, rows.Err()
}

func scanPurchase(row pgx.Row) (*models.Purchase, error) {
	var (
		p          models.Purchase
		race, rows []byte
	)
	err := row.Scan(&p.ID, &p.SessionID, &race, &p.BetType, &p.Budget, &rows, &p.Total, &p.Shortfall, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(race, &p.Race); err != nil {
		return nil, fmt.Errorf("failed to decode race: %w", err)
	}
	if err := json.Unmarshal(rows, &p.Rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return &p, nil
}
