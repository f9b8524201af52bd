package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/keiba-desk/internal/models"
)

// SimulationRepository defines the interface for simulated purchase storage
type SimulationRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.Purchase, error)
}
