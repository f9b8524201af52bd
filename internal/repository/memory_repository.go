package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/yourusername/keiba-desk/internal/models"
)

// MemorySimulationRepository keeps simulated purchases in process memory
type MemorySimulationRepository struct {
	mu        sync.RWMutex
	purchases map[uuid.UUID]models.Purchase
}

// NewMemorySimulationRepository creates an empty in-memory repository
func NewMemorySimulationRepository() *MemorySimulationRepository {
	return &MemorySimulationRepository{purchases: make(map[uuid.UUID]models.Purchase)}
}

// Create stores a copy of the purchase
func (m *MemorySimulationRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.purchases[purchase.ID]; exists {
		return fmt.Errorf("failed to create simulated purchase: duplicate id %s", purchase.ID)
	}
	m.purchases[purchase.ID] = clonePurchase(*purchase)
	return nil
}

// GetByID retrieves a simulated purchase by ID
func (m *MemorySimulationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.purchases[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := clonePurchase(p)
	return &out, nil
}

// ListBySession retrieves a session's simulated purchases, newest first
func (m *MemorySimulationRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Purchase
	for _, p := range m.purchases {
		if p.SessionID == sessionID {
			c := clonePurchase(p)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func clonePurchase(p models.Purchase) models.Purchase {
	rows := make([]models.PurchaseRow, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = models.PurchaseRow{Horses: append([]string(nil), r.Horses...), Amount: r.Amount}
	}
	p.Rows = rows
	return p
}
