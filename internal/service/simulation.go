package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/keiba-desk/internal/betting"
	"github.com/yourusername/keiba-desk/internal/metrics"
	"github.com/yourusername/keiba-desk/internal/models"
)

// Simulate records a simulated purchase of the allocation. Nothing is bought.
func (d *Desk) Simulate(ctx context.Context, id uuid.UUID, req AllocationRequest) (*models.Purchase, error) {
	state, err := d.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	result, err := d.Allocate(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if result.Len() == 0 {
		return nil, models.ErrEmptyAllocation
	}

	purchase := newPurchase(id, state.RaceMeta(), result.Allocation)
	if err := d.simulations.Create(ctx, purchase); err != nil {
		return nil, err
	}

	d.audit.LogSimulatedPurchase(purchase.ID.String(), id.String(), purchase.BetType,
		len(purchase.Rows), purchase.Budget, purchase.Total, purchase.CreatedAt)
	metrics.RecordSimulatedPurchase(purchase.BetType)
	return purchase, nil
}

// Purchase returns a recorded simulated purchase
func (d *Desk) Purchase(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	return d.simulations.GetByID(ctx, id)
}

// Purchases lists a session's simulated purchases, newest first
func (d *Desk) Purchases(ctx context.Context, sessionID uuid.UUID) ([]*models.Purchase, error) {
	if _, err := d.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	return d.simulations.ListBySession(ctx, sessionID)
}

func newPurchase(sessionID uuid.UUID, race models.RaceMeta, alloc *betting.Allocation) *models.Purchase {
	rows := alloc.Rows()
	purchaseRows := make([]models.PurchaseRow, len(rows))
	for i, r := range rows {
		purchaseRows[i] = models.PurchaseRow{Horses: append([]string(nil), r.Combination...), Amount: r.Amount}
	}

	return &models.Purchase{
		ID:        uuid.New(),
		SessionID: sessionID,
		Race:      race,
		BetType:   string(alloc.BetType),
		Budget:    alloc.Budget,
		Rows:      purchaseRows,
		Total:     alloc.Total(),
		Shortfall: alloc.Shortfall(),
		CreatedAt: time.Now().UTC(),
	}
}
