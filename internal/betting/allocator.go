package betting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/keiba-desk/internal/config"
	"github.com/yourusername/keiba-desk/internal/logger"
	"github.com/yourusername/keiba-desk/internal/metrics"
	"github.com/yourusername/keiba-desk/internal/models"
	"github.com/yourusername/keiba-desk/internal/scoring"
)

// Request describes one allocation
type Request struct {
	BetType   BetType
	Selected  []string
	Budget    int
	Auto      bool
	Overrides map[string]int
}

// Result is an allocation together with the pool it was built from
type Result struct {
	*Allocation
	Pool     []string
	FellBack bool
}

// Allocator resolves candidate pools and splits budgets
type Allocator struct {
	config *config.BettingConfig
	log    *logger.AllocationLogger
}

// NewAllocator creates a new allocator
func NewAllocator(cfg *config.BettingConfig, log *logrus.Logger) *Allocator {
	return &Allocator{
		config: cfg,
		log:    logger.NewAllocationLogger(log),
	}
}

// ResolvePool returns the selection, or the top-scored horses when the
// selection is too small for the bet type.
func (a *Allocator) ResolvePool(betType BetType, selected []string, board *scoring.Board) ([]string, bool, error) {
	if !betType.Valid() {
		return nil, false, fmt.Errorf("%w: %q", models.ErrUnknownBetType, betType)
	}

	seen := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		if _, ok := board.Lookup(name); !ok {
			return nil, false, fmt.Errorf("%w: %q", models.ErrUnknownHorse, name)
		}
		if _, dup := seen[name]; dup {
			return nil, false, fmt.Errorf("%w: %q", models.ErrDuplicateHorse, name)
		}
		seen[name] = struct{}{}
	}

	if len(selected) >= betType.MinPool() {
		return append([]string(nil), selected...), false, nil
	}

	pool := board.TopN(a.config.FallbackPoolSize)
	a.log.LogPoolFallback(string(betType), len(selected), betType.MinPool(), pool)
	metrics.RecordPoolFallback(string(betType))
	return pool, true, nil
}

// Allocate enumerates the combinations for the request and splits the budget
func (a *Allocator) Allocate(ctx context.Context, req Request, board *scoring.Board) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	pool, fellBack, err := a.ResolvePool(req.BetType, req.Selected, board)
	if err != nil {
		return nil, err
	}

	combos, err := Combinations(req.BetType, pool)
	if err != nil {
		return nil, err
	}

	var alloc *Allocation
	if req.Auto {
		alloc, err = EvenSplit(req.BetType, combos, req.Budget)
	} else {
		alloc, err = Unallocated(req.BetType, combos, req.Budget)
	}
	if err != nil {
		return nil, err
	}

	for key, amount := range req.Overrides {
		old, err := alloc.Override(key, amount)
		if err != nil {
			return nil, err
		}
		a.log.LogOverride(key, old, amount)
	}

	if req.BetType == Single {
		odds := make(map[string]decimal.Decimal, len(pool))
		for _, name := range pool {
			if e, ok := board.Lookup(name); ok {
				odds[name] = e.Odds
			}
		}
		alloc.SetOdds(odds)
	}

	a.log.LogAllocation(string(req.BetType), len(pool), alloc.Len(), alloc.Budget, alloc.Total())
	metrics.RecordAllocation(string(req.BetType), alloc.Len(), alloc.Shortfall(), time.Since(start).Seconds())

	return &Result{Allocation: alloc, Pool: pool, FellBack: fellBack}, nil
}

// DisplayLimit is the configured row cap for listings
func (a *Allocator) DisplayLimit() int {
	return a.config.DisplayLimit
}
