package betting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/keiba-desk/internal/models"
)

// Row is one allocated ticket
type Row struct {
	Combination Combination `json:"horses"`
	Amount      int         `json:"amount"`
}

// Allocation maps combinations to amounts. Only the initial split targets
// the budget; overrides are free to move the total in either direction.
type Allocation struct {
	BetType BetType
	Budget  int

	rows  []Row
	index map[string]int
	odds  map[string]decimal.Decimal
}

// EvenSplit gives every combination budget/n, n = max(1, len(combos)).
// The integer remainder is not distributed.
func EvenSplit(betType BetType, combos []Combination, budget int) (*Allocation, error) {
	if budget < 0 {
		return nil, fmt.Errorf("budget %d: %w", budget, models.ErrNegativeAmount)
	}

	n := len(combos)
	if n < 1 {
		n = 1
	}
	return newAllocation(betType, combos, budget, budget/n), nil
}

// Unallocated lists the combinations with zero amounts, for manual entry
func Unallocated(betType BetType, combos []Combination, budget int) (*Allocation, error) {
	if budget < 0 {
		return nil, fmt.Errorf("budget %d: %w", budget, models.ErrNegativeAmount)
	}
	return newAllocation(betType, combos, budget, 0), nil
}

func newAllocation(betType BetType, combos []Combination, budget, each int) *Allocation {
	a := &Allocation{
		BetType: betType,
		Budget:  budget,
		rows:    make([]Row, len(combos)),
		index:   make(map[string]int, len(combos)),
	}
	for i, c := range combos {
		a.rows[i] = Row{Combination: c, Amount: each}
		a.index[c.Key()] = i
	}
	return a
}

// Len returns the number of combinations
func (a *Allocation) Len() int {
	return len(a.rows)
}

// Rows returns every row in enumeration order
func (a *Allocation) Rows() []Row {
	out := make([]Row, len(a.rows))
	copy(out, a.rows)
	return out
}

// Display returns at most limit rows. A non-positive limit returns all rows.
func (a *Allocation) Display(limit int) []Row {
	rows := a.Rows()
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// Total is the sum of all row amounts
func (a *Allocation) Total() int {
	total := 0
	for _, r := range a.rows {
		total += r.Amount
	}
	return total
}

// Shortfall is Budget - Total. Negative after overrides that exceed the budget.
func (a *Allocation) Shortfall() int {
	return a.Budget - a.Total()
}

// Amount returns the amount on a combination
func (a *Allocation) Amount(key string) (int, error) {
	i, ok := a.index[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownCombination, key)
	}
	return a.rows[i].Amount, nil
}

// Override replaces a row's amount and returns the previous value
func (a *Allocation) Override(key string, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("override %q = %d: %w", key, amount, models.ErrNegativeAmount)
	}
	i, ok := a.index[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownCombination, key)
	}
	old := a.rows[i].Amount
	a.rows[i].Amount = amount
	return old, nil
}

// Map returns combination key to amount
func (a *Allocation) Map() map[string]int {
	out := make(map[string]int, len(a.rows))
	for _, r := range a.rows {
		out[r.Combination.Key()] = r.Amount
	}
	return out
}

// SetOdds records the win odds used for estimated returns. Ignored for
// anything other than single tickets.
func (a *Allocation) SetOdds(odds map[string]decimal.Decimal) {
	if a.BetType != Single {
		return
	}
	a.odds = make(map[string]decimal.Decimal, len(odds))
	for k, v := range odds {
		a.odds[k] = v
	}
}

// EstimatedReturn is amount × odds for a single ticket. The second value is
// false when no estimate applies.
func (a *Allocation) EstimatedReturn(key string) (decimal.Decimal, bool) {
	if a.BetType != Single || a.odds == nil {
		return decimal.Zero, false
	}
	i, ok := a.index[key]
	if !ok {
		return decimal.Zero, false
	}
	odds, ok := a.odds[a.rows[i].Combination[0]]
	if !ok {
		return decimal.Zero, false
	}
	return EstimatedReturn(odds, a.rows[i].Amount), true
}

// EstimatedReturn is the payout of amount staked at odds
func EstimatedReturn(odds decimal.Decimal, amount int) decimal.Decimal {
	return odds.Mul(decimal.NewFromInt(int64(amount)))
}
