package betting

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/keiba-desk/internal/config"
	"github.com/yourusername/keiba-desk/internal/models"
	"github.com/yourusername/keiba-desk/internal/scoring"
)

func keys(combos []Combination) []string {
	out := make([]string, len(combos))
	for i, c := range combos {
		out[i] = c.Key()
	}
	return out
}

func testBoard() *scoring.Board {
	scores := []struct {
		name  string
		score float64
		odds  string
	}{
		{"A", 60, "4.0"},
		{"B", 90, "2.5"},
		{"C", 75, "6.0"},
		{"D", 80, "3.5"},
		{"E", 55, "30.0"},
		{"F", 70, "9.0"},
		{"G", 65, "12.0"},
		{"H", 50, "50.0"},
	}
	entries := make([]models.Entry, len(scores))
	for i, s := range scores {
		entries[i] = models.Entry{
			Frame: i + 1, Number: i + 1, Name: s.name,
			BaseScore: s.score, Odds: decimal.RequireFromString(s.odds), Popularity: i + 1,
		}
	}
	return scoring.NewBoard(entries, nil, nil)
}

func testAllocator() *Allocator {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewAllocator(&config.BettingConfig{FallbackPoolSize: 6, DisplayLimit: 50}, log)
}

func TestParseBetType(t *testing.T) {
	tests := []struct {
		input string
		want  BetType
	}{
		{"single", Single},
		{"単勝", Single},
		{"複勝", Place},
		{"ワイド", Wide},
		{"馬連", Quinella},
		{"馬単", Exacta},
		{"3連複", Trio},
		{"3連単", Trifecta},
		{"trifecta", Trifecta},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBetType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseBetType("枠連")
	assert.ErrorIs(t, err, models.ErrUnknownBetType)
}

func TestBetTypeShape(t *testing.T) {
	assert.Len(t, AllBetTypes, 7)
	assert.Equal(t, "単勝", AllBetTypes[0].Label())

	assert.Equal(t, 1, Place.Arity())
	assert.Equal(t, 1, Place.MinPool())
	assert.Equal(t, 2, Wide.MinPool())
	assert.Equal(t, 3, Trio.MinPool())
	assert.True(t, Exacta.Ordered())
	assert.True(t, Trifecta.Ordered())
	assert.False(t, Quinella.Ordered())
	assert.False(t, BetType("bracket").Valid())
}

func TestCombinationsOrder(t *testing.T) {
	pool := []string{"A", "B", "C"}

	single, err := Combinations(Single, pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, keys(single))

	quinella, err := Combinations(Quinella, pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"A - B", "A - C", "B - C"}, keys(quinella))

	exacta, err := Combinations(Exacta, pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"A - B", "A - C", "B - A", "B - C", "C - A", "C - B"}, keys(exacta))

	trio, err := Combinations(Trio, []string{"A", "B", "C", "D"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A - B - C", "A - B - D", "A - C - D", "B - C - D"}, keys(trio))

	_, err = Combinations(BetType("bracket"), pool)
	assert.ErrorIs(t, err, models.ErrUnknownBetType)
}

func TestCombinationCounts(t *testing.T) {
	pool := []string{"1", "2", "3", "4", "5", "6"}
	want := map[BetType]int{
		Single:   6,
		Place:    6,
		Wide:     15,
		Quinella: 15,
		Exacta:   30,
		Trio:     20,
		Trifecta: 120,
	}
	for bt, n := range want {
		combos, err := Combinations(bt, pool)
		require.NoError(t, err)
		assert.Len(t, combos, n, bt)
		assert.Equal(t, n, CountCombinations(bt, len(pool)), bt)
	}

	assert.Equal(t, 0, CountCombinations(Trio, 2))
	combos, err := Combinations(Trio, []string{"A", "B"})
	require.NoError(t, err)
	assert.Empty(t, combos)
}

func TestEvenSplitDropsRemainder(t *testing.T) {
	combos, _ := Combinations(Single, []string{"A", "B", "C"})
	alloc, err := EvenSplit(Single, combos, 1000)
	require.NoError(t, err)

	for _, r := range alloc.Rows() {
		assert.Equal(t, 333, r.Amount)
	}
	assert.Equal(t, 999, alloc.Total())
	assert.Equal(t, 1, alloc.Shortfall())
}

func TestEvenSplitEdges(t *testing.T) {
	combos, _ := Combinations(Quinella, []string{"A", "B", "C"})

	zero, err := EvenSplit(Quinella, combos, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Total())
	assert.Equal(t, 3, zero.Len())

	_, err = EvenSplit(Quinella, combos, -100)
	assert.ErrorIs(t, err, models.ErrNegativeAmount)

	empty, err := EvenSplit(Trio, nil, 500)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 500, empty.Shortfall())
}

func TestOverride(t *testing.T) {
	combos, _ := Combinations(Quinella, []string{"A", "B", "C"})
	alloc, err := EvenSplit(Quinella, combos, 900)
	require.NoError(t, err)

	old, err := alloc.Override("A - B", 500)
	require.NoError(t, err)
	assert.Equal(t, 300, old)
	assert.Equal(t, 1100, alloc.Total())
	assert.Equal(t, -200, alloc.Shortfall())

	amount, err := alloc.Amount("A - B")
	require.NoError(t, err)
	assert.Equal(t, 500, amount)

	_, err = alloc.Override("A - C", -1)
	assert.ErrorIs(t, err, models.ErrNegativeAmount)

	_, err = alloc.Override("B - A", 100)
	assert.ErrorIs(t, err, models.ErrUnknownCombination)
}

func TestDisplayLimit(t *testing.T) {
	pool := []string{"1", "2", "3", "4", "5", "6"}
	combos, _ := Combinations(Trifecta, pool)
	alloc, err := EvenSplit(Trifecta, combos, 12000)
	require.NoError(t, err)

	assert.Len(t, alloc.Display(50), 50)
	assert.Len(t, alloc.Display(0), 120)
	assert.Equal(t, 12000, alloc.Total())
}

func TestEstimatedReturn(t *testing.T) {
	assert.True(t, decimal.RequireFromString("1065.6").Equal(EstimatedReturn(decimal.RequireFromString("3.2"), 333)))

	combos, _ := Combinations(Quinella, []string{"A", "B"})
	alloc, _ := EvenSplit(Quinella, combos, 100)
	alloc.SetOdds(map[string]decimal.Decimal{"A": decimal.NewFromInt(2)})
	_, ok := alloc.EstimatedReturn("A - B")
	assert.False(t, ok)
}

func TestAllocateScenarios(t *testing.T) {
	board := testBoard()
	a := testAllocator()
	ctx := context.Background()

	t.Run("single three horses", func(t *testing.T) {
		res, err := a.Allocate(ctx, Request{BetType: Single, Selected: []string{"A", "B", "C"}, Budget: 1000, Auto: true}, board)
		require.NoError(t, err)
		assert.False(t, res.FellBack)
		assert.Equal(t, 3, res.Len())
		assert.Equal(t, map[string]int{"A": 333, "B": 333, "C": 333}, res.Map())
		assert.Equal(t, 999, res.Total())
		assert.Equal(t, 1, res.Shortfall())

		ret, ok := res.EstimatedReturn("B")
		require.True(t, ok)
		assert.True(t, decimal.RequireFromString("832.5").Equal(ret))
	})

	t.Run("quinella three horses", func(t *testing.T) {
		res, err := a.Allocate(ctx, Request{BetType: Quinella, Selected: []string{"A", "B", "C"}, Budget: 900, Auto: true}, board)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"A - B": 300, "A - C": 300, "B - C": 300}, res.Map())
		assert.Equal(t, 900, res.Total())
		_, ok := res.EstimatedReturn("A - B")
		assert.False(t, ok)
	})

	t.Run("exacta two horses", func(t *testing.T) {
		res, err := a.Allocate(ctx, Request{BetType: Exacta, Selected: []string{"A", "B"}, Budget: 100, Auto: true}, board)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"A - B": 50, "B - A": 50}, res.Map())
	})

	t.Run("auto off yields zero rows", func(t *testing.T) {
		res, err := a.Allocate(ctx, Request{BetType: Wide, Selected: []string{"A", "B", "C"}, Budget: 900}, board)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Len())
		assert.Equal(t, 0, res.Total())
		assert.Equal(t, 900, res.Shortfall())
	})

	t.Run("overrides applied after split", func(t *testing.T) {
		res, err := a.Allocate(ctx, Request{
			BetType:   Quinella,
			Selected:  []string{"A", "B", "C"},
			Budget:    900,
			Auto:      true,
			Overrides: map[string]int{"B - C": 0},
		}, board)
		require.NoError(t, err)
		assert.Equal(t, 600, res.Total())
	})
}

func TestAllocateFallsBackToTopScored(t *testing.T) {
	board := testBoard()
	a := testAllocator()
	topSix := []string{"B", "D", "C", "F", "G", "A"}

	for _, bt := range AllBetTypes {
		t.Run(string(bt), func(t *testing.T) {
			res, err := a.Allocate(context.Background(), Request{BetType: bt, Budget: 1000, Auto: true}, board)
			require.NoError(t, err)
			assert.True(t, res.FellBack)
			assert.Equal(t, topSix, res.Pool)
			assert.Equal(t, CountCombinations(bt, 6), res.Len())
			assert.NotZero(t, res.Len())
		})
	}

	res, err := a.Allocate(context.Background(), Request{BetType: Trio, Selected: []string{"A", "B"}, Budget: 2000, Auto: true}, board)
	require.NoError(t, err)
	assert.True(t, res.FellBack)
	assert.Equal(t, 20, res.Len())
	assert.Equal(t, 100, res.Rows()[0].Amount)
}

func TestAllocateRejectsBadInput(t *testing.T) {
	board := testBoard()
	a := testAllocator()
	ctx := context.Background()

	_, err := a.Allocate(ctx, Request{BetType: "bracket", Budget: 100}, board)
	assert.ErrorIs(t, err, models.ErrUnknownBetType)

	_, err = a.Allocate(ctx, Request{BetType: Single, Selected: []string{"Z"}, Budget: 100}, board)
	assert.ErrorIs(t, err, models.ErrUnknownHorse)

	_, err = a.Allocate(ctx, Request{BetType: Quinella, Selected: []string{"A", "A"}, Budget: 100}, board)
	assert.ErrorIs(t, err, models.ErrDuplicateHorse)

	_, err = a.Allocate(ctx, Request{BetType: Single, Selected: []string{"A"}, Budget: -1}, board)
	assert.ErrorIs(t, err, models.ErrNegativeAmount)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = a.Allocate(cancelled, Request{BetType: Single, Budget: 100}, board)
	assert.ErrorIs(t, err, context.Canceled)
}
