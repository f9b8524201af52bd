package scoring

import (
	"fmt"
	"sort"

	"github.com/yourusername/keiba-desk/internal/models"
)

// SortKey selects the entry table ordering
type SortKey string

const (
	SortByScore      SortKey = "score"
	SortByOdds       SortKey = "odds"
	SortByPopularity SortKey = "popularity"
	SortByNumber     SortKey = "number"
)

var sortLabels = map[string]SortKey{
	"スコア順": SortByScore,
	"オッズ順": SortByOdds,
	"人気順":  SortByPopularity,
	"馬番順":  SortByNumber,
}

// ParseSortKey accepts the English key or the Japanese label
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByScore, SortByOdds, SortByPopularity, SortByNumber:
		return k, nil
	}
	if k, ok := sortLabels[s]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", models.ErrUnknownSortKey, s)
}

// ScoredEntry is an entry with the user's adjustments applied
type ScoredEntry struct {
	models.Entry
	Score  float64     `json:"score"`
	Manual int         `json:"manual"`
	Total  float64     `json:"total"`
	Mark   models.Mark `json:"mark"`
}

// Board is the scored entry table for one render
type Board struct {
	entries []ScoredEntry
	index   map[string]int
}

// NewBoard scores every entry. A nil adj means no marks and zero manual scores.
func NewBoard(entries []models.Entry, scorer Scorer, adj Adjustments) *Board {
	if scorer == nil {
		scorer = NewPassThrough()
	}

	b := &Board{
		entries: make([]ScoredEntry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		se := ScoredEntry{Entry: e, Score: scorer.Score(e)}
		if adj != nil {
			se.Manual = adj.ManualScore(e.Name)
			se.Mark = adj.Mark(e.Name)
		}
		se.Total = se.Score + float64(se.Manual)
		b.entries[i] = se
		b.index[e.Name] = i
	}
	return b
}

// Len returns the number of horses
func (b *Board) Len() int {
	return len(b.entries)
}

// Entries returns the scored entries in table order
func (b *Board) Entries() []ScoredEntry {
	out := make([]ScoredEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Names returns the horse names in table order
func (b *Board) Names() []string {
	names := make([]string, len(b.entries))
	for i, e := range b.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup finds a horse by name
func (b *Board) Lookup(name string) (ScoredEntry, bool) {
	i, ok := b.index[name]
	if !ok {
		return ScoredEntry{}, false
	}
	return b.entries[i], true
}

// Sorted returns the entries ordered by key. Ties keep table order.
func (b *Board) Sorted(key SortKey) ([]ScoredEntry, error) {
	var less func(x, y ScoredEntry) bool
	switch key {
	case SortByScore:
		less = func(x, y ScoredEntry) bool { return x.Total > y.Total }
	case SortByOdds:
		less = func(x, y ScoredEntry) bool { return x.Odds.LessThan(y.Odds) }
	case SortByPopularity:
		less = func(x, y ScoredEntry) bool { return x.Popularity < y.Popularity }
	case SortByNumber:
		less = func(x, y ScoredEntry) bool { return x.Number < y.Number }
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownSortKey, key)
	}

	out := b.Entries()
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

// TopN returns up to n names by total score, highest first
func (b *Board) TopN(n int) []string {
	sorted, _ := b.Sorted(SortByScore)
	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = sorted[i].Name
	}
	return names
}
