package betting

import (
	"fmt"
	"strings"

	"github.com/yourusername/keiba-desk/internal/models"
)

// Combination is one ticket: an ordered or unordered tuple of horse names
type Combination []string

// Key identifies the combination within an allocation
func (c Combination) Key() string {
	return strings.Join(c, " - ")
}

func (c Combination) String() string {
	return c.Key()
}

// Combinations enumerates every ticket for the bet type over pool. Output is
// ordered lexicographically by pool index.
func Combinations(betType BetType, pool []string) ([]Combination, error) {
	if !betType.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownBetType, betType)
	}

	k := betType.Arity()
	if len(pool) < k {
		return []Combination{}, nil
	}
	if betType.Ordered() {
		return permutations(pool, k), nil
	}
	return choose(pool, k), nil
}

// CountCombinations returns how many tickets a pool of m horses produces
func CountCombinations(betType BetType, m int) int {
	k := betType.Arity()
	if k == 0 || m < k {
		return 0
	}
	n := 1
	for i := 0; i < k; i++ {
		n *= m - i
	}
	if betType.Ordered() {
		return n
	}
	for i := 2; i <= k; i++ {
		n /= i
	}
	return n
}

func choose(pool []string, k int) []Combination {
	var out []Combination
	idx := make([]int, 0, k)

	var walk func(start int)
	walk = func(start int) {
		if len(idx) == k {
			c := make(Combination, k)
			for i, j := range idx {
				c[i] = pool[j]
			}
			out = append(out, c)
			return
		}
		for i := start; i < len(pool); i++ {
			idx = append(idx, i)
			walk(i + 1)
			idx = idx[:len(idx)-1]
		}
	}
	walk(0)
	return out
}

func permutations(pool []string, k int) []Combination {
	var out []Combination
	used := make([]bool, len(pool))
	idx := make([]int, 0, k)

	var walk func()
	walk = func() {
		if len(idx) == k {
			c := make(Combination, k)
			for i, j := range idx {
				c[i] = pool[j]
			}
			out = append(out, c)
			return
		}
		for i := range pool {
			if used[i] {
				continue
			}
			used[i] = true
			idx = append(idx, i)
			walk()
			idx = idx[:len(idx)-1]
			used[i] = false
		}
	}
	walk()
	return out
}
