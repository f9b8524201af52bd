// Package betting enumerates bet combinations and splits a budget across them.
package betting

import (
	"fmt"

	"github.com/yourusername/keiba-desk/internal/models"
)

// BetType is one of the supported betting tickets
type BetType string

const (
	Single   BetType = "single"
	Place    BetType = "place"
	Wide     BetType = "wide"
	Quinella BetType = "quinella"
	Exacta   BetType = "exacta"
	Trio     BetType = "trio"
	Trifecta BetType = "trifecta"
)

type betTypeInfo struct {
	label   string
	arity   int
	ordered bool
}

var betTypes = map[BetType]betTypeInfo{
	Single:   {label: "単勝", arity: 1},
	Place:    {label: "複勝", arity: 1},
	Wide:     {label: "ワイド", arity: 2},
	Quinella: {label: "馬連", arity: 2},
	Exacta:   {label: "馬単", arity: 2, ordered: true},
	Trio:     {label: "3連複", arity: 3},
	Trifecta: {label: "3連単", arity: 3, ordered: true},
}

// AllBetTypes lists the bet types in display order
var AllBetTypes = []BetType{Single, Place, Wide, Quinella, Exacta, Trio, Trifecta}

// ParseBetType accepts the English code or the Japanese label
func ParseBetType(s string) (BetType, error) {
	if _, ok := betTypes[BetType(s)]; ok {
		return BetType(s), nil
	}
	for bt, info := range betTypes {
		if info.label == s {
			return bt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", models.ErrUnknownBetType, s)
}

// Valid reports whether the bet type is known
func (b BetType) Valid() bool {
	_, ok := betTypes[b]
	return ok
}

// Label returns the Japanese ticket name
func (b BetType) Label() string {
	return betTypes[b].label
}

// Arity is the number of horses on one ticket
func (b BetType) Arity() int {
	return betTypes[b].arity
}

// Ordered reports whether finishing order matters
func (b BetType) Ordered() bool {
	return betTypes[b].ordered
}

// MinPool is the smallest selection that can be used without falling back
// to the default pool.
func (b BetType) MinPool() int {
	if b.Arity() < 1 {
		return 1
	}
	return b.Arity()
}

func (b BetType) String() string {
	return string(b)
}
