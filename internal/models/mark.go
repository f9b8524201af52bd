package models

import "fmt"

// Mark is a hand-written annotation on a horse
type Mark string

const (
	MarkNone     Mark = ""
	MarkHonmei   Mark = "◎"
	MarkTaikou   Mark = "○"
	MarkTanana   Mark = "▲"
	MarkRenshita Mark = "△"
	MarkStar     Mark = "⭐︎"
	MarkKeshi    Mark = "×"
)

// Marks lists every selectable mark in display order
var Marks = []Mark{MarkNone, MarkHonmei, MarkTaikou, MarkTanana, MarkRenshita, MarkStar, MarkKeshi}

// Manual score bounds
const (
	MinManualScore = -3
	MaxManualScore = 3
)

// ParseMark validates a raw mark value
func ParseMark(s string) (Mark, error) {
	for _, m := range Marks {
		if string(m) == s {
			return m, nil
		}
	}
	return MarkNone, fmt.Errorf("%w: %q", ErrInvalidMark, s)
}

// ValidateManualScore checks a manual adjustment is within bounds
func ValidateManualScore(v int) error {
	if v < MinManualScore || v > MaxManualScore {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrManualScoreOutOfRange, v, MinManualScore, MaxManualScore)
	}
	return nil
}
