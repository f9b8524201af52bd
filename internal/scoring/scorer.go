// Package scoring turns entries into scored rows for the entry and score tables.
package scoring

import (
	"github.com/yourusername/keiba-desk/internal/models"
)

// Scorer produces the systemic score for a horse from its attributes
type Scorer interface {
	Name() string
	Score(entry models.Entry) float64
}

// PassThrough uses the entry's base score unchanged
type PassThrough struct{}

// NewPassThrough creates the default scorer
func NewPassThrough() *PassThrough {
	return &PassThrough{}
}

// Name returns the scorer name
func (p *PassThrough) Name() string {
	return "pass_through"
}

// Score returns the base score
func (p *PassThrough) Score(entry models.Entry) float64 {
	return entry.BaseScore
}

// Adjustments supplies the user's per-horse input
type Adjustments interface {
	Mark(name string) models.Mark
	ManualScore(name string) int
}

// Resolve returns the scorer registered under name, or PassThrough
func Resolve(name string) Scorer {
	constructors := map[string]func() Scorer{
		"pass_through": func() Scorer { return NewPassThrough() },
	}
	if build, ok := constructors[name]; ok {
		return build()
	}
	return NewPassThrough()
}
