package models

import (
	"github.com/shopspring/decimal"
)

// Entry represents a horse entered in a race
type Entry struct {
	Frame          int             `json:"frame" validate:"required,gt=0,lte=8"`
	Number         int             `json:"number" validate:"required,gt=0,lte=18"`
	Name           string          `json:"name" validate:"required"`
	SexAge         string          `json:"sex_age"`
	CarriedWeight  float64         `json:"carried_weight" validate:"gte=0"`
	BodyWeight     int             `json:"body_weight" validate:"gte=0"`
	Distance       int             `json:"distance" validate:"gte=0"`
	RunningStyle   string          `json:"running_style"`
	Jockey         string          `json:"jockey"`
	Trainer        string          `json:"trainer"`
	Odds           decimal.Decimal `json:"odds"`
	Popularity     int             `json:"popularity" validate:"gte=0"`
	BaseScore      float64         `json:"base_score"`
	Pedigree       string          `json:"pedigree"`
	Owner          string          `json:"owner"`
	Breeder        string          `json:"breeder"`
	RecentForm     string          `json:"recent_form"`
	TrackCondition string          `json:"track_condition"`
	DrawFit        int             `json:"draw_fit" validate:"gte=0,lte=5"`
	TrackFit       int             `json:"track_fit" validate:"gte=0,lte=5"`
}

// OddsFloat returns the odds as a float64 for display and sorting helpers
func (e *Entry) OddsFloat() float64 {
	f, _ := e.Odds.Float64()
	return f
}

// Names returns the horse names of the entries in table order
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
