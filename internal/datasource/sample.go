package datasource

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yourusername/keiba-desk/internal/models"
)

// SampleProviderName identifies the built-in sample table
const SampleProviderName = "sample"

// SampleProvider serves a fixed six-horse table until a live feed is wired.
type SampleProvider struct{}

// NewSampleProvider creates a new sample provider
func NewSampleProvider() *SampleProvider {
	return &SampleProvider{}
}

// Name returns the provider name
func (p *SampleProvider) Name() string {
	return SampleProviderName
}

// Entries returns a fresh copy of the sample table. It never fails.
func (p *SampleProvider) Entries(ctx context.Context) ([]models.Entry, error) {
	return []models.Entry{
		{
			Frame: 1, Number: 1, Name: "アドマイヤテラ", SexAge: "牡4", CarriedWeight: 57, BodyWeight: 500,
			Distance: 1800, RunningStyle: "差し", Jockey: "川田", Trainer: "(栗東)藤沢",
			Odds: decimal.RequireFromString("3.2"), Popularity: 1, BaseScore: 85,
			Pedigree: "サンデー系", Owner: "A", Breeder: "X牧場", RecentForm: "1-2-1-2",
			TrackCondition: "良", DrawFit: 3, TrackFit: 3,
		},
		{
			Frame: 2, Number: 2, Name: "カランダガン", SexAge: "セ4", CarriedWeight: 57, BodyWeight: 502,
			Distance: 2000, RunningStyle: "先行", Jockey: "M.バルザローナ", Trainer: "(美浦)高木",
			Odds: decimal.RequireFromString("5.1"), Popularity: 2, BaseScore: 78,
			Pedigree: "キングマンボ系", Owner: "B", Breeder: "Y牧場", RecentForm: "0-1-1-3",
			TrackCondition: "稍重", DrawFit: 2, TrackFit: 2,
		},
		{
			Frame: 3, Number: 3, Name: "サンプルA", SexAge: "牝3", CarriedWeight: 54, BodyWeight: 470,
			Distance: 1600, RunningStyle: "追込", Jockey: "武豊", Trainer: "(栗東)池江",
			Odds: decimal.RequireFromString("12.5"), Popularity: 4, BaseScore: 70,
			Pedigree: "ミスプロ系", Owner: "C", Breeder: "Z牧場", RecentForm: "2-0-1-2",
			TrackCondition: "重", DrawFit: 1, TrackFit: 2,
		},
		{
			Frame: 4, Number: 4, Name: "サンプルB", SexAge: "牡5", CarriedWeight: 56, BodyWeight: 480,
			Distance: 1800, RunningStyle: "逃げ", Jockey: "福永", Trainer: "(美浦)友道",
			Odds: decimal.RequireFromString("7.8"), Popularity: 3, BaseScore: 72,
			Pedigree: "サンデー系", Owner: "D", Breeder: "W牧場", RecentForm: "1-1-0-3",
			TrackCondition: "良", DrawFit: 3, TrackFit: 1,
		},
		{
			Frame: 5, Number: 5, Name: "サンプルC", SexAge: "牡6", CarriedWeight: 57, BodyWeight: 488,
			Distance: 2000, RunningStyle: "先行", Jockey: "横山", Trainer: "(栗東)田中",
			Odds: decimal.RequireFromString("20.0"), Popularity: 6, BaseScore: 65,
			Pedigree: "ノーザン系", Owner: "E", Breeder: "V牧場", RecentForm: "0-0-1-4",
			TrackCondition: "良", DrawFit: 2, TrackFit: 1,
		},
		{
			Frame: 6, Number: 6, Name: "サンプルD", SexAge: "牝4", CarriedWeight: 55, BodyWeight: 472,
			Distance: 1400, RunningStyle: "差し", Jockey: "池添", Trainer: "(美浦)佐藤",
			Odds: decimal.RequireFromString("15.0"), Popularity: 5, BaseScore: 68,
			Pedigree: "ミスプロ系", Owner: "F", Breeder: "U牧場", RecentForm: "1-1-2-1",
			TrackCondition: "稍重", DrawFit: 2, TrackFit: 2,
		},
	}, nil
}
