package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/keiba-desk/internal/models"
)

// RemoteProviderName identifies the JSON race card feed
const RemoteProviderName = "remote"

// RemoteProvider fetches the entry table from a JSON race card feed
type RemoteProvider struct {
	httpClient *RateLimitedHTTPClient
	url        string
	apiKey     string
	validate   *validator.Validate
	logger     *logrus.Entry
}

// RaceCard is the feed's payload
type RaceCard struct {
	RaceID  string        `json:"race_id"`
	Name    string        `json:"race_name"`
	Entries []RemoteEntry `json:"entries"`
}

// RemoteEntry is a single horse as the feed encodes it. Odds and weights
// arrive as strings so they can be parsed exactly.
type RemoteEntry struct {
	Frame          int     `json:"frame"`
	Number         int     `json:"number"`
	Name           string  `json:"name"`
	SexAge         string  `json:"sex_age"`
	CarriedWeight  *string `json:"carried_weight"`
	BodyWeight     int     `json:"body_weight"`
	Distance       int     `json:"distance"`
	RunningStyle   string  `json:"running_style"`
	Jockey         string  `json:"jockey"`
	Trainer        string  `json:"trainer"`
	Odds           *string `json:"odds"`
	Popularity     int     `json:"popularity"`
	Score          float64 `json:"score"`
	Pedigree       string  `json:"pedigree"`
	Owner          string  `json:"owner"`
	Breeder        string  `json:"breeder"`
	RecentForm     string  `json:"recent_form"`
	TrackCondition string  `json:"track_condition"`
	DrawFit        int     `json:"draw_fit"`
	TrackFit       int     `json:"track_fit"`
}

// NewRemoteProvider creates a new race card feed provider
func NewRemoteProvider(httpClient *RateLimitedHTTPClient, url, apiKey string, logger *logrus.Logger) *RemoteProvider {
	return &RemoteProvider{
		httpClient: httpClient,
		url:        url,
		apiKey:     apiKey,
		validate:   validator.New(),
		logger:     logger.WithField("component", "entries-remote"),
	}
}

// Name returns the provider name
func (p *RemoteProvider) Name() string {
	return RemoteProviderName
}

// Entries fetches and converts the race card
func (p *RemoteProvider) Entries(ctx context.Context) ([]models.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, NewDataSourceError(RemoteProviderName, ErrCodeNetworkError, "failed to create request", err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(RemoteProviderName, ErrCodeNetworkError, "failed to fetch race card", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, NewDataSourceError(RemoteProviderName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case http.StatusNotFound:
		return nil, NewDataSourceError(RemoteProviderName, ErrCodeNotFound, "race card not found", nil)
	case http.StatusTooManyRequests:
		return nil, NewDataSourceError(RemoteProviderName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewDataSourceError(RemoteProviderName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var card RaceCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, NewDataSourceError(RemoteProviderName, ErrCodeInvalidData, "failed to parse response", err)
	}

	return p.convert(&card)
}

func (p *RemoteProvider) convert(card *RaceCard) ([]models.Entry, error) {
	if len(card.Entries) == 0 {
		return nil, NewDataSourceError(RemoteProviderName, ErrCodeInvalidData, "empty race card", ErrNoEntries)
	}

	seen := make(map[string]bool, len(card.Entries))
	entries := make([]models.Entry, 0, len(card.Entries))
	for _, re := range card.Entries {
		entry := models.Entry{
			Frame:          re.Frame,
			Number:         re.Number,
			Name:           re.Name,
			SexAge:         re.SexAge,
			BodyWeight:     re.BodyWeight,
			Distance:       re.Distance,
			RunningStyle:   re.RunningStyle,
			Jockey:         re.Jockey,
			Trainer:        re.Trainer,
			Popularity:     re.Popularity,
			BaseScore:      re.Score,
			Pedigree:       re.Pedigree,
			Owner:          re.Owner,
			Breeder:        re.Breeder,
			RecentForm:     re.RecentForm,
			TrackCondition: re.TrackCondition,
			DrawFit:        re.DrawFit,
			TrackFit:       re.TrackFit,
		}
		if w := parseDecimal(re.CarriedWeight); w != nil {
			entry.CarriedWeight = w.InexactFloat64()
		}
		if odds := parseDecimal(re.Odds); odds != nil {
			entry.Odds = *odds
		} else if re.Odds != nil {
			p.logger.WithField("horse", re.Name).Warnf("Unparseable odds %q", *re.Odds)
		}

		if err := p.validate.Struct(&entry); err != nil {
			return nil, NewDataSourceError(RemoteProviderName, ErrCodeInvalidData, fmt.Sprintf("invalid entry %q", re.Name), err)
		}
		if seen[entry.Name] {
			return nil, NewDataSourceError(RemoteProviderName, ErrCodeInvalidData, fmt.Sprintf("duplicate horse %q", entry.Name), nil)
		}
		seen[entry.Name] = true
		entries = append(entries, entry)
	}

	p.logger.WithFields(logrus.Fields{
		"race_id": card.RaceID,
		"entries": len(entries),
	}).Debug("Race card converted")

	return entries, nil
}

// parseDecimal parses a string to decimal.Decimal, returning nil if invalid
func parseDecimal(s *string) *decimal.Decimal {
	if s == nil || *s == "" {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}
