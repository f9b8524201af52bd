// Package service wires the entry table, sessions, scoring and allocation
// into the operations the API and CLI expose.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/keiba-desk/internal/betting"
	"github.com/yourusername/keiba-desk/internal/config"
	"github.com/yourusername/keiba-desk/internal/datasource"
	"github.com/yourusername/keiba-desk/internal/logger"
	"github.com/yourusername/keiba-desk/internal/metrics"
	"github.com/yourusername/keiba-desk/internal/models"
	"github.com/yourusername/keiba-desk/internal/repository"
	"github.com/yourusername/keiba-desk/internal/scoring"
	"github.com/yourusername/keiba-desk/internal/session"
)

// Desk serves one user's view of the race: entry table, adjustments and
// bet allocation.
type Desk struct {
	provider    datasource.Provider
	sessions    *session.Store
	scorer      scoring.Scorer
	allocator   *betting.Allocator
	simulations repository.SimulationRepository
	config      *config.BettingConfig
	audit       *logger.AuditLogger
	logger      *logrus.Logger
}

// NewDesk creates a new desk service
func NewDesk(
	provider datasource.Provider,
	sessions *session.Store,
	scorer scoring.Scorer,
	repos *repository.Repositories,
	cfg *config.BettingConfig,
	log *logrus.Logger,
) *Desk {
	if scorer == nil {
		scorer = scoring.NewPassThrough()
	}

	return &Desk{
		provider:    provider,
		sessions:    sessions,
		scorer:      scorer,
		allocator:   betting.NewAllocator(cfg, log),
		simulations: repos.Simulation,
		config:      cfg,
		audit:       logger.NewAuditLogger(log),
		logger:      log,
	}
}

// CreateSession starts a session bound to the current horse set
func (d *Desk) CreateSession(ctx context.Context) (*session.State, error) {
	entries, err := d.provider.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	state := d.sessions.Create()
	state.Sync(models.Names(entries))
	metrics.RecordSessionMutation("create")
	d.logger.WithField("session_id", state.ID()).Debug("Session created")
	return state, nil
}

// Session returns a live session
func (d *Desk) Session(id uuid.UUID) (*session.State, error) {
	return d.sessions.Get(id)
}

// DeleteSession ends a session
func (d *Desk) DeleteSession(id uuid.UUID) error {
	if err := d.sessions.Delete(id); err != nil {
		return err
	}
	metrics.RecordSessionMutation("delete")
	return nil
}

// Board loads the entry table and scores it with the session's adjustments.
// A changed horse set resets the session first.
func (d *Desk) Board(ctx context.Context, id uuid.UUID) (*scoring.Board, *session.State, error) {
	state, err := d.sessions.Get(id)
	if err != nil {
		return nil, nil, err
	}

	entries, err := d.provider.Entries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entries: %w", err)
	}

	if state.Sync(models.Names(entries)) {
		d.audit.LogSessionReset(state.ID().String(), "horse set changed")
		metrics.RecordSessionMutation("reset")
	}

	return scoring.NewBoard(entries, d.scorer, state), state, nil
}

// Entries returns the entry table in the requested order. An empty sort
// uses the configured default.
func (d *Desk) Entries(ctx context.Context, id uuid.UUID, sort string) ([]scoring.ScoredEntry, error) {
	if sort == "" {
		sort = d.config.DefaultSort
	}
	key, err := scoring.ParseSortKey(sort)
	if err != nil {
		return nil, err
	}

	board, _, err := d.Board(ctx, id)
	if err != nil {
		return nil, err
	}
	return board.Sorted(key)
}

// Scores returns the score table, highest total first
func (d *Desk) Scores(ctx context.Context, id uuid.UUID) ([]scoring.ScoredEntry, error) {
	board, _, err := d.Board(ctx, id)
	if err != nil {
		return nil, err
	}
	return board.Sorted(scoring.SortByScore)
}

// Profile is the basic information view of a horse
type Profile struct {
	Name           string `json:"name"`
	SexAge         string `json:"sex_age"`
	Jockey         string `json:"jockey"`
	Owner          string `json:"owner"`
	Breeder        string `json:"breeder"`
	Trainer        string `json:"trainer"`
	Pedigree       string `json:"pedigree"`
	LastBodyWeight int    `json:"last_body_weight"`
}

// Form is the recent results view of a horse
type Form struct {
	Name       string `json:"name"`
	RecentForm string `json:"recent_form"`
}

// Profiles returns the basic information view in table order
func (d *Desk) Profiles(ctx context.Context, id uuid.UUID) ([]Profile, error) {
	board, _, err := d.Board(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]Profile, 0, board.Len())
	for _, e := range board.Entries() {
		out = append(out, Profile{
			Name:           e.Name,
			SexAge:         e.SexAge,
			Jockey:         e.Jockey,
			Owner:          e.Owner,
			Breeder:        e.Breeder,
			Trainer:        e.Trainer,
			Pedigree:       e.Pedigree,
			LastBodyWeight: e.BodyWeight,
		})
	}
	return out, nil
}

// Forms returns the recent results view in table order
func (d *Desk) Forms(ctx context.Context, id uuid.UUID) ([]Form, error) {
	board, _, err := d.Board(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]Form, 0, board.Len())
	for _, e := range board.Entries() {
		out = append(out, Form{Name: e.Name, RecentForm: e.RecentForm})
	}
	return out, nil
}

// SetMark assigns a mark to a horse
func (d *Desk) SetMark(ctx context.Context, id uuid.UUID, horse string, mark models.Mark) error {
	_, state, err := d.Board(ctx, id)
	if err != nil {
		return err
	}

	old, err := state.SetMark(horse, mark)
	if err != nil {
		return err
	}
	d.audit.LogMarkChange(id.String(), horse, string(old), string(mark))
	metrics.RecordSessionMutation("mark")
	return nil
}

// SetManualScore assigns a manual score adjustment to a horse
func (d *Desk) SetManualScore(ctx context.Context, id uuid.UUID, horse string, value int) error {
	_, state, err := d.Board(ctx, id)
	if err != nil {
		return err
	}

	old, err := state.SetManualScore(horse, value)
	if err != nil {
		return err
	}
	d.audit.LogManualScoreChange(id.String(), horse, old, value)
	metrics.RecordSessionMutation("manual_score")
	return nil
}

// ClearAdjustments resets every mark and manual score in the session
func (d *Desk) ClearAdjustments(id uuid.UUID) error {
	state, err := d.sessions.Get(id)
	if err != nil {
		return err
	}

	state.Clear()
	d.audit.LogSessionReset(id.String(), "cleared by user")
	metrics.RecordSessionMutation("clear")
	return nil
}

// SetRaceMeta records which race the session is looking at
func (d *Desk) SetRaceMeta(id uuid.UUID, meta models.RaceMeta) error {
	state, err := d.sessions.Get(id)
	if err != nil {
		return err
	}

	if err := state.SetRaceMeta(meta); err != nil {
		return err
	}
	metrics.RecordSessionMutation("race")
	return nil
}

// AllocationRequest is an allocation asked for through the desk. A nil
// Auto uses the configured default.
type AllocationRequest struct {
	BetType   string
	Selected  []string
	Budget    int
	Auto      *bool
	Overrides map[string]int
}

// Allocate builds an allocation against the session's scored board
func (d *Desk) Allocate(ctx context.Context, id uuid.UUID, req AllocationRequest) (*betting.Result, error) {
	betType, err := betting.ParseBetType(req.BetType)
	if err != nil {
		return nil, err
	}

	board, _, err := d.Board(ctx, id)
	if err != nil {
		return nil, err
	}

	auto := d.config.AutoAllocate
	if req.Auto != nil {
		auto = *req.Auto
	}

	return d.allocator.Allocate(ctx, betting.Request{
		BetType:   betType,
		Selected:  req.Selected,
		Budget:    req.Budget,
		Auto:      auto,
		Overrides: req.Overrides,
	}, board)
}

// DisplayLimit is the row cap applied to allocation listings
func (d *Desk) DisplayLimit() int {
	return d.allocator.DisplayLimit()
}

// DefaultBudget is the budget used when a request leaves it unset
func (d *Desk) DefaultBudget() int {
	return d.config.DefaultBudget
}
