// Package session holds per-user marks, manual scores and race selection.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/keiba-desk/internal/models"
)

// State is one user's working state. Every horse starts with an empty mark
// and a zero manual score; both survive re-renders until cleared or until
// the horse set changes.
type State struct {
	id        uuid.UUID
	createdAt time.Time

	mu        sync.RWMutex
	horses    []string
	marks     map[string]models.Mark
	manual    map[string]int
	race      models.RaceMeta
	updatedAt time.Time
}

// Snapshot is a read-only copy of a state
type Snapshot struct {
	ID           uuid.UUID              `json:"id"`
	Race         models.RaceMeta        `json:"race"`
	Marks        map[string]models.Mark `json:"marks"`
	ManualScores map[string]int         `json:"manual_scores"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// NewState creates an empty state with a fresh ID
func NewState() *State {
	now := time.Now()
	return &State{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
		marks:     make(map[string]models.Mark),
		manual:    make(map[string]int),
	}
}

// ID returns the session identifier
func (s *State) ID() uuid.UUID {
	return s.id
}

// Sync aligns the state with the current horse set. It reports true when an
// existing set was replaced and the adjustments were reset.
func (s *State) Sync(names []string) bool {
	incoming := append([]string(nil), names...)
	sort.Strings(incoming)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sameSet(s.horses, incoming) {
		return false
	}

	reset := s.horses != nil
	s.horses = incoming
	s.marks = make(map[string]models.Mark, len(incoming))
	s.manual = make(map[string]int, len(incoming))
	for _, name := range incoming {
		s.marks[name] = models.MarkNone
		s.manual[name] = 0
	}
	s.updatedAt = time.Now()
	return reset
}

// SetMark replaces the horse's mark and returns the previous one
func (s *State) SetMark(name string, mark models.Mark) (models.Mark, error) {
	if _, err := models.ParseMark(string(mark)); err != nil {
		return models.MarkNone, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.marks[name]
	if !ok {
		return models.MarkNone, fmt.Errorf("%w: %q", models.ErrUnknownHorse, name)
	}
	s.marks[name] = mark
	s.updatedAt = time.Now()
	return old, nil
}

// SetManualScore replaces the horse's manual adjustment and returns the previous one
func (s *State) SetManualScore(name string, value int) (int, error) {
	if err := models.ValidateManualScore(value); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.manual[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownHorse, name)
	}
	s.manual[name] = value
	s.updatedAt = time.Now()
	return old, nil
}

// Mark returns the horse's mark, empty for unknown horses
func (s *State) Mark(name string) models.Mark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.marks[name]
}

// ManualScore returns the horse's manual adjustment, zero for unknown horses
func (s *State) ManualScore(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manual[name]
}

// Clear resets every mark and manual score while keeping the horse set
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range s.marks {
		s.marks[name] = models.MarkNone
	}
	for name := range s.manual {
		s.manual[name] = 0
	}
	s.updatedAt = time.Now()
}

// RaceMeta returns the selected race
func (s *State) RaceMeta() models.RaceMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.race
}

// SetRaceMeta validates and stores the selected race
func (s *State) SetRaceMeta(meta models.RaceMeta) error {
	if err := meta.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.race = meta
	s.updatedAt = time.Now()
	return nil
}

// Snapshot copies the state for serialization
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		ID:           s.id,
		Race:         s.race,
		Marks:        make(map[string]models.Mark, len(s.marks)),
		ManualScores: make(map[string]int, len(s.manual)),
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
	for k, v := range s.marks {
		snap.Marks[k] = v
	}
	for k, v := range s.manual {
		snap.ManualScores[k] = v
	}
	return snap
}

func sameSet(current, incoming []string) bool {
	if current == nil || len(current) != len(incoming) {
		return false
	}
	for i := range current {
		if current[i] != incoming[i] {
			return false
		}
	}
	return true
}
