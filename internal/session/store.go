package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/keiba-desk/internal/metrics"
	"github.com/yourusername/keiba-desk/internal/models"
)

// Store keeps session states in memory with sliding expiry
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore creates a new session store
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	c := cache.New(ttl, cleanupInterval)
	c.OnEvicted(func(string, interface{}) {
		metrics.UpdateActiveSessions(c.ItemCount())
	})
	return &Store{cache: c, ttl: ttl}
}

// Create starts a new session
func (s *Store) Create() *State {
	state := NewState()
	s.cache.Set(state.ID().String(), state, s.ttl)
	metrics.UpdateActiveSessions(s.cache.ItemCount())
	return state
}

// Get returns a live session and extends its expiry
func (s *Store) Get(id uuid.UUID) (*State, error) {
	key := id.String()
	value, found := s.cache.Get(key)
	if !found {
		return nil, fmt.Errorf("session %s: %w", key, models.ErrNotFound)
	}
	state, ok := value.(*State)
	if !ok {
		return nil, fmt.Errorf("session %s: unexpected cache value %T", key, value)
	}
	s.cache.Set(key, state, s.ttl)
	return state, nil
}

// Delete ends a session
func (s *Store) Delete(id uuid.UUID) error {
	key := id.String()
	if _, found := s.cache.Get(key); !found {
		return fmt.Errorf("session %s: %w", key, models.ErrNotFound)
	}
	s.cache.Delete(key)
	return nil
}

// Count returns the number of sessions held, including expired ones not yet purged
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
