package datasource

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/keiba-desk/internal/metrics"
	"github.com/yourusername/keiba-desk/internal/models"
)

// CachedProvider keeps the last good table from an upstream provider.
// Refresh failures leave the previous table in place.
type CachedProvider struct {
	source Provider
	logger *logrus.Entry

	mu        sync.RWMutex
	entries   []models.Entry
	fetchedAt time.Time
}

// NewCachedProvider wraps a provider with a last-good cache
func NewCachedProvider(source Provider, logger *logrus.Logger) *CachedProvider {
	return &CachedProvider{
		source: source,
		logger: logger.WithFields(logrus.Fields{"component": "entries-cache", "source": source.Name()}),
	}
}

// Name returns the upstream provider name
func (c *CachedProvider) Name() string {
	return c.source.Name()
}

// Entries returns the cached table, fetching it on first use
func (c *CachedProvider) Entries(ctx context.Context) ([]models.Entry, error) {
	c.mu.RLock()
	cached := c.entries
	c.mu.RUnlock()

	if cached == nil {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
		cached = c.entries
		c.mu.RUnlock()
	}

	out := make([]models.Entry, len(cached))
	copy(out, cached)
	return out, nil
}

// Refresh fetches the table from upstream and replaces the cache on success
func (c *CachedProvider) Refresh(ctx context.Context) error {
	entries, err := c.source.Entries(ctx)
	if err != nil {
		metrics.RecordEntryRefresh(c.source.Name(), false)
		c.logger.WithError(err).Warn("Entry table refresh failed, keeping previous table")
		return err
	}

	c.mu.Lock()
	c.entries = entries
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	metrics.RecordEntryRefresh(c.source.Name(), true)
	c.logger.WithField("entries", len(entries)).Info("Entry table refreshed")
	return nil
}

// FetchedAt returns when the cached table was last refreshed
func (c *CachedProvider) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}
