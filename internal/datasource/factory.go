package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/keiba-desk/internal/config"
)

// NewProvider creates the entry table provider selected by configuration.
// The remote feed is always wrapped in a CachedProvider.
func NewProvider(cfg config.EntriesConfig, logger *logrus.Logger) (Provider, error) {
	switch cfg.Source {
	case SampleProviderName, "":
		return NewSampleProvider(), nil

	case RemoteProviderName:
		if cfg.RemoteURL == "" {
			return nil, fmt.Errorf("remote entry source requires a URL")
		}
		httpCfg := DefaultHTTPClientConfig()
		if cfg.TimeoutSeconds > 0 {
			httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.RateLimit > 0 {
			httpCfg.RateLimit = cfg.RateLimit
		}
		httpCfg.MaxRetries = cfg.MaxRetries

		client := NewRateLimitedHTTPClient(httpCfg, logger)
		return NewCachedProvider(NewRemoteProvider(client, cfg.RemoteURL, cfg.APIKey, logger), logger), nil

	default:
		return nil, fmt.Errorf("unknown entry source: %s", cfg.Source)
	}
}
