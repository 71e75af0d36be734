package api

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/models"
)

type cachedExpirations struct {
	expirations []string
	fetchedAt   time.Time
}

// ExpirationsCache wraps a ScreenerAPI and caches expiration lists per ticker.
// Fresh entries are served without a backend call; when the backend fails
// the last known list is served instead of the error.
type ExpirationsCache struct {
	ScreenerAPI
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cachedExpirations
}

// NewExpirationsCache creates the cache. A ttl of zero disables freshness,
// so every call goes to the backend but failures still fall back.
func NewExpirationsCache(api ScreenerAPI, ttl time.Duration) *ExpirationsCache {
	return &ExpirationsCache{
		ScreenerAPI: api,
		ttl:         ttl,
		now:         time.Now,
		entries:     map[string]cachedExpirations{},
	}
}

// FetchExpirations serves from cache when fresh and falls back to the last known list
func (c *ExpirationsCache) FetchExpirations(ctx context.Context, ticker string) ([]string, error) {
	c.mu.Lock()
	entry, ok := c.entries[ticker]
	c.mu.Unlock()

	if ok && c.ttl > 0 && c.now().Sub(entry.fetchedAt) < c.ttl {
		log.Tracef("📅 Expirations for %s served from cache", ticker)
		return cloneList(entry.expirations), nil
	}

	expirations, err := c.ScreenerAPI.FetchExpirations(ctx, ticker)
	if err != nil {
		if ok {
			log.Warnf("⚠️ Expirations for %s failed, using last known list from %v ago: %v",
				ticker, c.now().Sub(entry.fetchedAt).Round(time.Second), err)
			return cloneList(entry.expirations), nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[ticker] = cachedExpirations{expirations: cloneList(expirations), fetchedAt: c.now()}
	c.mu.Unlock()

	return expirations, nil
}

// FetchOptionsData refreshes the cached expirations from the chain's availableExpirations
func (c *ExpirationsCache) FetchOptionsData(ctx context.Context, filters models.OptionsFilters) (*models.OptionsData, error) {
	data, err := c.ScreenerAPI.FetchOptionsData(ctx, filters)
	if err == nil && data != nil && len(data.AvailableExpirations) > 0 {
		c.mu.Lock()
		c.entries[data.Ticker] = cachedExpirations{expirations: cloneList(data.AvailableExpirations), fetchedAt: c.now()}
		c.mu.Unlock()
	}
	return data, err
}

// Len returns how many tickers are cached
func (c *ExpirationsCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cloneList(list []string) []string {
	return append([]string(nil), list...)
}
