package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaldner/options-screener/internal/models"
)

type countingAPI struct {
	stubAPI
	calls       int
	expirations []string
	err         error
}

func (c *countingAPI) FetchExpirations(ctx context.Context, ticker string) ([]string, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.expirations, nil
}

func (c *countingAPI) FetchOptionsData(ctx context.Context, filters models.OptionsFilters) (*models.OptionsData, error) {
	return &models.OptionsData{Ticker: filters.Ticker, AvailableExpirations: []string{"2026-03-20"}}, nil
}

func TestExpirationsCache(t *testing.T) {
	clock := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	newCache := func(backend *countingAPI, ttl time.Duration) *ExpirationsCache {
		c := NewExpirationsCache(backend, ttl)
		c.now = func() time.Time { return clock }
		return c
	}

	t.Run("serves fresh entries from cache", func(t *testing.T) {
		backend := &countingAPI{expirations: []string{"2026-01-16"}}
		cache := newCache(backend, time.Minute)

		for i := 0; i < 3; i++ {
			exps, err := cache.FetchExpirations(context.Background(), "AAPL")
			require.NoError(t, err)
			assert.Equal(t, []string{"2026-01-16"}, exps)
		}
		assert.Equal(t, 1, backend.calls)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("refetches when stale", func(t *testing.T) {
		backend := &countingAPI{expirations: []string{"2026-01-16"}}
		cache := newCache(backend, time.Minute)

		_, _ = cache.FetchExpirations(context.Background(), "AAPL")
		cache.now = func() time.Time { return clock.Add(2 * time.Minute) }
		_, _ = cache.FetchExpirations(context.Background(), "AAPL")
		assert.Equal(t, 2, backend.calls)
	})

	t.Run("falls back to last known list", func(t *testing.T) {
		backend := &countingAPI{expirations: []string{"2026-01-16"}}
		cache := newCache(backend, 0)

		_, err := cache.FetchExpirations(context.Background(), "AAPL")
		require.NoError(t, err)

		backend.err = errors.New("backend down")
		exps, err := cache.FetchExpirations(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-16"}, exps)
		assert.Equal(t, 2, backend.calls)
	})

	t.Run("error without a known list", func(t *testing.T) {
		backend := &countingAPI{err: &APIError{StatusCode: 404, Message: "No expirations found"}}
		cache := newCache(backend, time.Minute)

		_, err := cache.FetchExpirations(context.Background(), "ZZZZ")
		assert.EqualError(t, err, "No expirations found")
	})

	t.Run("options data primes the cache", func(t *testing.T) {
		backend := &countingAPI{}
		cache := newCache(backend, time.Minute)

		_, err := cache.FetchOptionsData(context.Background(), models.OptionsFilters{Ticker: "MSFT"})
		require.NoError(t, err)

		exps, err := cache.FetchExpirations(context.Background(), "MSFT")
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-03-20"}, exps)
		assert.Zero(t, backend.calls)
	})

	t.Run("implements the interface", func(t *testing.T) {
		var _ ScreenerAPI = NewExpirationsCache(&countingAPI{}, time.Minute)
	})
}

func TestExpirationsCacheReturnsCopies(t *testing.T) {
	backend := &countingAPI{expirations: []string{"2026-01-16", "2026-02-20"}}
	cache := NewExpirationsCache(backend, time.Minute)

	first, err := cache.FetchExpirations(context.Background(), "AAPL")
	require.NoError(t, err)
	first[0] = "changed"
	backend.expirations[1] = "changed"

	cached, err := cache.FetchExpirations(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-16", "2026-02-20"}, cached)
	assert.Equal(t, 1, backend.calls)

	t.Run("stale fallback", func(t *testing.T) {
		backend.err = errors.New("backend down")
		cache.ttl = 0

		stale, err := cache.FetchExpirations(context.Background(), "AAPL")
		require.NoError(t, err)
		stale[1] = "changed"

		again, err := cache.FetchExpirations(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-16", "2026-02-20"}, again)
	})
}
