package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaldner/options-screener/internal/config"
)

type fakeSymbols struct {
	symbols []string
	err     error
}

func (f fakeSymbols) GetSymbolsAsStrings() ([]string, error) {
	return f.symbols, f.err
}

func TestSymbolServiceDefaultTickers(t *testing.T) {
	t.Run("configured tickers win", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Screener.DefaultTickers = []string{"SPY", "QQQ"}
		svc := NewSymbolService(cfg, fakeSymbols{symbols: []string{"AAPL"}})

		tickers, err := svc.GetDefaultTickers()
		require.NoError(t, err)
		assert.Equal(t, []string{"SPY", "QQQ"}, tickers)
		assert.Contains(t, svc.GetSymbolSource(), "2 Configured")
	})

	t.Run("watchlist is capped", func(t *testing.T) {
		var many []string
		for i := 0; i < 40; i++ {
			many = append(many, fmt.Sprintf("T%02d", i))
		}
		cfg := &config.Config{}
		cfg.Screener.WatchlistFile = "watchlist.csv"
		svc := NewSymbolService(cfg, fakeSymbols{symbols: many})

		tickers, err := svc.GetDefaultTickers()
		require.NoError(t, err)
		assert.Len(t, tickers, maxWatchlistTickers)
		assert.Equal(t, "T00", tickers[0])
		assert.Contains(t, svc.GetSymbolSource(), "watchlist.csv")
	})

	t.Run("watchlist error", func(t *testing.T) {
		svc := NewSymbolService(&config.Config{}, fakeSymbols{err: errors.New("bad csv")})
		_, err := svc.GetDefaultTickers()
		assert.ErrorContains(t, err, "bad csv")
	})

	t.Run("no source", func(t *testing.T) {
		svc := NewSymbolService(&config.Config{}, nil)
		tickers, err := svc.GetDefaultTickers()
		require.NoError(t, err)
		assert.Empty(t, tickers)
		assert.Equal(t, "None (add tickers manually)", svc.GetSymbolSource())
	})
}
