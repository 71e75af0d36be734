package services

import (
	"fmt"

	"github.com/jwaldner/options-screener/internal/config"
)

// maxWatchlistTickers caps how many watchlist symbols pre-fill the screener
const maxWatchlistTickers = 25

// SymbolSource provides watchlist symbols
type SymbolSource interface {
	GetSymbolsAsStrings() ([]string, error)
}

// SymbolService handles symbol selection logic
type SymbolService struct {
	config    *config.Config
	watchlist SymbolSource
}

// NewSymbolService creates a new symbol service
func NewSymbolService(cfg *config.Config, watchlist SymbolSource) *SymbolService {
	return &SymbolService{
		config:    cfg,
		watchlist: watchlist,
	}
}

// GetDefaultTickers returns the tickers the screener form starts with
func (s *SymbolService) GetDefaultTickers() ([]string, error) {
	// Use configured default tickers if available
	if len(s.config.Screener.DefaultTickers) > 0 {
		return s.config.Screener.DefaultTickers, nil
	}

	if s.watchlist == nil {
		return []string{}, nil
	}

	symbols, err := s.watchlist.GetSymbolsAsStrings()
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist symbols: %w", err)
	}

	if len(symbols) > maxWatchlistTickers {
		symbols = symbols[:maxWatchlistTickers]
	}

	return symbols, nil
}

// GetSymbolSource returns a description of the symbol source
func (s *SymbolService) GetSymbolSource() string {
	if len(s.config.Screener.DefaultTickers) > 0 {
		return fmt.Sprintf("%d Configured: %v", len(s.config.Screener.DefaultTickers), s.config.Screener.DefaultTickers)
	}
	if s.config.Screener.WatchlistFile != "" {
		return fmt.Sprintf("Watchlist %s (first %d)", s.config.Screener.WatchlistFile, maxWatchlistTickers)
	}
	return "None (add tickers manually)"
}
