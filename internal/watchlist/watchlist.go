package watchlist

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/models"
)

// Service loads the watchlist CSV (symbol,company,sector) that pre-fills the screener
type Service struct {
	file string

	mu      sync.Mutex
	symbols []models.WatchlistSymbol
	loaded  bool
}

// NewService creates a watchlist backed by file. An empty path means no watchlist.
func NewService(file string) *Service {
	return &Service{file: file}
}

// LoadSymbols reads the watchlist once and caches it. Symbols are
// normalized and deduplicated; a missing file yields an empty list.
func (s *Service) LoadSymbols() ([]models.WatchlistSymbol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.symbols, nil
	}

	symbols, err := s.readFile()
	if err != nil {
		return nil, err
	}

	s.symbols = symbols
	s.loaded = true
	return s.symbols, nil
}

func (s *Service) readFile() ([]models.WatchlistSymbol, error) {
	if s.file == "" {
		return []models.WatchlistSymbol{}, nil
	}

	f, err := os.Open(s.file)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("⚠️ Watchlist %s not found, starting with an empty list", s.file)
		return []models.WatchlistSymbol{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("LoadSymbols: failed to open %s: %w", s.file, err)
	}
	defer f.Close()

	var rows []models.WatchlistSymbol
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []models.WatchlistSymbol{}, nil
		}
		return nil, fmt.Errorf("LoadSymbols: failed to parse %s: %w", s.file, err)
	}

	seen := map[string]bool{}
	symbols := make([]models.WatchlistSymbol, 0, len(rows))
	for _, row := range rows {
		row.Symbol = strings.ToUpper(strings.TrimSpace(row.Symbol))
		if row.Symbol == "" || seen[row.Symbol] {
			continue
		}
		seen[row.Symbol] = true
		row.Company = strings.TrimSpace(row.Company)
		row.Sector = strings.TrimSpace(row.Sector)
		symbols = append(symbols, row)
	}

	log.Infof("📋 Loaded %d watchlist symbols from %s", len(symbols), s.file)
	return symbols, nil
}

// Reload drops the cached list so the next load reads the file again
func (s *Service) Reload() ([]models.WatchlistSymbol, error) {
	s.mu.Lock()
	s.loaded = false
	s.symbols = nil
	s.mu.Unlock()
	return s.LoadSymbols()
}

// GetSymbolsAsStrings returns just the ticker symbols
func (s *Service) GetSymbolsAsStrings() ([]string, error) {
	symbols, err := s.LoadSymbols()
	if err != nil {
		return nil, err
	}

	out := make([]string, len(symbols))
	for i, sym := range symbols {
		out[i] = sym.Symbol
	}
	return out, nil
}

// Company returns the company name of a watchlist symbol, or "" when unknown
func (s *Service) Company(symbol string) string {
	symbols, err := s.LoadSymbols()
	if err != nil {
		return ""
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, sym := range symbols {
		if sym.Symbol == symbol {
			return sym.Company
		}
	}
	return ""
}

// Info summarizes the watchlist
type Info struct {
	File    string         `json:"file"`
	Count   int            `json:"count"`
	Sectors map[string]int `json:"sectors"`
}

// GetSymbolsInfo returns counts per sector
func (s *Service) GetSymbolsInfo() (*Info, error) {
	symbols, err := s.LoadSymbols()
	if err != nil {
		return nil, err
	}

	info := &Info{File: s.file, Count: len(symbols), Sectors: map[string]int{}}
	for _, sym := range symbols {
		sector := sym.Sector
		if sector == "" {
			sector = "Unknown"
		}
		info.Sectors[sector]++
	}
	return info, nil
}
