package screener

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaldner/options-screener/internal/models"
)

var sample = []models.ScreenerResult{
	{Ticker: "AAPL", Type: "Call", Expiration: "2026-01-16", Strike: 275, LastPrice: 5.1, Bid: 5, Ask: 5.2, Volume: 1200, OpenInterest: 3400, ImpliedVolatility: 24.3, CurrentPrice: 272.225},
	{Ticker: "MSFT", Type: "Put", Expiration: "2026-01-16", Strike: 470, LastPrice: 6.4, Bid: 6.3, Ask: 6.5, Volume: 800, OpenInterest: 900, ImpliedVolatility: 21.7, CurrentPrice: 478.1},
	{Ticker: "AAPL", Type: "Put", Expiration: "2026-01-16", Strike: 270, LastPrice: 3.9, Bid: 3.8, Ask: 4, Volume: 650, OpenInterest: 2100, ImpliedVolatility: 25.1, CurrentPrice: 272.225},
}

func TestGroupByTicker(t *testing.T) {
	t.Run("first appearance order", func(t *testing.T) {
		groups := GroupByTicker(sample)
		require.Len(t, groups, 2)
		assert.Equal(t, "AAPL", groups[0].Ticker)
		assert.Equal(t, "MSFT", groups[1].Ticker)
		require.Len(t, groups[0].Results, 2)
		assert.Equal(t, "Call", groups[0].Results[0].Type)
		assert.Equal(t, "Put", groups[0].Results[1].Type)
		assert.Equal(t, "AAPL - 2 options", groups[0].Header())
		assert.Equal(t, "MSFT - 1 options", groups[1].Header())
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, GroupByTicker(nil))
	})
}

func TestView(t *testing.T) {
	view := NewView(sample)
	assert.False(t, view.Empty())
	assert.Equal(t, "Screener Results (3 options found)", view.Summary())

	assert.True(t, NewView(nil).Empty())
}

type fakeScreener struct {
	results []models.ScreenerResult
	err     error
	got     models.ScreenerFilters
}

func (f *fakeScreener) FetchOptionsData(ctx context.Context, filters models.OptionsFilters) (*models.OptionsData, error) {
	return nil, errors.New("not used")
}

func (f *fakeScreener) FetchExpirations(ctx context.Context, ticker string) ([]string, error) {
	return nil, errors.New("not used")
}

func (f *fakeScreener) ScreenOptions(ctx context.Context, filters models.ScreenerFilters) ([]models.ScreenerResult, error) {
	f.got = filters
	return f.results, f.err
}

func (f *fakeScreener) FetchHistoricalData(ctx context.Context, ticker string) ([]models.CandlestickData, error) {
	return nil, errors.New("not used")
}

func TestRunner(t *testing.T) {
	t.Run("groups backend results", func(t *testing.T) {
		fake := &fakeScreener{results: sample}
		results, view, err := NewRunner(fake).Run(context.Background(), models.ScreenerFilters{Tickers: []string{"AAPL", "MSFT"}})
		require.NoError(t, err)
		assert.Len(t, results, 3)
		assert.Len(t, view.Groups, 2)
		assert.Equal(t, []string{"AAPL", "MSFT"}, fake.got.Tickers)
	})

	t.Run("wraps errors", func(t *testing.T) {
		fake := &fakeScreener{err: errors.New("Failed to screen options")}
		_, _, err := NewRunner(fake).Run(context.Background(), models.ScreenerFilters{})
		assert.ErrorContains(t, err, "Failed to screen options")
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Ticker,Type,Expiration,Strike,Last,Bid,Ask,Volume,OpenInterest,IV,StockPrice", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "AAPL,Call,2026-01-16,275,"))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample, back)
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Ticker,Type,Expiration,Strike,Last,Bid,Ask,Volume,OpenInterest,IV,StockPrice", strings.TrimSpace(buf.String()))
}

func TestExportToCsv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := ExportToCsv(dir, "screener.csv", sample)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "screener.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "MSFT,Put")
}
