// Package screener shapes backend screener results for display and export.
package screener

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/api"
	"github.com/jwaldner/options-screener/internal/models"
)

// NoResultsMessage is shown when the screener matched nothing
const NoResultsMessage = "No results found matching your criteria."

// Group is the results of one ticker
type Group struct {
	Ticker  string
	Results []models.ScreenerResult
}

// Header is the heading of the group, e.g. "AAPL - 2 options"
func (g Group) Header() string {
	return fmt.Sprintf("%s - %d options", g.Ticker, len(g.Results))
}

// GroupByTicker splits results by ticker. Groups come in order of each
// ticker's first appearance and keep the backend's order inside a group.
func GroupByTicker(results []models.ScreenerResult) []Group {
	groups := []Group{}
	index := map[string]int{}
	for _, r := range results {
		i, ok := index[r.Ticker]
		if !ok {
			i = len(groups)
			index[r.Ticker] = i
			groups = append(groups, Group{Ticker: r.Ticker})
		}
		groups[i].Results = append(groups[i].Results, r)
	}
	return groups
}

// Summary is the heading above all groups
func Summary(total int) string {
	return fmt.Sprintf("Screener Results (%d options found)", total)
}

// View is the render model of a screener run
type View struct {
	Total  int
	Groups []Group
}

func NewView(results []models.ScreenerResult) *View {
	return &View{Total: len(results), Groups: GroupByTicker(results)}
}

func (v *View) Empty() bool {
	return v.Total == 0
}

func (v *View) Summary() string {
	return Summary(v.Total)
}

// Runner executes screener requests against the backend
type Runner struct {
	api api.ScreenerAPI
}

func NewRunner(screenerAPI api.ScreenerAPI) *Runner {
	return &Runner{api: screenerAPI}
}

// Run screens the filters and groups the results
func (r *Runner) Run(ctx context.Context, filters models.ScreenerFilters) ([]models.ScreenerResult, *View, error) {
	log.WithFields(log.Fields{
		"tickers":    filters.Tickers,
		"optionType": filters.OptionType,
	}).Info("🔍 Screening options")

	results, err := r.api.ScreenOptions(ctx, filters)
	if err != nil {
		return nil, nil, fmt.Errorf("Runner.Run: %w", err)
	}

	view := NewView(results)
	log.Infof("✅ Screener returned %d options across %d tickers", view.Total, len(view.Groups))
	return results, view, nil
}

// WriteCSV writes the results with a header row
func WriteCSV(w io.Writer, results []models.ScreenerResult) error {
	if results == nil {
		results = []models.ScreenerResult{}
	}
	if err := gocsv.Marshal(&results, w); err != nil {
		return fmt.Errorf("WriteCSV: failed to marshal results: %w", err)
	}
	return nil
}

// ExportToCsv writes the results to dir/filename, creating dir if needed
func ExportToCsv(dir, filename string, results []models.ScreenerResult) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("ExportToCsv: failed to create directory: %w", err)
		}
	}

	outFilePath := filepath.Join(dir, filename)
	file, err := os.Create(outFilePath)
	if err != nil {
		return "", fmt.Errorf("ExportToCsv: failed to create file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		return "", fmt.Errorf("ExportToCsv: failed to write to file: %w", err)
	}

	log.Infof("💾 Exported %d screener results to %s", len(results), outFilePath)
	return outFilePath, nil
}

// ReadCSV loads results previously written by WriteCSV or ExportToCsv
func ReadCSV(r io.Reader) ([]models.ScreenerResult, error) {
	var results []models.ScreenerResult
	if err := gocsv.Unmarshal(r, &results); err != nil {
		return nil, fmt.Errorf("ReadCSV: %w", err)
	}
	return results, nil
}
