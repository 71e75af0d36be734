package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/models"
)

// PerformanceWrapper wraps a ScreenerAPI with performance monitoring
type PerformanceWrapper struct {
	api           ScreenerAPI
	slowThreshold time.Duration

	mu    sync.Mutex
	stats Stats
}

// NewPerformanceWrapper creates a wrapper around any ScreenerAPI
func NewPerformanceWrapper(api ScreenerAPI, slowThreshold time.Duration) *PerformanceWrapper {
	if slowThreshold <= 0 {
		slowThreshold = 5 * time.Second
	}
	return &PerformanceWrapper{
		api:           api,
		slowThreshold: slowThreshold,
	}
}

// FetchOptionsData wraps the original method with performance monitoring
func (pw *PerformanceWrapper) FetchOptionsData(ctx context.Context, filters models.OptionsFilters) (*models.OptionsData, error) {
	start := time.Now()
	result, err := pw.api.FetchOptionsData(ctx, filters)
	pw.recordRequest(fmt.Sprintf("FetchOptionsData(%s)", filters.Ticker), time.Since(start), err)
	return result, err
}

// FetchExpirations wraps the original method with performance monitoring
func (pw *PerformanceWrapper) FetchExpirations(ctx context.Context, ticker string) ([]string, error) {
	start := time.Now()
	result, err := pw.api.FetchExpirations(ctx, ticker)
	pw.recordRequest(fmt.Sprintf("FetchExpirations(%s)", ticker), time.Since(start), err)
	return result, err
}

// ScreenOptions wraps the original method with performance monitoring
func (pw *PerformanceWrapper) ScreenOptions(ctx context.Context, filters models.ScreenerFilters) ([]models.ScreenerResult, error) {
	start := time.Now()
	result, err := pw.api.ScreenOptions(ctx, filters)
	pw.recordRequest(fmt.Sprintf("ScreenOptions(%d tickers)", len(filters.Tickers)), time.Since(start), err)
	return result, err
}

// FetchHistoricalData wraps the original method with performance monitoring
func (pw *PerformanceWrapper) FetchHistoricalData(ctx context.Context, ticker string) ([]models.CandlestickData, error) {
	start := time.Now()
	result, err := pw.api.FetchHistoricalData(ctx, ticker)
	pw.recordRequest(fmt.Sprintf("FetchHistoricalData(%s)", ticker), time.Since(start), err)
	return result, err
}

// recordRequest updates performance statistics
func (pw *PerformanceWrapper) recordRequest(call string, duration time.Duration, err error) {
	slow := duration > pw.slowThreshold

	pw.mu.Lock()
	pw.stats.Requests++
	pw.stats.TotalDuration += duration
	if duration > pw.stats.MaxDuration {
		pw.stats.MaxDuration = duration
	}
	if err != nil {
		pw.stats.Failures++
	}
	if slow {
		pw.stats.SlowRequests++
	}
	pw.mu.Unlock()

	log.Debugf("📡 API CALL: %s took %v", call, duration)
	if slow {
		log.Warnf("⚠️  SLOW API CALL: %s took %v", call, duration)
	}
}

// Stats returns a snapshot of the current statistics
func (pw *PerformanceWrapper) Stats() Stats {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return pw.stats
}

// Report returns a human readable performance summary
func (pw *PerformanceWrapper) Report() string {
	stats := pw.Stats()

	slowPct := 0.0
	if stats.Requests > 0 {
		slowPct = float64(stats.SlowRequests) / float64(stats.Requests) * 100
	}

	return fmt.Sprintf(`
📊 Backend Client Performance Stats
===================================
Total Requests:    %d
Failed Requests:   %d
Average Duration:  %v
Max Duration:      %v
Total Time:        %v
Slow Requests:     %d (>%v)
Slow Request %%:    %.1f%%
`,
		stats.Requests,
		stats.Failures,
		stats.Average(),
		stats.MaxDuration,
		stats.TotalDuration,
		stats.SlowRequests,
		pw.slowThreshold,
		slowPct,
	)
}

// Close logs the final performance report
func (pw *PerformanceWrapper) Close() {
	if pw.Stats().Requests > 0 {
		log.Debugf("📊 Backend Performance Report:%s", pw.Report())
	}
}
