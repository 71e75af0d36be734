package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwaldner/options-screener/internal/models"
)

// ScreenerAPI is implemented by both Client and PerformanceWrapper
type ScreenerAPI interface {
	// FetchOptionsData fetches one expiration of the options chain for a ticker
	FetchOptionsData(ctx context.Context, filters models.OptionsFilters) (*models.OptionsData, error)

	// FetchExpirations lists the expiration dates available for a ticker
	FetchExpirations(ctx context.Context, ticker string) ([]string, error)

	// ScreenOptions runs the backend screener over a set of tickers
	ScreenOptions(ctx context.Context, filters models.ScreenerFilters) ([]models.ScreenerResult, error)

	// FetchHistoricalData fetches daily bars for the price chart
	FetchHistoricalData(ctx context.Context, ticker string) ([]models.CandlestickData, error)
}

// Messages shown to the user when the backend gives no usable error text
const (
	MsgOptionsFailed     = "Failed to fetch options data"
	MsgExpirationsFailed = "Failed to fetch expirations"
	MsgScreenerFailed    = "Failed to screen options"
	MsgHistoricalFailed  = "Failed to fetch historical data"
)

// APIError is a non-2xx answer from the backend. Error() is the text shown to the user.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// RequestError is a failure that never produced a usable backend answer:
// connection problems, timeouts, or a 2xx body that is not valid JSON.
type RequestError struct {
	Op      string
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UserMessage extracts the message to display for an error returned by a ScreenerAPI
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}

	return err.Error()
}

// Stats tracks timing data for backend calls
type Stats struct {
	Requests      int64         `json:"requests"`
	Failures      int64         `json:"failures"`
	SlowRequests  int64         `json:"slow_requests"`
	TotalDuration time.Duration `json:"total_duration"`
	MaxDuration   time.Duration `json:"max_duration"`
}

// Average returns the mean call duration
func (s Stats) Average() time.Duration {
	if s.Requests == 0 {
		return 0
	}
	return time.Duration(int64(s.TotalDuration) / s.Requests)
}
