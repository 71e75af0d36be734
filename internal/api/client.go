package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jwaldner/options-screener/internal/models"
)

const (
	DefaultBaseURL = "http://127.0.0.1:5000"

	// HTTP timeout
	DefaultTimeout = 30 * time.Second

	// Error bodies larger than this are not worth decoding
	maxErrorBody = 64 << 10
)

// Backend endpoint paths
const (
	OptionsPath        = "/api/options"
	ExpirationsPath    = "/api/expirations/"
	ScreenerPath       = "/api/screener"
	HistoricalDataPath = "/api/historical-data/"
)

// Client talks to the options backend over HTTP/JSON
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with an instrumented transport
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchOptionsData posts the filters to /api/options
func (c *Client) FetchOptionsData(ctx context.Context, filters models.OptionsFilters) (*models.OptionsData, error) {
	var data models.OptionsData
	if err := c.do(ctx, "FetchOptionsData", http.MethodPost, OptionsPath, filters, MsgOptionsFailed, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// FetchExpirations returns the expirations for a ticker, never nil on success
func (c *Client) FetchExpirations(ctx context.Context, ticker string) ([]string, error) {
	var resp models.ExpirationsResponse
	path := ExpirationsPath + url.PathEscape(ticker)
	if err := c.do(ctx, "FetchExpirations", http.MethodGet, path, nil, MsgExpirationsFailed, &resp); err != nil {
		return nil, err
	}
	if resp.Expirations == nil {
		return []string{}, nil
	}
	return resp.Expirations, nil
}

// ScreenOptions posts the filters to /api/screener
func (c *Client) ScreenOptions(ctx context.Context, filters models.ScreenerFilters) ([]models.ScreenerResult, error) {
	var resp models.ScreenerResponse
	if err := c.do(ctx, "ScreenOptions", http.MethodPost, ScreenerPath, filters, MsgScreenerFailed, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []models.ScreenerResult{}, nil
	}
	return resp.Results, nil
}

// FetchHistoricalData returns daily bars for a ticker, never nil on success
func (c *Client) FetchHistoricalData(ctx context.Context, ticker string) ([]models.CandlestickData, error) {
	var resp models.HistoricalDataResponse
	path := HistoricalDataPath + url.PathEscape(ticker)
	if err := c.do(ctx, "FetchHistoricalData", http.MethodGet, path, nil, MsgHistoricalFailed, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []models.CandlestickData{}, nil
	}
	return resp.Data, nil
}

// do performs one request. body, when non-nil, is sent as JSON. A 2xx answer
// is decoded into out; anything else becomes an *APIError carrying the
// backend's "error" text or the fallback message.
func (c *Client) do(ctx context.Context, op, method, path string, body interface{}, fallback string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Message: fallback, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return &RequestError{Op: op, Message: fallback, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	log.Tracef("📡 BACKEND API CALL: %s %s", method, req.URL.String())
	startTime := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"op":       op,
		"status":   resp.StatusCode,
		"duration": time.Since(startTime),
	}).Trace("📡 BACKEND API RESPONSE")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body, fallback),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Message: fallback, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

// errorMessage reads {"error": "..."} from an error body, falling back when absent
func errorMessage(body io.Reader, fallback string) string {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&errResp); err != nil {
		return fallback
	}
	if strings.TrimSpace(errResp.Error) == "" {
		return fallback
	}
	return errResp.Error
}
