package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaldner/options-screener/internal/config"
)

const optionsBody = `{
  "ticker": "AAPL", "currentPrice": 272.225, "expiration": "2026-01-16",
  "availableExpirations": ["2026-01-16"],
  "calls": [{"contractSymbol": "AAPL260116C00275000", "strike": 275, "lastPrice": 5.1, "bid": 5, "ask": 5.2,
             "volume": 12345, "openInterest": 3400, "impliedVolatility": 24.3, "moneyness": "OTM"}],
  "puts": [],
  "filters": {"minVolume": 0, "minOpenInterest": 0}
}`

const screenerBody = `{"results": [
  {"ticker": "AAPL", "type": "Call", "expiration": "2026-01-16", "strike": 275, "lastPrice": 5.1, "bid": 5, "ask": 5.2, "volume": 1200, "openInterest": 3400, "impliedVolatility": 24.3, "currentPrice": 272.225},
  {"ticker": "MSFT", "type": "Put", "expiration": "2026-01-16", "strike": 470, "lastPrice": 6.4, "bid": 6.3, "ask": 6.5, "volume": 800, "openInterest": 900, "impliedVolatility": 21.7, "currentPrice": 478.1}
]}`

type backend struct {
	mu       sync.Mutex
	lastBody map[string]interface{}
}

func (b *backend) body() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.lastBody = body
		b.mu.Unlock()

		switch {
		case r.URL.Path == "/api/options":
			w.Write([]byte(optionsBody))
		case r.URL.Path == "/api/screener":
			w.Write([]byte(screenerBody))
		case r.URL.Path == "/api/expirations/AAPL":
			w.Write([]byte(`{"expirations": ["2026-01-16", "2026-02-20"]}`))
		case r.URL.Path == "/api/historical-data/AAPL":
			w.Write([]byte(`{"data": [{"time": "2026-01-02", "open": 1, "high": 2, "low": 1, "close": 270}, {"time": "2026-01-05", "open": 1, "high": 2, "low": 1, "close": 280}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "Unknown ticker"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return b, srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(config.LoadFrom("", ""), &out)
	cmd.SetArgs(append([]string{"--api-url", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestOptionsCommand(t *testing.T) {
	b, srv := newBackend(t)

	out, err := run(t, srv, "options", "aapl", "--min-volume", "100")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", b.body()["ticker"])
	assert.Equal(t, float64(100), b.body()["minVolume"])
	assert.NotContains(t, b.body(), "minOpenInterest")

	assert.Contains(t, out, "Current Price: $272.23")
	assert.Contains(t, out, "Expiration: 1/16/2026")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "24.3%")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "No puts data available.")
}

func TestOptionsCommandErrors(t *testing.T) {
	_, srv := newBackend(t)

	_, err := run(t, srv, "options", "AAPL", "--expiration", "soon")
	assert.EqualError(t, err, "Expiration must be a YYYY-MM-DD date")

	_, err = run(t, srv, "expirations", "ZZZZ")
	assert.EqualError(t, err, "Error: Unknown ticker")
}

func TestExpirationsCommand(t *testing.T) {
	_, srv := newBackend(t)

	out, err := run(t, srv, "expirations", "AAPL")
	require.NoError(t, err)
	assert.Contains(t, out, "2/20/2026")

	out, err = run(t, srv, "--json", "expirations", "AAPL")
	require.NoError(t, err)
	assert.JSONEq(t, `{"expirations": ["2026-01-16", "2026-02-20"]}`, out)
}

func TestScreenCommand(t *testing.T) {
	t.Run("prints grouped tables with default filters", func(t *testing.T) {
		b, srv := newBackend(t)

		out, err := run(t, srv, "screen", "aapl,msft", "AAPL")
		require.NoError(t, err)

		assert.Equal(t, []interface{}{"AAPL", "MSFT"}, b.body()["tickers"])
		assert.Equal(t, float64(100), b.body()["minVolume"])
		assert.Equal(t, float64(50), b.body()["minOpenInterest"])
		assert.Equal(t, float64(10), b.body()["maxBidAskSpread"])
		assert.Equal(t, "both", b.body()["optionType"])

		assert.Contains(t, out, "Screener Results (2 options found)")
		assert.Less(t, strings.Index(out, "AAPL - 1 options"), strings.Index(out, "MSFT - 1 options"))
		assert.Contains(t, out, "$478.1")
		assert.NotContains(t, out, "$478.10")
	})

	t.Run("requires tickers", func(t *testing.T) {
		_, srv := newBackend(t)
		_, err := run(t, srv, "screen")
		assert.EqualError(t, err, "Please add at least one ticker")
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, srv := newBackend(t)
		_, err := run(t, srv, "screen", "AAPL", "--type", "strangles")
		assert.Error(t, err)
	})

	t.Run("writes csv", func(t *testing.T) {
		_, srv := newBackend(t)
		dir := t.TempDir()

		out, err := run(t, srv, "screen", "AAPL", "MSFT", "--csv", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote 2 results to")

		matches, err := filepath.Glob(filepath.Join(dir, "*_2tickers_screener.csv"))
		require.NoError(t, err)
		require.Len(t, matches, 1)

		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "Ticker,Type,Expiration,Strike,Last,Bid,Ask,Volume,OpenInterest,IV,StockPrice"))
	})
}

func TestHistoryCommand(t *testing.T) {
	_, srv := newBackend(t)

	out, err := run(t, srv, "history", "aapl")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL Price Chart (30 Days)")
	assert.Contains(t, out, "Change $10.00 (3.7%)")
	assert.Contains(t, out, "1/5/2026")
}
