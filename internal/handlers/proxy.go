package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/api"
	"github.com/jwaldner/options-screener/internal/chart"
	"github.com/jwaldner/options-screener/internal/models"
	"github.com/jwaldner/options-screener/internal/services"
)

// Request bodies larger than this are rejected
const maxRequestBody = 1 << 20

// ProxyHandler exposes the backend API on the UI's own origin
type ProxyHandler struct {
	api api.ScreenerAPI
}

// NewProxyHandler creates a proxy over any ScreenerAPI
func NewProxyHandler(screenerAPI api.ScreenerAPI) *ProxyHandler {
	return &ProxyHandler{api: screenerAPI}
}

// OptionsHandler handles POST /api/options
func (h *ProxyHandler) OptionsHandler(w http.ResponseWriter, r *http.Request) {
	var filters models.OptionsFilters
	if !decodeBody(w, r, &filters) {
		return
	}

	filters.Ticker = services.NormalizeTicker(filters.Ticker)
	if filters.Ticker == "" {
		setErrorResponse(http.StatusBadRequest, services.ErrTickerRequired.Error(), w)
		return
	}

	data, err := h.api.FetchOptionsData(r.Context(), filters)
	if err != nil {
		log.Errorf("❌ Proxy options request for %s failed: %v", filters.Ticker, err)
		setBackendError(err, w)
		return
	}

	if err := setResponse(data, w); err != nil {
		log.Errorf("❌ %v", err)
	}
}

// ExpirationsHandler handles GET /api/expirations/{ticker}
func (h *ProxyHandler) ExpirationsHandler(w http.ResponseWriter, r *http.Request) {
	ticker := services.NormalizeTicker(mux.Vars(r)["ticker"])

	expirations, err := h.api.FetchExpirations(r.Context(), ticker)
	if err != nil {
		log.Errorf("❌ Proxy expirations request for %s failed: %v", ticker, err)
		setBackendError(err, w)
		return
	}

	if err := setResponse(models.ExpirationsResponse{Expirations: expirations}, w); err != nil {
		log.Errorf("❌ %v", err)
	}
}

// ScreenerHandler handles POST /api/screener
func (h *ProxyHandler) ScreenerHandler(w http.ResponseWriter, r *http.Request) {
	var filters models.ScreenerFilters
	if !decodeBody(w, r, &filters) {
		return
	}

	tickers := services.NewTickerList()
	for _, t := range filters.Tickers {
		tickers.Add(t)
	}
	if tickers.Len() == 0 {
		setErrorResponse(http.StatusBadRequest, services.ErrNoTickers.Error(), w)
		return
	}
	filters.Tickers = tickers.List()

	switch filters.OptionType {
	case "", models.OptionTypeCalls, models.OptionTypePuts, models.OptionTypeBoth:
	default:
		setErrorResponse(http.StatusBadRequest, services.ErrInvalidOptionType.Error(), w)
		return
	}

	results, err := h.api.ScreenOptions(r.Context(), filters)
	if err != nil {
		log.Errorf("❌ Proxy screener request failed: %v", err)
		setBackendError(err, w)
		return
	}

	if err := setResponse(models.ScreenerResponse{Results: results}, w); err != nil {
		log.Errorf("❌ %v", err)
	}
}

// HistoricalDataHandler handles GET /api/historical-data/{ticker}
func (h *ProxyHandler) HistoricalDataHandler(w http.ResponseWriter, r *http.Request) {
	ticker := services.NormalizeTicker(mux.Vars(r)["ticker"])

	bars, err := h.api.FetchHistoricalData(r.Context(), ticker)
	if err != nil {
		log.Errorf("❌ Proxy historical request for %s failed: %v", ticker, err)
		setBackendError(err, w)
		return
	}

	if err := setResponse(models.HistoricalDataResponse{Data: bars}, w); err != nil {
		log.Errorf("❌ %v", err)
	}
}

// ChartHandler handles GET /api/chart/{ticker}, the chart payload the page script draws
func (h *ProxyHandler) ChartHandler(w http.ResponseWriter, r *http.Request) {
	ticker := services.NormalizeTicker(mux.Vars(r)["ticker"])

	bars, err := h.api.FetchHistoricalData(r.Context(), ticker)
	if err != nil {
		setBackendError(err, w)
		return
	}

	payload, err := chart.NewPayload(ticker, bars)
	if err != nil {
		setErrorResponse(http.StatusInternalServerError, err.Error(), w)
		return
	}

	if err := setResponse(payload, w); err != nil {
		log.Errorf("❌ %v", err)
	}
}

// HealthHandler reports that the UI server is up
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	setResponse(map[string]string{"status": "ok"}, w)
}

// decodeBody reads a JSON request body, answering 400 itself on failure
func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(out); err != nil {
		setErrorResponse(http.StatusBadRequest, "Invalid JSON request body", w)
		return false
	}
	return true
}
