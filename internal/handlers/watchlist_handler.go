package handlers

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/services"
	"github.com/jwaldner/options-screener/internal/watchlist"
)

// WatchlistHandler handles watchlist endpoints
type WatchlistHandler struct {
	watchlist *watchlist.Service
	symbols   *services.SymbolService
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(list *watchlist.Service, symbols *services.SymbolService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlist: list,
		symbols:   symbols,
	}
}

// GetSymbolsHandler returns the watchlist rows
func (h *WatchlistHandler) GetSymbolsHandler(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.watchlist.LoadSymbols()
	if err != nil {
		setErrorResponse(http.StatusInternalServerError, "Could not load watchlist", w)
		return
	}

	setResponse(map[string]interface{}{
		"symbols":   symbols,
		"count":     len(symbols),
		"timestamp": time.Now().Unix(),
	}, w)
}

// GetSymbolsInfoHandler returns counts per sector
func (h *WatchlistHandler) GetSymbolsInfoHandler(w http.ResponseWriter, r *http.Request) {
	info, err := h.watchlist.GetSymbolsInfo()
	if err != nil {
		setErrorResponse(http.StatusInternalServerError, "Could not get watchlist info", w)
		return
	}

	setResponse(info, w)
}

// ReloadHandler re-reads the watchlist file
func (h *WatchlistHandler) ReloadHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("📋 Watchlist reload requested")

	startTime := time.Now()
	symbols, err := h.watchlist.Reload()
	duration := time.Since(startTime)

	if err != nil {
		log.Errorf("❌ Watchlist reload failed: %v", err)
		setErrorResponse(http.StatusInternalServerError, "Reload failed", w)
		return
	}

	setResponse(map[string]interface{}{
		"status":          "success",
		"count":           len(symbols),
		"reload_duration": duration.Milliseconds(),
	}, w)

	log.Infof("✅ Watchlist reloaded with %d symbols in %v", len(symbols), duration)
}

// GetDefaultsHandler returns the tickers the screener form starts with
func (h *WatchlistHandler) GetDefaultsHandler(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.symbols.GetDefaultTickers()
	if err != nil {
		setErrorResponse(http.StatusInternalServerError, "Failed to get default tickers", w)
		return
	}

	setResponse(map[string]interface{}{
		"source":  h.symbols.GetSymbolSource(),
		"symbols": tickers,
		"count":   len(tickers),
	}, w)
}
