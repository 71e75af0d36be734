package handlers

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Router holds every handler the server exposes
type Router struct {
	Pages     *PageHandler
	Proxy     *ProxyHandler
	Watchlist *WatchlistHandler
	Static    fs.FS
}

// NewRouter registers all routes. The returned handler carries request IDs,
// access logging and OpenTelemetry server spans.
func NewRouter(h Router) http.Handler {
	r := mux.NewRouter()

	// handleFunc tags each route's span with its pattern
	handleFunc := func(pattern string, f http.HandlerFunc) *mux.Route {
		return r.Handle(pattern, otelhttp.WithRouteTag(pattern, f))
	}

	if h.Static != nil {
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(h.Static))))
	}

	// Pages
	handleFunc("/", h.Pages.HomeHandler).Methods(http.MethodGet)
	handleFunc("/options", h.Pages.OptionsHandler).Methods(http.MethodGet)
	handleFunc("/screener", h.Pages.ScreenerHandler).Methods(http.MethodGet)
	handleFunc("/screener/export.csv", h.Pages.ExportHandler).Methods(http.MethodGet)

	// Backend API on our own origin
	handleFunc("/api/options", h.Proxy.OptionsHandler).Methods(http.MethodPost)
	handleFunc("/api/expirations/{ticker}", h.Proxy.ExpirationsHandler).Methods(http.MethodGet)
	handleFunc("/api/screener", h.Proxy.ScreenerHandler).Methods(http.MethodPost)
	handleFunc("/api/historical-data/{ticker}", h.Proxy.HistoricalDataHandler).Methods(http.MethodGet)
	handleFunc("/api/chart/{ticker}", h.Proxy.ChartHandler).Methods(http.MethodGet)

	// Watchlist management
	if h.Watchlist != nil {
		handleFunc("/api/watchlist", h.Watchlist.GetSymbolsHandler).Methods(http.MethodGet)
		handleFunc("/api/watchlist/info", h.Watchlist.GetSymbolsInfoHandler).Methods(http.MethodGet)
		handleFunc("/api/watchlist/defaults", h.Watchlist.GetDefaultsHandler).Methods(http.MethodGet)
		handleFunc("/api/watchlist/reload", h.Watchlist.ReloadHandler).Methods(http.MethodPost)
	}

	handleFunc("/healthz", HealthHandler).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = AccessLog(handler)
	handler = RequestID(handler)
	return otelhttp.NewHandler(handler, "options-screener")
}
