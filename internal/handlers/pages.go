package handlers

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/api"
	"github.com/jwaldner/options-screener/internal/chart"
	"github.com/jwaldner/options-screener/internal/config"
	"github.com/jwaldner/options-screener/internal/dto"
	"github.com/jwaldner/options-screener/internal/models"
	"github.com/jwaldner/options-screener/internal/screener"
	"github.com/jwaldner/options-screener/internal/services"
	"github.com/jwaldner/options-screener/internal/utils"
)

const pageTitle = "Options Screener"

// PageHandler renders the options chain and screener pages
type PageHandler struct {
	api       api.ScreenerAPI
	config    *config.Config
	requests  *services.RequestService
	symbols   *services.SymbolService
	companies CompanyLookup
	runner    *screener.Runner
	templates *template.Template
}

// CompanyLookup names the company behind a ticker, "" when unknown
type CompanyLookup interface {
	Company(symbol string) string
}

// NewPageHandler creates the page handler
func NewPageHandler(screenerAPI api.ScreenerAPI, cfg *config.Config, requests *services.RequestService, symbols *services.SymbolService, companies CompanyLookup, templates *template.Template) *PageHandler {
	return &PageHandler{
		api:       screenerAPI,
		config:    cfg,
		requests:  requests,
		symbols:   symbols,
		companies: companies,
		runner:    screener.NewRunner(screenerAPI),
		templates: templates,
	}
}

// HomeHandler serves the tabbed home page. ?tab=screener opens the screener.
func (h *PageHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("tab") == dto.TabScreener {
		h.ScreenerHandler(w, r)
		return
	}
	h.OptionsHandler(w, r)
}

// OptionsHandler renders the options chain of ?ticker= with its price chart
func (h *PageHandler) OptionsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := dto.OptionsPage{
		Ticker:          query.Get("ticker"),
		Expiration:      query.Get("expiration"),
		ExpirationHint:  utils.NextMonthlyExpiration(time.Now()),
		MinVolume:       query.Get("minVolume"),
		MinOpenInterest: query.Get("minOpenInterest"),
		MaxBidAskSpread: query.Get("maxBidAskSpread"),
		IncludeGreeks:   query.Get("includeGreeks") != "",
	}

	if _, submitted := query["ticker"]; submitted {
		page.Searched = true
		h.loadOptions(r.Context(), query, &page)
	}

	h.render(w, r, dto.TemplateData{ActiveTab: dto.TabOptions, Options: page})
}

func (h *PageHandler) loadOptions(ctx context.Context, query url.Values, page *dto.OptionsPage) {
	filters, err := h.requests.ParseOptionsQuery(query)
	if err != nil {
		page.Error = err.Error()
		return
	}
	page.Ticker = filters.Ticker

	var (
		wg      sync.WaitGroup
		bars    []models.CandlestickData
		barsErr error
	)
	if h.config.API.FetchHistoricalChart {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bars, barsErr = h.api.FetchHistoricalData(ctx, filters.Ticker)
		}()
	}

	data, err := h.api.FetchOptionsData(ctx, *filters)
	wg.Wait()

	if err != nil {
		log.Errorf("❌ Options request for %s failed: %v", filters.Ticker, err)
		page.Error = api.UserMessage(err)
		page.Calls = nil
		page.Puts = nil
		return
	}

	page.Data = data
	page.Calls = data.Calls
	page.Puts = data.Puts
	log.Infof("✅ Loaded %d calls and %d puts for %s (%s)", len(data.Calls), len(data.Puts), data.Ticker, data.Expiration)

	if !h.config.API.FetchHistoricalChart {
		return
	}
	if barsErr != nil {
		// The chain is still useful without a chart
		log.Warnf("⚠️ Historical data for %s unavailable: %v", filters.Ticker, barsErr)
		page.ChartUnavailable = true
		return
	}

	payload, err := chart.NewPayload(filters.Ticker, bars)
	if err != nil {
		log.Warnf("⚠️ Could not build chart for %s: %v", filters.Ticker, err)
		page.ChartUnavailable = true
		return
	}
	page.Chart = payload
}

// ScreenerHandler renders the screener form. Submitting with run=1 screens the tickers.
func (h *PageHandler) ScreenerHandler(w http.ResponseWriter, r *http.Request) {
	page, err := h.screenerPage(r.URL.Query())
	if err != nil {
		log.Errorf("❌ %v", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if page.Ran {
		h.runScreener(r.Context(), page)
	}

	h.render(w, r, dto.TemplateData{ActiveTab: dto.TabScreener, Screener: *page})
}

func (h *PageHandler) screenerPage(query url.Values) (*dto.ScreenerPage, error) {
	var form *services.ScreenerForm
	if hasScreenerState(query) {
		parsed, err := h.requests.ParseScreenerQuery(query)
		if err != nil {
			return nil, fmt.Errorf("screenerPage: %w", err)
		}
		form = parsed
	} else {
		tickers, err := h.symbols.GetDefaultTickers()
		if err != nil {
			log.Warnf("⚠️ Could not load default tickers: %v", err)
		}
		form = h.requests.NewScreenerForm(tickers)
	}

	page := &dto.ScreenerPage{
		Form:         form,
		Companies:    h.companyNames(form.Tickers.List()),
		SymbolSource: h.symbols.GetSymbolSource(),
		ButtonLabel:  services.ScreenButtonLabel(form.Tickers.Len(), false),
	}

	if query.Get("run") != "" {
		if err := form.Validate(); err != nil {
			page.Warning = err.Error()
		} else {
			page.Ran = true
		}
	}

	return page, nil
}

func (h *PageHandler) runScreener(ctx context.Context, page *dto.ScreenerPage) {
	_, view, err := h.runner.Run(ctx, page.Form.Filters())
	if err != nil {
		log.Errorf("❌ Screener failed: %v", err)
		page.Ran = false
		page.Error = api.UserMessage(err)
		return
	}

	page.Results = view
	page.ExportURL = template.URL("/screener/export.csv?" + page.Form.Values().Encode())
}

// ExportHandler screens the submitted form and downloads the results as CSV
func (h *PageHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	form, err := h.requests.ParseScreenerQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if err := form.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, _, err := h.runner.Run(r.Context(), form.Filters())
	if err != nil {
		log.Errorf("❌ Screener export failed: %v", err)
		http.Error(w, "Screener error: "+api.UserMessage(err), http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := screener.WriteCSV(&buf, results); err != nil {
		log.Errorf("❌ %v", err)
		http.Error(w, "Failed to export results", http.StatusInternalServerError)
		return
	}

	filename := config.FormatCSVFilename(h.config.CSV.FilenameFormat, time.Now(), form.Tickers.Len())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())

	log.Infof("💾 Exported %d screener results as %s", len(results), filename)
}

func (h *PageHandler) companyNames(tickers []string) map[string]string {
	names := map[string]string{}
	if h.companies == nil {
		return names
	}
	for _, t := range tickers {
		if name := h.companies.Company(t); name != "" {
			names[t] = name
		}
	}
	return names
}

// render executes the home template into a buffer so a template error never sends half a page
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, data dto.TemplateData) {
	data.Title = pageTitle
	data.RequestID = RequestIDFrom(r.Context())

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "home.html", data); err != nil {
		log.Errorf("❌ Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// hasScreenerState reports whether the query carries a submitted screener form
func hasScreenerState(query url.Values) bool {
	for _, key := range []string{"tickers", "add", "remove", "run", "minVolume", "minOpenInterest", "maxBidAskSpread", "optionType"} {
		if _, ok := query[key]; ok {
			return true
		}
	}
	return false
}
