package dto

import (
	"html/template"

	"github.com/jwaldner/options-screener/internal/chart"
	"github.com/jwaldner/options-screener/internal/models"
	"github.com/jwaldner/options-screener/internal/screener"
	"github.com/jwaldner/options-screener/internal/services"
)

// Tab names of the home page
const (
	TabOptions  = "options"
	TabScreener = "screener"
)

// TemplateData represents data passed to HTML templates
type TemplateData struct {
	Title     string
	ActiveTab string
	RequestID string

	Options  OptionsPage
	Screener ScreenerPage
}

// OptionsPage is the options chain tab
type OptionsPage struct {
	Ticker           string
	Expiration       string
	ExpirationHint   string
	MinVolume        string
	MinOpenInterest  string
	MaxBidAskSpread  string
	IncludeGreeks    bool
	Searched         bool
	Error            string
	Data             *models.OptionsData
	Calls            []models.OptionContract
	Puts             []models.OptionContract
	Chart            *chart.Payload
	ChartUnavailable bool
}

// ScreenerPage is the multi-ticker screener tab
type ScreenerPage struct {
	Form         *services.ScreenerForm
	Companies    map[string]string
	SymbolSource string
	ButtonLabel  string
	Ran          bool
	Warning      string
	Error        string
	Results      *screener.View
	ExportURL    template.URL
}
