package handlers

import (
	"fmt"
	"html/template"
	"io/fs"

	"github.com/jwaldner/options-screener/internal/chart"
	"github.com/jwaldner/options-screener/internal/format"
	"github.com/jwaldner/options-screener/internal/models"
	"github.com/jwaldner/options-screener/internal/screener"
	"github.com/jwaldner/options-screener/internal/services"
)

// optionsTable is the argument of the "optionsTable" template
type optionsTable struct {
	Title string
	Rows  []models.OptionContract
}

// templateFuncs exposes the display formatting to the page templates
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDollars":     format.Dollars,
		"formatPrice":       format.Price,
		"formatInteger":     format.Integer,
		"formatPercent":     format.Percent,
		"formatIV":          format.IV,
		"formatDelta":       format.Delta,
		"formatSpread":      format.Spread,
		"formatExpiration":  format.Expiration,
		"moneynessColor":    format.MoneynessColor,
		"moneynessLabel":    format.MoneynessLabel,
		"typeColor":         format.TypeColor,
		"emptyTable":        format.EmptyTable,
		"screenLabel":       services.ScreenButtonLabel,
		"chartEmptyMessage": chartEmptyMessage,
		"noResultsMessage":  noResultsMessage,
		"tableOf":           tableOf,
		"removeTickerURL":   removeTickerURL,
	}
}

func chartEmptyMessage() string {
	return chart.EmptyMessage
}

func noResultsMessage() string {
	return screener.NoResultsMessage
}

func tableOf(title string, rows []models.OptionContract) optionsTable {
	return optionsTable{Title: title, Rows: rows}
}

// removeTickerURL links to the screener form without one ticker
func removeTickerURL(form *services.ScreenerForm, ticker string) template.URL {
	return template.URL("/screener?" + form.WithoutTicker(ticker))
}

// ParseTemplates parses every page template in fsys
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	tmpl, err := template.New("pages").Funcs(templateFuncs()).ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("ParseTemplates: %w", err)
	}
	return tmpl, nil
}
