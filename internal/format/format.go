// Package format turns backend values into the text shown in tables.
package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jwaldner/options-screener/internal/utils"
)

// NotAvailable is shown for any value the backend left out
const NotAvailable = "N/A"

// Moneyness and contract type colors
const (
	ColorITM     = "#28a745"
	ColorATM     = "#ffc107"
	ColorOTM     = "#dc3545"
	ColorNeutral = "#6c757d"

	ColorCall = "#28a745"
	ColorPut  = "#dc3545"
)

var printer = message.NewPrinter(language.English)

// Dollars prefixes the shortest decimal form of v with "$" ($150, $2.35)
func Dollars(v float64) string {
	return "$" + decimal.NewFromFloat(v).String()
}

// Price renders a stock price with two decimals
func Price(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// Integer renders a count with en-US thousands separators
func Integer(v int64) string {
	return printer.Sprintf("%d", v)
}

// Number renders a float with its shortest form
func Number(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// IV renders an implied volatility already expressed in percent
func IV(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return Percent(*v)
}

// Percent renders a percentage with one decimal
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func Delta(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.3f", *v)
}

// Spread renders "$<spread> (<pct>%)"
func Spread(spread, pct *float64) string {
	s := NotAvailable
	if spread != nil {
		s = Dollars(*spread)
	}
	p := NotAvailable
	if pct != nil {
		p = Number(*pct)
	}
	return fmt.Sprintf("%s (%s%%)", s, p)
}

// Moneyness returns the label and color of a moneyness tag
func Moneyness(m string) (string, string) {
	switch m {
	case "ITM":
		return m, ColorITM
	case "ATM":
		return m, ColorATM
	case "OTM":
		return m, ColorOTM
	case "":
		return NotAvailable, ColorNeutral
	}
	return m, ColorNeutral
}

func MoneynessColor(m string) string {
	_, color := Moneyness(m)
	return color
}

func MoneynessLabel(m string) string {
	label, _ := Moneyness(m)
	return label
}

// TypeColor colors screener rows by contract type
func TypeColor(t string) string {
	if t == "Call" {
		return ColorCall
	}
	return ColorPut
}

// Expiration renders YYYY-MM-DD as M/D/YYYY
func Expiration(s string) string {
	return utils.FormatExpiration(s)
}

// EmptyTable is the placeholder of a table with no rows
func EmptyTable(title string) string {
	return fmt.Sprintf("No %s data available.", strings.ToLower(title))
}
