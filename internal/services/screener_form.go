package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/jwaldner/options-screener/internal/models"
)

// TickerList is the ordered, duplicate-free set of tickers on the screener form
type TickerList struct {
	tickers []string
}

func NewTickerList() *TickerList {
	return &TickerList{}
}

// Add normalizes input and appends it unless it is empty or already present
func (l *TickerList) Add(input string) bool {
	ticker := NormalizeTicker(input)
	if ticker == "" || l.Contains(ticker) {
		return false
	}
	l.tickers = append(l.tickers, ticker)
	return true
}

// AddAll splits input on commas and whitespace and adds every part. It
// returns how many tickers were added.
func (l *TickerList) AddAll(input string) int {
	added := 0
	for _, part := range splitTickers(input) {
		if l.Add(part) {
			added++
		}
	}
	return added
}

// Remove drops a ticker; it reports whether it was present
func (l *TickerList) Remove(ticker string) bool {
	ticker = NormalizeTicker(ticker)
	for i, t := range l.tickers {
		if t == ticker {
			l.tickers = append(l.tickers[:i], l.tickers[i+1:]...)
			return true
		}
	}
	return false
}

func (l *TickerList) Contains(ticker string) bool {
	for _, t := range l.tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// List returns a copy of the tickers in insertion order
func (l *TickerList) List() []string {
	out := make([]string, len(l.tickers))
	copy(out, l.tickers)
	return out
}

func (l *TickerList) Len() int {
	return len(l.tickers)
}

func splitTickers(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
}

// ScreenerForm is the complete state of the multi-ticker screener form
type ScreenerForm struct {
	Tickers         *TickerList
	MinVolume       int
	MinOpenInterest int
	MaxBidAskSpread float64
	OptionType      string
}

// Validate checks the form is ready to submit
func (f *ScreenerForm) Validate() error {
	if f.Tickers == nil || f.Tickers.Len() == 0 {
		return ErrNoTickers
	}
	switch f.OptionType {
	case models.OptionTypeCalls, models.OptionTypePuts, models.OptionTypeBoth:
	default:
		return ErrInvalidOptionType
	}
	return nil
}

// Filters converts the form into the screener request body
func (f *ScreenerForm) Filters() models.ScreenerFilters {
	minVolume := f.MinVolume
	minOI := f.MinOpenInterest
	maxSpread := f.MaxBidAskSpread

	return models.ScreenerFilters{
		Tickers:         f.Tickers.List(),
		MinVolume:       &minVolume,
		MinOpenInterest: &minOI,
		MaxBidAskSpread: &maxSpread,
		OptionType:      f.OptionType,
	}
}

// Values encodes the form back into a query string, used for chip links and exports
func (f *ScreenerForm) Values() url.Values {
	v := url.Values{}
	for _, t := range f.Tickers.List() {
		v.Add("tickers", t)
	}
	v.Set("minVolume", strconv.Itoa(f.MinVolume))
	v.Set("minOpenInterest", strconv.Itoa(f.MinOpenInterest))
	v.Set("maxBidAskSpread", strconv.FormatFloat(f.MaxBidAskSpread, 'f', -1, 64))
	v.Set("optionType", f.OptionType)
	return v
}

// WithoutTicker returns the query string of this form with one ticker removed
func (f *ScreenerForm) WithoutTicker(ticker string) string {
	v := f.Values()
	v.Set("remove", ticker)
	return v.Encode()
}

// ScreenButtonLabel is the text of the screener submit button
func ScreenButtonLabel(count int, loading bool) string {
	if loading {
		return "Screening..."
	}
	if count == 1 {
		return "Screen 1 Ticker"
	}
	return fmt.Sprintf("Screen %d Tickers", count)
}
