package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/jwaldner/options-screener/internal/models"
	"github.com/jwaldner/options-screener/internal/utils"
)

var (
	ErrTickerRequired    = errors.New("Please enter a ticker symbol.")
	ErrNoTickers         = errors.New("Please add at least one ticker")
	ErrInvalidOptionType = errors.New("Option type must be 'calls', 'puts' or 'both'")
	ErrInvalidExpiration = errors.New("Expiration must be a YYYY-MM-DD date")
)

// optionsForm is the raw query of the options chain form. Pointers tell
// "not submitted" apart from "submitted empty".
type optionsForm struct {
	Ticker          string  `schema:"ticker"`
	Expiration      string  `schema:"expiration"`
	MinVolume       *string `schema:"minVolume"`
	MinOpenInterest *string `schema:"minOpenInterest"`
	MaxBidAskSpread *string `schema:"maxBidAskSpread"`
	IncludeGreeks   *string `schema:"includeGreeks"`
}

// screenerForm is the raw query of the screener form
type screenerForm struct {
	Tickers         []string `schema:"tickers"`
	Add             string   `schema:"add"`
	Remove          string   `schema:"remove"`
	MinVolume       *string  `schema:"minVolume"`
	MinOpenInterest *string  `schema:"minOpenInterest"`
	MaxBidAskSpread *string  `schema:"maxBidAskSpread"`
	OptionType      string   `schema:"optionType"`
}

// RequestService handles HTTP request parsing
type RequestService struct {
	decoder  *schema.Decoder
	defaults ScreenerDefaults
}

// ScreenerDefaults are the screener form's initial values
type ScreenerDefaults struct {
	MinVolume       int
	MinOpenInterest int
	MaxBidAskSpread float64
	OptionType      string
}

// NewRequestService creates a new request service
func NewRequestService(defaults ScreenerDefaults) *RequestService {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if defaults.OptionType == "" {
		defaults.OptionType = models.OptionTypeBoth
	}
	return &RequestService{decoder: decoder, defaults: defaults}
}

// Defaults returns the configured screener defaults
func (s *RequestService) Defaults() ScreenerDefaults {
	return s.defaults
}

// NormalizeTicker trims and upper-cases a ticker symbol
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseOptionsQuery turns the options form into backend filters. The ticker is
// required; numeric fields that were not submitted stay nil and are not sent.
func (s *RequestService) ParseOptionsQuery(values url.Values) (*models.OptionsFilters, error) {
	var form optionsForm
	if err := s.decoder.Decode(&form, values); err != nil {
		return nil, fmt.Errorf("ParseOptionsQuery: failed to decode form: %w", err)
	}

	filters := &models.OptionsFilters{
		Ticker:          NormalizeTicker(form.Ticker),
		Expiration:      strings.TrimSpace(form.Expiration),
		MinVolume:       optionalInt(form.MinVolume),
		MinOpenInterest: optionalInt(form.MinOpenInterest),
		MaxBidAskSpread: optionalFloat(form.MaxBidAskSpread),
		IncludeGreeks:   optionalBool(form.IncludeGreeks),
	}

	if filters.Ticker == "" {
		return filters, ErrTickerRequired
	}
	if filters.Expiration != "" {
		if _, err := utils.ParseDate(filters.Expiration); err != nil {
			return filters, ErrInvalidExpiration
		}
	}

	return filters, nil
}

// ParseScreenerQuery rebuilds the screener form state from a query string.
// Tickers may arrive as repeated fields or as one comma/space separated field;
// "add" and "remove" apply the chip edits. Validation errors are left to
// ScreenerForm.Validate so the form can still be rendered.
func (s *RequestService) ParseScreenerQuery(values url.Values) (*ScreenerForm, error) {
	var form screenerForm
	if err := s.decoder.Decode(&form, values); err != nil {
		return nil, fmt.Errorf("ParseScreenerQuery: failed to decode form: %w", err)
	}

	result := &ScreenerForm{
		Tickers:         NewTickerList(),
		MinVolume:       intOrDefault(form.MinVolume, s.defaults.MinVolume),
		MinOpenInterest: intOrDefault(form.MinOpenInterest, s.defaults.MinOpenInterest),
		MaxBidAskSpread: floatOrDefault(form.MaxBidAskSpread, s.defaults.MaxBidAskSpread),
		OptionType:      strings.ToLower(strings.TrimSpace(form.OptionType)),
	}
	if result.OptionType == "" {
		result.OptionType = s.defaults.OptionType
	}

	for _, field := range form.Tickers {
		result.Tickers.AddAll(field)
	}
	if form.Add != "" {
		result.Tickers.AddAll(form.Add)
	}
	if form.Remove != "" {
		result.Tickers.Remove(form.Remove)
	}

	return result, nil
}

// NewScreenerForm returns a form holding the defaults and the given tickers
func (s *RequestService) NewScreenerForm(tickers []string) *ScreenerForm {
	list := NewTickerList()
	for _, t := range tickers {
		list.Add(t)
	}
	return &ScreenerForm{
		Tickers:         list,
		MinVolume:       s.defaults.MinVolume,
		MinOpenInterest: s.defaults.MinOpenInterest,
		MaxBidAskSpread: s.defaults.MaxBidAskSpread,
		OptionType:      s.defaults.OptionType,
	}
}

// optionalInt parses like parseInt(x) || 0 but keeps "not submitted" as nil
func optionalInt(raw *string) *int {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	v := parseIntOrZero(*raw)
	return &v
}

func optionalFloat(raw *string) *float64 {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	v := parseFloatOrZero(*raw)
	return &v
}

func optionalBool(raw *string) *bool {
	if raw == nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(*raw)) {
	case "on", "true", "1", "yes":
		v := true
		return &v
	case "off", "false", "0", "no":
		v := false
		return &v
	}
	return nil
}

func intOrDefault(raw *string, def int) int {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return def
	}
	return parseIntOrZero(*raw)
}

func floatOrDefault(raw *string, def float64) float64 {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return def
	}
	return parseFloatOrZero(*raw)
}

// parseIntOrZero accepts a leading integer ("12abc" -> 12) and returns 0 otherwise
func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

// parseFloatOrZero accepts the longest leading decimal ("7.5abc" -> 7.5, "1e3x" -> 1000)
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '-' || s[exp] == '+') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp]) {
			for exp < len(s) && isDigit(s[exp]) {
				exp++
			}
			end = exp
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
