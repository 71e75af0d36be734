package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaldner/options-screener/internal/models"
)

func TestTickerList(t *testing.T) {
	t.Run("add ignores empty and duplicates", func(t *testing.T) {
		list := NewTickerList()
		assert.True(t, list.Add(" aapl "))
		assert.False(t, list.Add("AAPL"))
		assert.False(t, list.Add("   "))
		assert.True(t, list.Add("msft"))
		assert.Equal(t, []string{"AAPL", "MSFT"}, list.List())
	})

	t.Run("add all splits input", func(t *testing.T) {
		list := NewTickerList()
		assert.Equal(t, 3, list.AddAll("spy,qqq iwm;SPY"))
		assert.Equal(t, 3, list.Len())
	})

	t.Run("remove", func(t *testing.T) {
		list := NewTickerList()
		list.AddAll("AAPL MSFT NVDA")
		assert.True(t, list.Remove("msft"))
		assert.False(t, list.Remove("TSLA"))
		assert.Equal(t, []string{"AAPL", "NVDA"}, list.List())
	})

	t.Run("list is a copy", func(t *testing.T) {
		list := NewTickerList()
		list.Add("AAPL")
		out := list.List()
		out[0] = "XXX"
		assert.True(t, list.Contains("AAPL"))
	})
}

func TestScreenerFormFilters(t *testing.T) {
	form := &ScreenerForm{
		Tickers:         NewTickerList(),
		MinVolume:       100,
		MinOpenInterest: 50,
		MaxBidAskSpread: 10,
		OptionType:      models.OptionTypeCalls,
	}
	form.Tickers.AddAll("AAPL MSFT")

	filters := form.Filters()
	assert.Equal(t, []string{"AAPL", "MSFT"}, filters.Tickers)
	require.NotNil(t, filters.MinVolume)
	assert.Equal(t, 100, *filters.MinVolume)
	require.NotNil(t, filters.MaxBidAskSpread)
	assert.Equal(t, 10.0, *filters.MaxBidAskSpread)
	assert.Equal(t, "calls", filters.OptionType)
}

func TestScreenerFormValues(t *testing.T) {
	svc := newTestRequestService()
	form := svc.NewScreenerForm([]string{"AAPL", "MSFT"})

	values := form.Values()
	assert.Equal(t, []string{"AAPL", "MSFT"}, values["tickers"])
	assert.Equal(t, "10", values.Get("maxBidAskSpread"))

	// the encoded form parses back to the same state
	back, err := svc.ParseScreenerQuery(values)
	require.NoError(t, err)
	assert.Equal(t, form.Tickers.List(), back.Tickers.List())
	assert.Equal(t, form.MinOpenInterest, back.MinOpenInterest)

	removed, err := url.ParseQuery(form.WithoutTicker("AAPL"))
	require.NoError(t, err)
	back, err = svc.ParseScreenerQuery(removed)
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, back.Tickers.List())
}

func TestScreenButtonLabel(t *testing.T) {
	assert.Equal(t, "Screen 0 Tickers", ScreenButtonLabel(0, false))
	assert.Equal(t, "Screen 1 Ticker", ScreenButtonLabel(1, false))
	assert.Equal(t, "Screen 3 Tickers", ScreenButtonLabel(3, false))
	assert.Equal(t, "Screening...", ScreenButtonLabel(3, true))
}
