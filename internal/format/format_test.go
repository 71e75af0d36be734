package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestDollars(t *testing.T) {
	assert.Equal(t, "$150", Dollars(150))
	assert.Equal(t, "$2.35", Dollars(2.35))
	assert.Equal(t, "$0.05", Dollars(0.05))
	assert.Equal(t, "$0", Dollars(0))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "$272.23", Price(272.225))
	assert.Equal(t, "$150.00", Price(150))
}

func TestInteger(t *testing.T) {
	assert.Equal(t, "0", Integer(0))
	assert.Equal(t, "999", Integer(999))
	assert.Equal(t, "12,345", Integer(12345))
	assert.Equal(t, "1,234,567", Integer(1234567))
}

func TestOptionalNumbers(t *testing.T) {
	t.Run("implied volatility", func(t *testing.T) {
		assert.Equal(t, "24.3%", IV(ptr(24.3)))
		assert.Equal(t, "30.0%", IV(ptr(30)))
		assert.Equal(t, NotAvailable, IV(nil))
	})

	t.Run("delta", func(t *testing.T) {
		assert.Equal(t, "0.523", Delta(ptr(0.52345)))
		assert.Equal(t, "-0.410", Delta(ptr(-0.41)))
		assert.Equal(t, NotAvailable, Delta(nil))
	})

	t.Run("spread", func(t *testing.T) {
		assert.Equal(t, "$0.1 (4.26%)", Spread(ptr(0.1), ptr(4.26)))
		assert.Equal(t, "N/A (N/A%)", Spread(nil, nil))
	})
}

func TestMoneyness(t *testing.T) {
	cases := []struct {
		in, label, color string
	}{
		{"ITM", "ITM", ColorITM},
		{"ATM", "ATM", ColorATM},
		{"OTM", "OTM", ColorOTM},
		{"DEEP", "DEEP", ColorNeutral},
		{"", NotAvailable, ColorNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			label, color := Moneyness(tc.in)
			assert.Equal(t, tc.label, label)
			assert.Equal(t, tc.color, color)
			assert.Equal(t, tc.color, MoneynessColor(tc.in))
			assert.Equal(t, tc.label, MoneynessLabel(tc.in))
		})
	}
}

func TestTypeColor(t *testing.T) {
	assert.Equal(t, ColorCall, TypeColor("Call"))
	assert.Equal(t, ColorPut, TypeColor("Put"))
}

func TestExpirationAndEmpty(t *testing.T) {
	assert.Equal(t, "1/16/2026", Expiration("2026-01-16"))
	assert.Equal(t, "No calls data available.", EmptyTable("Calls"))
	assert.Equal(t, "No puts data available.", EmptyTable("Puts"))
}
