package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetCurrencySymbol(t *testing.T) {
	assert.Equal(t, "$", GetCurrencySymbol("usd"))
	assert.Equal(t, "$", GetCurrencySymbol("USD"))
	assert.Equal(t, "€", GetCurrencySymbol("eur"))
	assert.Equal(t, "₹", GetCurrencySymbol("inr"))

	// Unknown currencies render as their uppercased code.
	assert.Equal(t, "XYZ", GetCurrencySymbol("xyz"))
}

func TestGetCurrencyPrecision(t *testing.T) {
	assert.Equal(t, int32(2), GetCurrencyPrecision("usd"))
	assert.Equal(t, int32(0), GetCurrencyPrecision("jpy"))
	assert.Equal(t, int32(0), GetCurrencyPrecision("krw"))
	assert.Equal(t, int32(3), GetCurrencyPrecision("kwd"))

	// Unknown currencies fall back to the default precision.
	assert.Equal(t, int32(2), GetCurrencyPrecision("xyz"))
}

func TestFormatAmountToStringWithPrecision(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		expected string
	}{
		{name: "USDRoundsToTwoDecimals", amount: "10.275", currency: "usd", expected: "10.28"},
		{name: "USDPadsToTwoDecimals", amount: "10", currency: "usd", expected: "10.00"},
		{name: "JPYHasNoDecimals", amount: "10.4", currency: "jpy", expected: "10"},
		{name: "KWDHasThreeDecimals", amount: "1.2", currency: "kwd", expected: "1.200"},
		{name: "UnknownCurrencyUsesDefault", amount: "5.5", currency: "xyz", expected: "5.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.expected, FormatAmountToStringWithPrecision(amount, tt.currency))
		})
	}
}

func TestBillingPeriodUnit(t *testing.T) {
	assert.Equal(t, "month", BILLING_PERIOD_MONTHLY.Unit())
	assert.Equal(t, "year", BILLING_PERIOD_ANNUAL.Unit())
	assert.Equal(t, "week", BILLING_PERIOD_WEEKLY.Unit())
	assert.Equal(t, "day", BILLING_PERIOD_DAILY.Unit())
}
