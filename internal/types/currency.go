package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyConfig holds display and rounding configuration for a currency.
type CurrencyConfig struct {
	Symbol    string
	Precision int32
}

// currencyConfigs covers the currencies the billing backend supports.
// Unknown currencies fall back to DefaultCurrencyConfig.
var currencyConfigs = map[string]CurrencyConfig{
	"usd": {Symbol: "$", Precision: 2},
	"eur": {Symbol: "€", Precision: 2},
	"gbp": {Symbol: "£", Precision: 2},
	"aud": {Symbol: "A$", Precision: 2},
	"cad": {Symbol: "C$", Precision: 2},
	"inr": {Symbol: "₹", Precision: 2},
	"sar": {Symbol: "SAR", Precision: 2},
	"aed": {Symbol: "AED", Precision: 2},
	"sgd": {Symbol: "S$", Precision: 2},
	"chf": {Symbol: "CHF", Precision: 2},
	"cny": {Symbol: "¥", Precision: 2},
	"brl": {Symbol: "R$", Precision: 2},
	"mxn": {Symbol: "MX$", Precision: 2},
	"sek": {Symbol: "kr", Precision: 2},
	"nok": {Symbol: "kr", Precision: 2},
	"dkk": {Symbol: "kr", Precision: 2},
	"pln": {Symbol: "zł", Precision: 2},
	"jpy": {Symbol: "¥", Precision: 0},
	"krw": {Symbol: "₩", Precision: 0},
	"vnd": {Symbol: "₫", Precision: 0},
	"clp": {Symbol: "CLP$", Precision: 0},
	"kwd": {Symbol: "KD", Precision: 3},
	"bhd": {Symbol: "BD", Precision: 3},
	"omr": {Symbol: "OMR", Precision: 3},
}

// DefaultCurrencyConfig is used for currencies not present in the table.
var DefaultCurrencyConfig = CurrencyConfig{Symbol: "", Precision: 2}

// GetCurrencyConfig returns the config for a currency code (case-insensitive).
func GetCurrencyConfig(currency string) CurrencyConfig {
	if config, ok := currencyConfigs[strings.ToLower(currency)]; ok {
		return config
	}
	return DefaultCurrencyConfig
}

// GetCurrencySymbol returns the display symbol for a currency code. Unknown
// currencies render as their uppercased code.
func GetCurrencySymbol(currency string) string {
	if config, ok := currencyConfigs[strings.ToLower(currency)]; ok {
		return config.Symbol
	}
	return strings.ToUpper(currency)
}

// GetCurrencyPrecision returns the number of decimal places for a currency.
func GetCurrencyPrecision(currency string) int32 {
	return GetCurrencyConfig(currency).Precision
}

// FormatAmountToStringWithPrecision rounds an amount to the currency's
// precision and renders it with a fixed number of decimals.
func FormatAmountToStringWithPrecision(amount decimal.Decimal, currency string) string {
	precision := GetCurrencyPrecision(currency)
	return amount.Round(precision).StringFixed(precision)
}
