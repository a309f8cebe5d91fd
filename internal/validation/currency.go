package validation

import "math"

// Required currency codes. Every product must quote a price in each of them.
const (
	CurrencyUSD = "USD"
	CurrencyGBP = "GBP"
)

// RequiredCurrencies lists the mandatory price keys. Additional codes are allowed.
var RequiredCurrencies = []string{CurrencyUSD, CurrencyGBP}

// ValidPrices reports whether prices contains every required currency and only
// finite, non-negative amounts.
func ValidPrices(prices map[string]float64) bool {
	if len(prices) == 0 {
		return false
	}
	for _, code := range RequiredCurrencies {
		if _, ok := prices[code]; !ok {
			return false
		}
	}
	for _, amount := range prices {
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return false
		}
	}
	return true
}

// ValidNullablePrices applies ValidPrices to a wire price map, where a nil amount
// is rejected like any other invalid value.
func ValidNullablePrices(prices map[string]*float64) bool {
	if prices == nil {
		return false
	}
	values := make(map[string]float64, len(prices))
	for code, amount := range prices {
		if amount == nil {
			return false
		}
		values[code] = *amount
	}
	return ValidPrices(values)
}
