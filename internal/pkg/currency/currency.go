// Package currency is the single display-formatting utility for monetary
// amounts, keyed by currency code. The pricing core returns raw decimals;
// formatting lives here, outside the core.
package currency

import (
	"fmt"

	"carbonsouq-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// symbols maps currency codes to their display prefix. Stable-token codes
// render as a suffix instead.
var symbols = map[domain.Currency]string{
	domain.CurrencyAED: "AED ",
	domain.CurrencyUSD: "$",
	domain.CurrencyEUR: "€",
}

// Format renders an amount for display in the given currency, always with
// 2 decimal places (e.g. "AED 850.00", "$55.00", "120.50 USDC").
func Format(amount decimal.Decimal, code domain.Currency) string {
	fixed := amount.StringFixed(2)
	if sym, ok := symbols[code]; ok {
		return sym + fixed
	}
	return fmt.Sprintf("%s %s", fixed, code)
}
