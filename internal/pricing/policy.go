// Package pricing computes deterministic purchase cost breakdowns.
// All money is decimal — never float64.
package pricing

import (
	"carbonsouq-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Policy is the fee/discount pair for one payment method, as fractions of
// the subtotal. Nothing forbids a future method carrying both rates.
type Policy struct {
	FeeRate      decimal.Decimal
	DiscountRate decimal.Decimal
}

// PolicyTable maps payment methods to policies. The table is injected into
// the Calculator so new methods are configuration, not code.
type PolicyTable map[domain.PaymentMethod]Policy

// Platform defaults: 2% fee on regular methods; the loyalty token waives
// the fee and applies a flat 10% discount instead.
var (
	defaultFeeRate         = decimal.NewFromFloat(0.02)
	defaultLoyaltyDiscount = decimal.NewFromFloat(0.10)
)

// DefaultPolicies returns the shipped policy table.
func DefaultPolicies() PolicyTable {
	return PoliciesWithRates(defaultFeeRate, defaultLoyaltyDiscount)
}

// PoliciesWithRates builds the standard table from configured rates:
// every regular method gets feeRate, the loyalty token gets loyaltyDiscount
// with no fee.
func PoliciesWithRates(feeRate, loyaltyDiscount decimal.Decimal) PolicyTable {
	regular := Policy{FeeRate: feeRate, DiscountRate: decimal.Zero}
	return PolicyTable{
		domain.PaymentMethodStandard:     regular,
		domain.PaymentMethodCard:         regular,
		domain.PaymentMethodBankTransfer: regular,
		domain.PaymentMethodLoyaltyToken: {FeeRate: decimal.Zero, DiscountRate: loyaltyDiscount},
	}
}
