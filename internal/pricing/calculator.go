package pricing

import (
	"carbonsouq-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Amounts are rounded to the smallest currency unit (2 decimals) with
// round-half-even, once at the end of the computation.
const currencyScale = 2

// Calculator prices purchases against an injected policy table. It is a
// stateless pure function per invocation; settlement is someone else's job.
type Calculator struct {
	policies PolicyTable
}

// NewCalculator returns a Calculator using the given table, or the shipped
// defaults when nil.
func NewCalculator(policies PolicyTable) *Calculator {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &Calculator{policies: policies}
}

// Quote computes the cost breakdown for buying quantity tonnes of the
// listing with the given payment method.
//
//	subtotal = unit_price * quantity
//	fee      = subtotal * policy.FeeRate
//	discount = subtotal * policy.DiscountRate
//	total    = subtotal + fee - discount
//
// Fails with QuantityOutOfRangeError when quantity < 1 or quantity exceeds
// the listing's available quantity, and InvalidPaymentMethodError for a
// method missing from the policy table.
func (c *Calculator) Quote(listing domain.Listing, quantity int64, method domain.PaymentMethod) (domain.PurchaseQuote, error) {
	if quantity < 1 || quantity > listing.AvailableQuantity {
		return domain.PurchaseQuote{}, &domain.QuantityOutOfRangeError{
			Requested: quantity,
			Available: listing.AvailableQuantity,
		}
	}
	policy, ok := c.policies[method]
	if !ok {
		return domain.PurchaseQuote{}, &domain.InvalidPaymentMethodError{Method: string(method)}
	}

	subtotal := listing.UnitPrice.Mul(decimal.NewFromInt(quantity))
	fee := subtotal.Mul(policy.FeeRate)
	discount := subtotal.Mul(policy.DiscountRate)
	total := subtotal.Add(fee).Sub(discount)

	return domain.PurchaseQuote{
		ListingID:     listing.ID,
		Quantity:      quantity,
		PaymentMethod: method,
		Currency:      listing.Currency,
		Subtotal:      subtotal.RoundBank(currencyScale),
		PlatformFee:   fee.RoundBank(currencyScale),
		Discount:      discount.RoundBank(currencyScale),
		Total:         total.RoundBank(currencyScale),
	}, nil
}
