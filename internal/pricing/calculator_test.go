package pricing

import (
	"testing"

	"carbonsouq-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(price string, available int64) domain.Listing {
	return domain.Listing{
		ID:                "CC001",
		ProjectName:       "Abu Dhabi Mangrove Restoration",
		ProjectType:       domain.ProjectTypeMangrove,
		AvailableQuantity: available,
		UnitPrice:         decimal.RequireFromString(price),
		Currency:          domain.CurrencyAED,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestQuoteStandardMethod(t *testing.T) {
	c := NewCalculator(nil)

	quote, err := c.Quote(listing("85.00", 5000), 10, domain.PaymentMethodStandard)
	require.NoError(t, err)
	assert.True(t, quote.Subtotal.Equal(dec("850.00")), "subtotal %s", quote.Subtotal)
	assert.True(t, quote.PlatformFee.Equal(dec("17.00")), "fee %s", quote.PlatformFee)
	assert.True(t, quote.Discount.Equal(dec("0")), "discount %s", quote.Discount)
	assert.True(t, quote.Total.Equal(dec("867.00")), "total %s", quote.Total)
	assert.Equal(t, domain.CurrencyAED, quote.Currency)
}

func TestQuoteLoyaltyToken(t *testing.T) {
	c := NewCalculator(nil)

	quote, err := c.Quote(listing("85.00", 5000), 10, domain.PaymentMethodLoyaltyToken)
	require.NoError(t, err)
	assert.True(t, quote.Subtotal.Equal(dec("850.00")))
	assert.True(t, quote.PlatformFee.Equal(dec("0")))
	assert.True(t, quote.Discount.Equal(dec("85.00")))
	// total == subtotal * 0.90
	assert.True(t, quote.Total.Equal(dec("765.00")), "total %s", quote.Total)
}

func TestQuoteQuantityBoundaries(t *testing.T) {
	c := NewCalculator(nil)
	l := listing("85.00", 5000)

	_, err := c.Quote(l, 5000, domain.PaymentMethodStandard)
	require.NoError(t, err)

	var qErr *domain.QuantityOutOfRangeError
	_, err = c.Quote(l, 5001, domain.PaymentMethodStandard)
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, int64(5001), qErr.Requested)
	assert.Equal(t, int64(5000), qErr.Available)

	_, err = c.Quote(l, 0, domain.PaymentMethodStandard)
	require.ErrorAs(t, err, &qErr)

	_, err = c.Quote(l, -3, domain.PaymentMethodStandard)
	require.ErrorAs(t, err, &qErr)
}

func TestQuoteUnknownMethod(t *testing.T) {
	c := NewCalculator(nil)

	var pmErr *domain.InvalidPaymentMethodError
	_, err := c.Quote(listing("85.00", 5000), 1, "cash")
	require.ErrorAs(t, err, &pmErr)
	assert.Equal(t, "cash", pmErr.Method)
}

func TestQuoteRoundsHalfEvenOnceAtEnd(t *testing.T) {
	c := NewCalculator(nil)

	// subtotal 1.25 -> fee 0.025, banker's rounding to 0.02;
	// total 1.275 rounds to 1.28 (7 is odd).
	quote, err := c.Quote(listing("1.25", 100), 1, domain.PaymentMethodCard)
	require.NoError(t, err)
	assert.True(t, quote.PlatformFee.Equal(dec("0.02")), "fee %s", quote.PlatformFee)
	assert.True(t, quote.Total.Equal(dec("1.28")), "total %s", quote.Total)

	// subtotal 1.75 -> fee 0.035, banker's rounding to 0.04 (3 is odd);
	// total 1.785 rounds to 1.78 (8 is even).
	quote, err = c.Quote(listing("1.75", 100), 1, domain.PaymentMethodCard)
	require.NoError(t, err)
	assert.True(t, quote.PlatformFee.Equal(dec("0.04")), "fee %s", quote.PlatformFee)
	assert.True(t, quote.Total.Equal(dec("1.78")), "total %s", quote.Total)
}

func TestQuoteZeroRatesKeepsTotalExact(t *testing.T) {
	table := PolicyTable{
		domain.PaymentMethodStandard: {FeeRate: decimal.Zero, DiscountRate: decimal.Zero},
	}
	c := NewCalculator(table)

	quote, err := c.Quote(listing("33.33", 100), 3, domain.PaymentMethodStandard)
	require.NoError(t, err)
	assert.True(t, quote.Total.Equal(quote.Subtotal))
	assert.True(t, quote.Total.Equal(dec("99.99")))
}

func TestPoliciesWithRatesInjectable(t *testing.T) {
	table := PoliciesWithRates(dec("0.05"), dec("0.25"))
	c := NewCalculator(table)

	quote, err := c.Quote(listing("100.00", 10), 1, domain.PaymentMethodBankTransfer)
	require.NoError(t, err)
	assert.True(t, quote.PlatformFee.Equal(dec("5.00")))

	quote, err = c.Quote(listing("100.00", 10), 1, domain.PaymentMethodLoyaltyToken)
	require.NoError(t, err)
	assert.True(t, quote.Discount.Equal(dec("25.00")))
	assert.True(t, quote.Total.Equal(dec("75.00")))
}
