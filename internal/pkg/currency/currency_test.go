package currency

import (
	"testing"

	"carbonsouq-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	amount := decimal.RequireFromString("850")
	assert.Equal(t, "AED 850.00", Format(amount, domain.CurrencyAED))
	assert.Equal(t, "$850.00", Format(amount, domain.CurrencyUSD))
	assert.Equal(t, "€850.00", Format(amount, domain.CurrencyEUR))
	assert.Equal(t, "850.00 USDC", Format(amount, domain.CurrencyUSDC))
}
