package domain

import "github.com/shopspring/decimal"

// PaymentMethod selects the fee/discount policy applied to a purchase.
type PaymentMethod string

const (
	PaymentMethodStandard     PaymentMethod = "standard"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bankTransfer"
	// PaymentMethodLoyaltyToken waives the platform fee and applies a flat
	// discount instead of it.
	PaymentMethodLoyaltyToken PaymentMethod = "loyaltyToken"
)

// PurchaseRequest is a pricing computation request. Quantity is whole tonnes.
type PurchaseRequest struct {
	ListingID     string        `json:"listing_id"`
	Quantity      int64         `json:"quantity"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// PurchaseQuote is the computed cost breakdown for a prospective purchase.
// All amounts are in the listing's currency, rounded half-even to 2 decimals.
type PurchaseQuote struct {
	ListingID     string          `json:"listing_id"`
	Quantity      int64           `json:"quantity"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Currency      Currency        `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
}
