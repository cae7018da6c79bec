package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectType tags the kind of carbon project behind a listing.
type ProjectType string

const (
	ProjectTypeMangrove      ProjectType = "mangrove"
	ProjectTypeSolar         ProjectType = "solar"
	ProjectTypeAfforestation ProjectType = "afforestation"
	ProjectTypeOther         ProjectType = "other"
)

// KnownProjectType reports whether t is one of the enumerated project types.
func KnownProjectType(t ProjectType) bool {
	switch t {
	case ProjectTypeMangrove, ProjectTypeSolar, ProjectTypeAfforestation, ProjectTypeOther:
		return true
	}
	return false
}

// Currency is an ISO-style or stable-token currency code.
type Currency string

const (
	CurrencyAED  Currency = "AED"
	CurrencyUSD  Currency = "USD"
	CurrencyEUR  Currency = "EUR"
	CurrencyUSDC Currency = "USDC"
)

// KnownCurrency reports whether c is a supported currency code.
func KnownCurrency(c Currency) bool {
	switch c {
	case CurrencyAED, CurrencyUSD, CurrencyEUR, CurrencyUSDC:
		return true
	}
	return false
}

// Listing is one purchasable carbon-credit offer. IDs are human-readable
// registry codes (e.g. "CC001"), not UUIDs. Monetary fields use decimal —
// never float64 for money.
type Listing struct {
	ID                   string          `gorm:"column:listing_id;primaryKey" json:"id"`
	ProjectName          string          `gorm:"column:project_name;not null" json:"project_name"`
	Location             string          `gorm:"column:location;not null" json:"location"`
	IsDomestic           bool            `gorm:"column:is_domestic" json:"is_domestic"`
	ProjectType          ProjectType     `gorm:"column:project_type;type:varchar(20);not null" json:"project_type"`
	AvailableQuantity    int64           `gorm:"column:available_quantity;not null" json:"available_quantity"`
	UnitPrice            decimal.Decimal `gorm:"column:unit_price;type:decimal(18,2);not null" json:"unit_price"`
	Currency             Currency        `gorm:"column:currency;type:varchar(10);not null" json:"currency"`
	VerificationStandard string          `gorm:"column:verification_standard" json:"verification_standard"`
	VerificationDate     time.Time       `gorm:"column:verification_date" json:"verification_date"`
	Description          string          `gorm:"column:description" json:"description"`
	CreatedAt            time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt            time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Listing) TableName() string {
	return "Listings"
}

// Validate enforces the listing invariants: non-empty unique id,
// available_quantity >= 0, unit_price > 0, recognized enums.
func (l *Listing) Validate() error {
	if l.ID == "" {
		return &ValidationError{Field: "id", Reason: "is required"}
	}
	if l.ProjectName == "" {
		return &ValidationError{Field: "project_name", Reason: "is required"}
	}
	if l.AvailableQuantity < 0 {
		return &ValidationError{Field: "available_quantity", Reason: "must be >= 0"}
	}
	if !l.UnitPrice.IsPositive() {
		return &ValidationError{Field: "unit_price", Reason: "must be > 0"}
	}
	if !KnownProjectType(l.ProjectType) {
		return &ValidationError{Field: "project_type", Reason: "is not a recognized project type"}
	}
	if !KnownCurrency(l.Currency) {
		return &ValidationError{Field: "currency", Reason: "is not a supported currency code"}
	}
	return nil
}
