package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MarketTransaction records a settled purchase against a listing.
type MarketTransaction struct {
	TxID            uuid.UUID       `gorm:"column:tx_id;type:uuid;primaryKey" json:"tx_id"`
	ListingID       string          `gorm:"column:listing_id;not null" json:"listing_id"`
	Quantity        int64           `gorm:"column:quantity;not null" json:"quantity"`
	PaymentMethod   PaymentMethod   `gorm:"column:payment_method;type:varchar(30);not null" json:"payment_method"`
	Currency        Currency        `gorm:"column:currency;type:varchar(10);not null" json:"currency"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:decimal(18,2);not null" json:"subtotal"`
	PlatformFee     decimal.Decimal `gorm:"column:platform_fee;type:decimal(18,2);not null" json:"platform_fee"`
	Discount        decimal.Decimal `gorm:"column:discount;type:decimal(18,2);not null" json:"discount"`
	Total           decimal.Decimal `gorm:"column:total;type:decimal(18,2);not null" json:"total"`
	PaymentIntentID *string         `gorm:"column:payment_intent_id" json:"payment_intent_id"`
	CreatedAt       time.Time       `gorm:"column:createdAt" json:"createdAt"`
}

func (MarketTransaction) TableName() string {
	return "MarketTransactions"
}

// BeforeCreate sets tx_id if not already set (DBs without default uuid).
func (t *MarketTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.TxID == uuid.Nil {
		t.TxID = uuid.New()
	}
	return nil
}

// ListingEvent is the audit trail for listing mutations (CREATED, UPDATED,
// PURCHASED). EventData holds the mutation payload as JSON.
type ListingEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	ListingID string         `gorm:"column:listing_id;not null" json:"listing_id"`
	EventType string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data;type:json" json:"event_data"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
}

func (ListingEvent) TableName() string {
	return "ListingEvents"
}

func (e *ListingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
