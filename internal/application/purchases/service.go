// Package purchases prices purchases and settles confirmed ones. Quoting is
// a pure computation; settlement is the one place available quantity is
// decremented, inside a DB transaction.
package purchases

import (
	"context"
	"encoding/json"
	"errors"

	"carbonsouq-backend/internal/catalog"
	"carbonsouq-backend/internal/domain"
	"carbonsouq-backend/internal/pricing"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB         *gorm.DB
	Store      *catalog.Store
	Calculator *pricing.Calculator
}

// Quote computes the cost breakdown for a purchase request. No side effects.
func (s *Service) Quote(req domain.PurchaseRequest) (*domain.PurchaseQuote, error) {
	listing, ok := s.Store.Get(req.ListingID)
	if !ok {
		return nil, errors.New("Listing not found")
	}
	quote, err := s.Calculator.Quote(listing, req.Quantity, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Settle records an accepted quote: re-prices against the current DB row,
// decrements available quantity, writes the transaction and a PURCHASED
// event atomically, then refreshes the catalog store. paymentIntentID is
// the external payment reference (may be empty when the method needs none).
func (s *Service) Settle(ctx context.Context, req domain.PurchaseRequest, paymentIntentID string) (*domain.MarketTransaction, error) {
	var record domain.MarketTransaction
	var updated domain.Listing

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", req.ListingID).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("Listing not found")
			}
			return err
		}

		// Re-quote against the row inside the transaction: the catalog
		// snapshot the caller quoted from may be stale.
		quote, err := s.Calculator.Quote(listing, req.Quantity, req.PaymentMethod)
		if err != nil {
			return err
		}

		listing.AvailableQuantity -= req.Quantity
		if err := tx.Save(&listing).Error; err != nil {
			return err
		}

		record = domain.MarketTransaction{
			ListingID:     listing.ID,
			Quantity:      req.Quantity,
			PaymentMethod: req.PaymentMethod,
			Currency:      quote.Currency,
			Subtotal:      quote.Subtotal,
			PlatformFee:   quote.PlatformFee,
			Discount:      quote.Discount,
			Total:         quote.Total,
		}
		if paymentIntentID != "" {
			record.PaymentIntentID = &paymentIntentID
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		eventDataBytes, _ := json.Marshal(map[string]interface{}{
			"quantity":           req.Quantity,
			"total":              quote.Total,
			"remaining_quantity": listing.AvailableQuantity,
		})
		if err := tx.Create(&domain.ListingEvent{
			ListingID: listing.ID,
			EventType: "PURCHASED",
			EventData: datatypes.JSON(eventDataBytes),
		}).Error; err != nil {
			return err
		}

		updated = listing
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Store refresh is best-effort consistency with the committed row.
	_ = s.Store.Upsert(updated)
	return &record, nil
}
