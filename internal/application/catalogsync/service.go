// Package catalogsync keeps the in-memory catalog store in step with the
// Listings table: the database is the system of record, the store is what
// the query engine reads.
package catalogsync

import (
	"context"
	"encoding/json"
	"errors"

	"carbonsouq-backend/internal/catalog"
	"carbonsouq-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB    *gorm.DB
	Store *catalog.Store
}

// Load replaces the catalog store contents with all listings from the DB,
// oldest first so relevance order matches listing age.
func (s *Service) Load(ctx context.Context) (int, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Order(`"createdAt" ASC`).Find(&listings).Error; err != nil {
		return 0, err
	}
	if err := s.Store.Replace(listings); err != nil {
		return 0, err
	}
	log.Info().Int("count", len(listings)).Msg("Catalog loaded from database")
	return len(listings), nil
}

// UpsertListing validates and writes a listing through to the DB, records a
// CREATED/UPDATED listing event in the same transaction, then updates the
// in-memory store. On any failure both DB and store are unchanged.
func (s *Service) UpsertListing(ctx context.Context, l domain.Listing) (*domain.Listing, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	eventType := "CREATED"
	var existing domain.Listing
	err := s.DB.WithContext(ctx).Where("listing_id = ?", l.ID).First(&existing).Error
	if err == nil {
		eventType = "UPDATED"
		l.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&l).Error; err != nil {
			return err
		}
		eventDataBytes, _ := json.Marshal(map[string]interface{}{
			"unit_price":         l.UnitPrice,
			"available_quantity": l.AvailableQuantity,
			"source":             "catalog-upsert",
		})
		return tx.Create(&domain.ListingEvent{
			ListingID: l.ID,
			EventType: eventType,
			EventData: datatypes.JSON(eventDataBytes),
		}).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.Store.Upsert(l); err != nil {
		// Validated above, so this only happens if validation rules diverge.
		return nil, err
	}
	return &l, nil
}
