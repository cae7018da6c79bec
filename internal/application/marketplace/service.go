// Package marketplace exposes read-side catalog operations: search over a
// snapshot, single-listing lookup. It never mutates the catalog.
package marketplace

import (
	"errors"

	"carbonsouq-backend/internal/catalog"
	"carbonsouq-backend/internal/domain"
	"carbonsouq-backend/internal/query"
)

type Service struct {
	Store *catalog.Store
}

// Search applies the query spec to a fresh catalog snapshot. Running the
// same spec twice against an unchanged catalog yields identical output.
func (s *Service) Search(spec query.Spec) []domain.Listing {
	return query.Apply(s.Store.GetAll(), spec)
}

// GetListing returns one listing by id.
func (s *Service) GetListing(id string) (*domain.Listing, error) {
	l, ok := s.Store.Get(id)
	if !ok {
		return nil, errors.New("Listing not found")
	}
	return &l, nil
}
