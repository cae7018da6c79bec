// Package catalog holds the in-memory set of listings the query engine
// reads from. The store is the only shared mutable state in the core;
// writes go through a single lock, reads get defensive-copy snapshots.
package catalog

import (
	"sync"

	"carbonsouq-backend/internal/domain"
)

// Store is an insertion-ordered listing collection keyed by listing id.
// Replacing a listing keeps its original position so that relevance
// ordering stays stable across upserts.
type Store struct {
	mu    sync.RWMutex
	index map[string]int
	items []domain.Listing
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// GetAll returns a snapshot of all listings in insertion order.
// The returned slice is owned by the caller.
func (s *Store) GetAll() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Listing, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the listing with the given id, if present.
func (s *Store) Get(id string) (domain.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return domain.Listing{}, false
	}
	return s.items[i], true
}

// Upsert inserts or replaces a listing by id. Invariant violations are
// rejected with domain.ValidationError and leave the store unchanged.
func (s *Store) Upsert(l domain.Listing) error {
	if err := l.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[l.ID]; ok {
		s.items[i] = l
		return nil
	}
	s.index[l.ID] = len(s.items)
	s.items = append(s.items, l)
	return nil
}

// Replace swaps the entire catalog for the given listings (e.g. a reload
// from the database). Every listing must pass validation; on the first
// failure nothing is replaced.
func (s *Store) Replace(listings []domain.Listing) error {
	index := make(map[string]int, len(listings))
	items := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, dup := index[l.ID]; dup {
			return &domain.ValidationError{Field: "id", Reason: "is duplicated in catalog"}
		}
		index[l.ID] = len(items)
		items = append(items, l)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index
	s.items = items
	return nil
}

// Len returns the number of listings currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
