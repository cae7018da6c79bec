// Package query filters and orders catalog snapshots. Everything here is
// pure: no I/O, no mutation of the input slice.
package query

import (
	"strings"

	"carbonsouq-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// SortKey enumerates the supported orderings.
type SortKey string

const (
	SortRelevance            SortKey = "relevance"
	SortPriceAsc             SortKey = "priceAsc"
	SortPriceDesc            SortKey = "priceDesc"
	SortQuantityDesc         SortKey = "quantityDesc"
	SortVerificationDateDesc SortKey = "verificationDateDesc"
)

// ParseSortKey validates a raw sort key. Empty means relevance (catalog
// order). Unknown keys are rejected here so the engine never sees them.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortRelevance, nil
	}
	switch k := SortKey(s); k {
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortQuantityDesc, SortVerificationDateDesc:
		return k, nil
	}
	return "", &domain.ValidationError{Field: "sort_key", Reason: "is not a recognized sort key"}
}

// LocationCategory special values; anything else is treated as a substring
// match against the listing location.
const (
	LocationDomestic      = "domestic"
	LocationInternational = "international"
)

// Spec is one structured filter+sort request. Zero-value fields mean
// "unconstrained". Specs are built fresh per request and never persisted.
type Spec struct {
	FreeText             string
	ProjectType          domain.ProjectType
	LocationCategory     string
	VerificationStandard string
	MinPrice             *decimal.Decimal
	MaxPrice             *decimal.Decimal
	SortKey              SortKey
}

// Params are the raw string inputs a Spec is parsed from (query params,
// form fields). Unknown sort keys and malformed bounds fail here;
// min > max is legal and simply matches nothing.
type Params struct {
	FreeText             string
	ProjectType          string
	LocationCategory     string
	VerificationStandard string
	MinPrice             string
	MaxPrice             string
	SortKey              string
}

// NewSpec parses and validates Params into a Spec.
func NewSpec(p Params) (Spec, error) {
	sortKey, err := ParseSortKey(strings.TrimSpace(p.SortKey))
	if err != nil {
		return Spec{}, err
	}
	spec := Spec{
		FreeText:             strings.TrimSpace(p.FreeText),
		LocationCategory:     strings.TrimSpace(p.LocationCategory),
		VerificationStandard: strings.TrimSpace(p.VerificationStandard),
		SortKey:              sortKey,
	}
	if t := strings.TrimSpace(p.ProjectType); t != "" {
		pt := domain.ProjectType(t)
		if !domain.KnownProjectType(pt) {
			return Spec{}, &domain.ValidationError{Field: "project_type", Reason: "is not a recognized project type"}
		}
		spec.ProjectType = pt
	}
	if v := strings.TrimSpace(p.MinPrice); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Spec{}, &domain.ValidationError{Field: "min_price", Reason: "is not a valid number"}
		}
		spec.MinPrice = &d
	}
	if v := strings.TrimSpace(p.MaxPrice); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Spec{}, &domain.ValidationError{Field: "max_price", Reason: "is not a valid number"}
		}
		spec.MaxPrice = &d
	}
	return spec, nil
}
