package query

import (
	"sort"
	"strings"

	"carbonsouq-backend/internal/domain"
)

// Apply filters listings conjunctively by the spec, then orders the
// survivors by the spec's sort key. The input slice is never mutated;
// ties keep their input order (stable sort), and SortRelevance keeps
// the input order entirely. An empty result is a valid outcome, not an
// error — including min_price > max_price.
func Apply(listings []domain.Listing, spec Spec) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, spec) {
			out = append(out, l)
		}
	}

	switch spec.SortKey {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UnitPrice.LessThan(out[j].UnitPrice)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UnitPrice.GreaterThan(out[j].UnitPrice)
		})
	case SortQuantityDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AvailableQuantity > out[j].AvailableQuantity
		})
	case SortVerificationDateDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].VerificationDate.After(out[j].VerificationDate)
		})
	}
	return out
}

func matches(l domain.Listing, spec Spec) bool {
	if spec.FreeText != "" && !matchesFreeText(l, spec.FreeText) {
		return false
	}
	if spec.ProjectType != "" && l.ProjectType != spec.ProjectType {
		return false
	}
	if spec.LocationCategory != "" && !matchesLocation(l, spec.LocationCategory) {
		return false
	}
	if spec.VerificationStandard != "" && !containsFold(l.VerificationStandard, spec.VerificationStandard) {
		return false
	}
	if spec.MinPrice != nil && l.UnitPrice.LessThan(*spec.MinPrice) {
		return false
	}
	if spec.MaxPrice != nil && l.UnitPrice.GreaterThan(*spec.MaxPrice) {
		return false
	}
	return true
}

func matchesFreeText(l domain.Listing, text string) bool {
	return containsFold(l.ProjectName, text) ||
		containsFold(l.ID, text) ||
		containsFold(l.Location, text)
}

func matchesLocation(l domain.Listing, category string) bool {
	switch strings.ToLower(category) {
	case LocationDomestic:
		return l.IsDomestic
	case LocationInternational:
		return !l.IsDomestic
	}
	return containsFold(l.Location, category)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
