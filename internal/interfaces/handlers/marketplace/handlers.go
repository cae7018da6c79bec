package marketplace

import (
	"errors"

	mktsvc "carbonsouq-backend/internal/application/marketplace"
	"carbonsouq-backend/internal/domain"
	"carbonsouq-backend/internal/pkg/response"
	"carbonsouq-backend/internal/query"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *mktsvc.Service
}

// SearchListings GET /api/v1/marketplace/listings
// Query params: q, project_type, location_category, verification_standard,
// min_price, max_price, sort_key. All optional; filters AND together.
func (h *Handlers) SearchListings(c *fiber.Ctx) error {
	spec, err := query.NewSpec(query.Params{
		FreeText:             c.Query("q"),
		ProjectType:          c.Query("project_type"),
		LocationCategory:     c.Query("location_category"),
		VerificationStandard: c.Query("verification_standard"),
		MinPrice:             c.Query("min_price"),
		MaxPrice:             c.Query("max_price"),
		SortKey:              c.Query("sort_key"),
	})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return response.Error(c, ve.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	listings := h.Service.Search(spec)
	return response.Success(c, "Listings fetched successfully", listings, fiber.Map{
		"total": len(listings),
	})
}

// GetListingByID GET /api/v1/marketplace/listings/:listing_id
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	id := c.Params("listing_id")
	if id == "" {
		return response.Error(c, "listing_id is required", 400, nil)
	}
	listing, err := h.Service.GetListing(id)
	if err != nil {
		if err.Error() == "Listing not found" {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listing fetched successfully", listing, nil)
}
