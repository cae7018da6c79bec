package catalog

import (
	"errors"
	"time"

	syncsvc "carbonsouq-backend/internal/application/catalogsync"
	"carbonsouq-backend/internal/domain"
	"carbonsouq-backend/internal/pkg/response"
	"carbonsouq-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *syncsvc.Service
}

type upsertBody struct {
	ID                   string `json:"id"`
	ProjectName          string `json:"project_name"`
	Location             string `json:"location"`
	IsDomestic           bool   `json:"is_domestic"`
	ProjectType          string `json:"project_type"`
	AvailableQuantity    int64  `json:"available_quantity"`
	UnitPrice            string `json:"unit_price"`
	Currency             string `json:"currency"`
	VerificationStandard string `json:"verification_standard"`
	VerificationDate     string `json:"verification_date"`
	Description          string `json:"description"`
}

// UpsertListing POST /api/v1/catalog/upsert-listing — admin-key gated.
// unit_price is a decimal string; verification_date is YYYY-MM-DD or RFC3339.
func (h *Handlers) UpsertListing(c *fiber.Ctx) error {
	var body upsertBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if body.ID == "" || body.ProjectName == "" || body.UnitPrice == "" {
		return response.Error(c, "id, project_name and unit_price are required", 400, nil)
	}
	if !validation.IsValidListingID(body.ID) {
		return response.Error(c, "id must be an uppercase registry code (e.g. CC001)", 400, nil)
	}

	price, err := decimal.NewFromString(body.UnitPrice)
	if err != nil {
		return response.Error(c, "Invalid unit_price", 400, nil)
	}
	verifiedAt, err := parseDate(body.VerificationDate)
	if err != nil {
		return response.Error(c, "Invalid verification_date", 400, nil)
	}

	listing, err := h.Service.UpsertListing(c.Context(), domain.Listing{
		ID:                   body.ID,
		ProjectName:          body.ProjectName,
		Location:             body.Location,
		IsDomestic:           body.IsDomestic,
		ProjectType:          domain.ProjectType(body.ProjectType),
		AvailableQuantity:    body.AvailableQuantity,
		UnitPrice:            price,
		Currency:             domain.Currency(body.Currency),
		VerificationStandard: body.VerificationStandard,
		VerificationDate:     verifiedAt,
		Description:          body.Description,
	})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return response.Error(c, ve.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Listing upserted successfully", listing, nil)
}

// Reload POST /api/v1/catalog/reload — admin-key gated full reload from DB.
func (h *Handlers) Reload(c *fiber.Ctx) error {
	count, err := h.Service.Load(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Catalog reloaded", fiber.Map{"count": count}, nil)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
