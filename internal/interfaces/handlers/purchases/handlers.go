package purchases

import (
	"errors"
	"strconv"
	"strings"

	purchsvc "carbonsouq-backend/internal/application/purchases"
	"carbonsouq-backend/internal/domain"
	"carbonsouq-backend/internal/pkg/currency"
	"carbonsouq-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

type Handlers struct {
	Service       *purchsvc.Service
	StripeCreator StripePaymentIntentCreator
}

// StripePaymentIntentCreator abstracts Stripe PaymentIntent creation for
// testability.
type StripePaymentIntentCreator interface {
	Create(amountCents int64, currencyCode string, metadata map[string]string) (*StripePaymentIntentResult, error)
}

type StripePaymentIntentResult struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// RealStripeCreator uses the Stripe Go SDK to create PaymentIntents.
type RealStripeCreator struct {
	SecretKey string
}

func (r *RealStripeCreator) Create(amountCents int64, currencyCode string, metadata map[string]string) (*StripePaymentIntentResult, error) {
	if r.SecretKey == "" {
		return nil, fiber.NewError(501, "Stripe integration pending")
	}
	stripe.Key = r.SecretKey
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currencyCode),
		Metadata: metadata,
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &StripePaymentIntentResult{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

type purchaseBody struct {
	ListingID     string `json:"listing_id"`
	Quantity      int64  `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
}

// QuotePurchase POST /api/v1/purchases/quote — pure pricing, no side effects.
func (h *Handlers) QuotePurchase(c *fiber.Ctx) error {
	var body purchaseBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "listing_id, quantity and payment_method are required", 400, nil)
	}
	if body.ListingID == "" || body.PaymentMethod == "" {
		return response.Error(c, "listing_id, quantity and payment_method are required", 400, nil)
	}

	quote, err := h.Service.Quote(domain.PurchaseRequest{
		ListingID:     body.ListingID,
		Quantity:      body.Quantity,
		PaymentMethod: domain.PaymentMethod(body.PaymentMethod),
	})
	if err != nil {
		return quoteError(c, err)
	}
	return response.Success(c, "Quote computed successfully", quote, fiber.Map{
		"display_total": currency.Format(quote.Total, quote.Currency),
	})
}

// ConfirmPurchase POST /api/v1/purchases/confirm — settles the purchase:
// creates the payment intent, decrements quantity, records the transaction.
func (h *Handlers) ConfirmPurchase(c *fiber.Ctx) error {
	var body purchaseBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "listing_id, quantity and payment_method are required", 400, nil)
	}
	if body.ListingID == "" || body.PaymentMethod == "" {
		return response.Error(c, "listing_id, quantity and payment_method are required", 400, nil)
	}

	req := domain.PurchaseRequest{
		ListingID:     body.ListingID,
		Quantity:      body.Quantity,
		PaymentMethod: domain.PaymentMethod(body.PaymentMethod),
	}

	quote, err := h.Service.Quote(req)
	if err != nil {
		return quoteError(c, err)
	}

	var intentID, clientSecret string
	if h.StripeCreator != nil {
		amountCents := quote.Total.Shift(2).Round(0).IntPart()
		pi, err := h.StripeCreator.Create(amountCents, strings.ToLower(string(quote.Currency)), map[string]string{
			"listing_id":     req.ListingID,
			"quantity":       strconv.FormatInt(req.Quantity, 10),
			"payment_method": string(req.PaymentMethod),
		})
		if err != nil {
			code := 500
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return response.Error(c, err.Error(), code, nil)
		}
		intentID = pi.ID
		clientSecret = pi.ClientSecret
	}

	record, err := h.Service.Settle(c.Context(), req, intentID)
	if err != nil {
		return quoteError(c, err)
	}
	return response.SuccessCreated(c, "Purchase confirmed", fiber.Map{
		"transaction":       record,
		"payment_intent_id": intentID,
		"client_secret":     clientSecret,
	}, nil)
}

// quoteError maps core error types to HTTP codes.
func quoteError(c *fiber.Ctx, err error) error {
	var qErr *domain.QuantityOutOfRangeError
	var pmErr *domain.InvalidPaymentMethodError
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &qErr), errors.As(err, &pmErr), errors.As(err, &vErr):
		return response.Error(c, err.Error(), 400, nil)
	case err.Error() == "Listing not found":
		return response.Error(c, err.Error(), 404, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}
