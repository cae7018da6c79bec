package purchases

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	purchsvc "carbonsouq-backend/internal/application/purchases"
	"carbonsouq-backend/internal/catalog"
	"carbonsouq-backend/internal/domain"
	"carbonsouq-backend/internal/pricing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStripe struct{}

func (f *fakeStripe) Create(amountCents int64, currencyCode string, metadata map[string]string) (*StripePaymentIntentResult, error) {
	return &StripePaymentIntentResult{
		ID:           "pi_test_123",
		ClientSecret: "pi_test_123_secret_abc",
	}, nil
}

func setupPurchasesTest(t *testing.T) (*Handlers, *gorm.DB, *catalog.Store) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Listing{}, &domain.MarketTransaction{}, &domain.ListingEvent{},
	))

	seed := domain.Listing{
		ID:                   "CC001",
		ProjectName:          "Abu Dhabi Mangrove Restoration",
		Location:             "Abu Dhabi, UAE",
		IsDomestic:           true,
		ProjectType:          domain.ProjectTypeMangrove,
		AvailableQuantity:    5000,
		UnitPrice:            decimal.RequireFromString("85.00"),
		Currency:             domain.CurrencyAED,
		VerificationStandard: "Verra VCS",
		VerificationDate:     time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&seed).Error)

	store := catalog.NewStore()
	require.NoError(t, store.Upsert(seed))

	svc := &purchsvc.Service{DB: db, Store: store, Calculator: pricing.NewCalculator(nil)}
	h := &Handlers{Service: svc, StripeCreator: &fakeStripe{}}
	return h, db, store
}

type quoteEnvelope struct {
	Status   string               `json:"status"`
	Data     domain.PurchaseQuote `json:"data"`
	Metadata struct {
		DisplayTotal string `json:"display_total"`
	} `json:"metadata"`
}

func TestQuoteStandard(t *testing.T) {
	h, _, _ := setupPurchasesTest(t)
	app := fiber.New()
	app.Post("/quote", h.QuotePurchase)

	body, _ := json.Marshal(map[string]interface{}{
		"listing_id": "CC001", "quantity": 10, "payment_method": "standard",
	})
	req := httptest.NewRequest("POST", "/quote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var env quoteEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "success", env.Status)
	assert.True(t, env.Data.Subtotal.Equal(decimal.RequireFromString("850.00")), "subtotal %s", env.Data.Subtotal)
	assert.True(t, env.Data.PlatformFee.Equal(decimal.RequireFromString("17.00")))
	assert.True(t, env.Data.Discount.IsZero())
	assert.True(t, env.Data.Total.Equal(decimal.RequireFromString("867.00")))
	assert.Equal(t, "AED 867.00", env.Metadata.DisplayTotal)
}

func TestQuoteLoyaltyToken(t *testing.T) {
	h, _, _ := setupPurchasesTest(t)
	app := fiber.New()
	app.Post("/quote", h.QuotePurchase)

	body, _ := json.Marshal(map[string]interface{}{
		"listing_id": "CC001", "quantity": 10, "payment_method": "loyaltyToken",
	})
	req := httptest.NewRequest("POST", "/quote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var env quoteEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Data.PlatformFee.IsZero())
	assert.True(t, env.Data.Discount.Equal(decimal.RequireFromString("85.00")))
	assert.True(t, env.Data.Total.Equal(decimal.RequireFromString("765.00")))
}

func TestQuoteQuantityOutOfRange(t *testing.T) {
	h, _, _ := setupPurchasesTest(t)
	app := fiber.New()
	app.Post("/quote", h.QuotePurchase)

	for _, qty := range []int64{0, 5001} {
		body, _ := json.Marshal(map[string]interface{}{
			"listing_id": "CC001", "quantity": qty, "payment_method": "standard",
		})
		req := httptest.NewRequest("POST", "/quote", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, "quantity %d", qty)
	}
}

func TestQuoteUnknownPaymentMethod(t *testing.T) {
	h, _, _ := setupPurchasesTest(t)
	app := fiber.New()
	app.Post("/quote", h.QuotePurchase)

	body, _ := json.Marshal(map[string]interface{}{
		"listing_id": "CC001", "quantity": 1, "payment_method": "cash",
	})
	req := httptest.NewRequest("POST", "/quote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestQuoteListingNotFound(t *testing.T) {
	h, _, _ := setupPurchasesTest(t)
	app := fiber.New()
	app.Post("/quote", h.QuotePurchase)

	body, _ := json.Marshal(map[string]interface{}{
		"listing_id": "CC999", "quantity": 1, "payment_method": "standard",
	})
	req := httptest.NewRequest("POST", "/quote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestConfirmSettlesPurchase(t *testing.T) {
	h, db, store := setupPurchasesTest(t)
	app := fiber.New()
	app.Post("/confirm", h.ConfirmPurchase)

	body, _ := json.Marshal(map[string]interface{}{
		"listing_id": "CC001", "quantity": 100, "payment_method": "standard",
	})
	req := httptest.NewRequest("POST", "/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var env struct {
		Status string `json:"status"`
		Data   struct {
			Transaction     domain.MarketTransaction `json:"transaction"`
			PaymentIntentID string                   `json:"payment_intent_id"`
			ClientSecret    string                   `json:"client_secret"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "pi_test_123", env.Data.PaymentIntentID)
	assert.Equal(t, "pi_test_123_secret_abc", env.Data.ClientSecret)
	assert.True(t, env.Data.Transaction.Total.Equal(decimal.RequireFromString("8670.00")))

	// Quantity decremented in the DB and the catalog store.
	var row domain.Listing
	require.NoError(t, db.Where("listing_id = ?", "CC001").First(&row).Error)
	assert.Equal(t, int64(4900), row.AvailableQuantity)

	cached, ok := store.Get("CC001")
	require.True(t, ok)
	assert.Equal(t, int64(4900), cached.AvailableQuantity)

	// Audit trail: one PURCHASED event, one transaction row.
	var eventCount int64
	require.NoError(t, db.Model(&domain.ListingEvent{}).Where("event_type = ?", "PURCHASED").Count(&eventCount).Error)
	assert.Equal(t, int64(1), eventCount)
	var txCount int64
	require.NoError(t, db.Model(&domain.MarketTransaction{}).Count(&txCount).Error)
	assert.Equal(t, int64(1), txCount)
}

func TestConfirmOverQuantityFails(t *testing.T) {
	h, db, _ := setupPurchasesTest(t)
	app := fiber.New()
	app.Post("/confirm", h.ConfirmPurchase)

	body, _ := json.Marshal(map[string]interface{}{
		"listing_id": "CC001", "quantity": 5001, "payment_method": "standard",
	})
	req := httptest.NewRequest("POST", "/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	// Nothing settled.
	var txCount int64
	require.NoError(t, db.Model(&domain.MarketTransaction{}).Count(&txCount).Error)
	assert.Equal(t, int64(0), txCount)
}

func TestConfirmMissingFields(t *testing.T) {
	h, _, _ := setupPurchasesTest(t)
	app := fiber.New()
	app.Post("/confirm", h.ConfirmPurchase)

	body, _ := json.Marshal(map[string]interface{}{})
	req := httptest.NewRequest("POST", "/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
