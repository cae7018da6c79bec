package router

import (
	"context"
	"net/http"

	syncsvc "carbonsouq-backend/internal/application/catalogsync"
	mktsvc "carbonsouq-backend/internal/application/marketplace"
	purchsvc "carbonsouq-backend/internal/application/purchases"
	"carbonsouq-backend/internal/catalog"
	"carbonsouq-backend/internal/config"
	"carbonsouq-backend/internal/infrastructure/database"
	cataloghandler "carbonsouq-backend/internal/interfaces/handlers/catalog"
	healthhandler "carbonsouq-backend/internal/interfaces/handlers/health"
	mkthandler "carbonsouq-backend/internal/interfaces/handlers/marketplace"
	purchhandler "carbonsouq-backend/internal/interfaces/handlers/purchases"
	"carbonsouq-backend/internal/middleware"
	"carbonsouq-backend/internal/pricing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
		app.Use(middleware.HealthMarker(rdb))
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	store := catalog.NewStore()

	hh := &healthhandler.Handlers{
		Rdb:     rdb,
		DB:      nil,
		Catalog: store,
	}
	app.Get("/", hh.Root)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/reset", hh.Reset)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	calculator := pricing.NewCalculator(pricing.PoliciesWithRates(cfg.PlatformFeeRate, cfg.LoyaltyDiscountRate))

	// Marketplace reads work with whatever the store holds, DB or not.
	ms := &mktsvc.Service{Store: store}
	mh := &mkthandler.Handlers{Service: ms}
	mg := app.Group("/api/v1/marketplace")
	mg.Get("/listings", mh.SearchListings)
	mg.Get("/listings/:listing_id", mh.GetListingByID)

	if db != nil {
		cs := &syncsvc.Service{DB: db, Store: store}
		if _, err := cs.Load(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Initial catalog load failed; starting with empty catalog")
		}

		ch := &cataloghandler.Handlers{Service: cs}
		cg := app.Group("/api/v1/catalog", middleware.RequireAdminKey(cfg.AdminAPIKey))
		cg.Post("/upsert-listing", ch.UpsertListing)
		cg.Post("/reload", ch.Reload)

		ps := &purchsvc.Service{DB: db, Store: store, Calculator: calculator}
		ph := &purchhandler.Handlers{
			Service:       ps,
			StripeCreator: &purchhandler.RealStripeCreator{SecretKey: cfg.StripeSecretKey},
		}
		pg := app.Group("/api/v1/purchases")
		pg.Post("/quote", ph.QuotePurchase)
		pg.Post("/confirm", ph.ConfirmPurchase)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
