package config

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	AdminAPIKey         string // X-Admin-Key for catalog writes and reload
	StripeSecretKey     string
	FrontendURLEndsWith string
	DevPassword         string

	// Payment policy rates are configuration, not code, so new methods and
	// tiers don't need a deploy. Fractions of the subtotal.
	PlatformFeeRate     decimal.Decimal
	LoyaltyDiscountRate decimal.Decimal
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "production" && viper.GetString("DATABASE_URL_PROD") != "" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		AdminAPIKey:         viper.GetString("ADMIN_API_KEY"),
		StripeSecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		PlatformFeeRate:     rateOrDefault(viper.GetString("PLATFORM_FEE_RATE"), "0.02"),
		LoyaltyDiscountRate: rateOrDefault(viper.GetString("LOYALTY_DISCOUNT_RATE"), "0.10"),
	}, nil
}

func rateOrDefault(s, def string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		s = def
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		d, _ = decimal.NewFromString(def)
	}
	return d
}
