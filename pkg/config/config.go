package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	GoogleMaps GoogleMapsConfig
	Checkout   CheckoutConfig
	Square     SquareConfig
	Stripe     StripeConfig
	CORS       CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NIGHTCRAWL_APP_ENV" required:"true"`
	Port         string `envconfig:"NIGHTCRAWL_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"NIGHTCRAWL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NIGHTCRAWL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type GoogleMapsConfig struct {
	APIKey  string `envconfig:"NIGHTCRAWL_GOOGLE_MAPS_API_KEY" required:"true"`
	BaseURL string `envconfig:"NIGHTCRAWL_GOOGLE_MAPS_BASE_URL"`
}

// CheckoutConfig selects the hosted-checkout provider and the redirect
// targets shared by both providers.
type CheckoutConfig struct {
	Provider   string `envconfig:"NIGHTCRAWL_CHECKOUT_PROVIDER" default:"square"`
	SuccessURL string `envconfig:"NIGHTCRAWL_CHECKOUT_SUCCESS_URL" default:"https://nightcrawl-frontend.onrender.com/success"`
	CancelURL  string `envconfig:"NIGHTCRAWL_CHECKOUT_CANCEL_URL" default:"https://nightcrawl-frontend.onrender.com/review"`
}

func (c CheckoutConfig) ProviderName() string {
	return strings.TrimSpace(strings.ToLower(c.Provider))
}

func (c CheckoutConfig) validate() error {
	switch c.ProviderName() {
	case ProviderSquare, ProviderStripe:
		return nil
	default:
		return fmt.Errorf("checkout provider must be %q or %q", ProviderSquare, ProviderStripe)
	}
}

type SquareConfig struct {
	AccessToken string `envconfig:"NIGHTCRAWL_SQUARE_ACCESS_TOKEN"`
	LocationID  string `envconfig:"NIGHTCRAWL_SQUARE_LOCATION_ID"`
	Env         string `envconfig:"NIGHTCRAWL_SQUARE_ENVIRONMENT" default:"sandbox"`
}

// Environment returns the normalized Square environment (sandbox/production).
func (s SquareConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "sandbox"
	}
	return env
}

type StripeConfig struct {
	APIKey string `envconfig:"NIGHTCRAWL_STRIPE_API_KEY"`
	Env    string `envconfig:"NIGHTCRAWL_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"NIGHTCRAWL_CORS_ALLOWED_ORIGINS"`
}
