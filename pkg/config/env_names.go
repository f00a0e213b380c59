package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "NIGHTCRAWL"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	ProviderSquare = "square"
	ProviderStripe = "stripe"
)

// Environment variable names, kept in one place so tests and deploy docs
// reference the same strings.
const (
	EnvAppEnv             = "NIGHTCRAWL_APP_ENV"
	EnvPort               = "NIGHTCRAWL_APP_PORT"
	EnvLogLevel           = "NIGHTCRAWL_LOG_LEVEL"
	EnvMapsAPIKey         = "NIGHTCRAWL_GOOGLE_MAPS_API_KEY"
	EnvMapsBaseURL        = "NIGHTCRAWL_GOOGLE_MAPS_BASE_URL"
	EnvCheckoutProvider   = "NIGHTCRAWL_CHECKOUT_PROVIDER"
	EnvCheckoutSuccessURL = "NIGHTCRAWL_CHECKOUT_SUCCESS_URL"
	EnvCheckoutCancelURL  = "NIGHTCRAWL_CHECKOUT_CANCEL_URL"
	EnvSquareAccessToken  = "NIGHTCRAWL_SQUARE_ACCESS_TOKEN"
	EnvSquareLocationID   = "NIGHTCRAWL_SQUARE_LOCATION_ID"
	EnvSquareEnvironment  = "NIGHTCRAWL_SQUARE_ENVIRONMENT"
	EnvStripeAPIKey       = "NIGHTCRAWL_STRIPE_API_KEY"
	EnvStripeEnv          = "NIGHTCRAWL_STRIPE_ENV"
	EnvCORSOrigins        = "NIGHTCRAWL_CORS_ALLOWED_ORIGINS"
)
