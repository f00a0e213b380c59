package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/nightcrawl/nightcrawl-backend/pkg/errors"
)

const (
	testEnv = "test"
	liveEnv = "live"

	defaultBaseURL             = "https://api.stripe.com"
	checkoutSessionsPath       = "/v1/checkout/sessions"
	errorBodyReadLimit   int64 = 4096
)

var (
	errAPIKeyRequired   = errors.New("stripe api key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// Client is a minimal Stripe REST client for hosted checkout sessions.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	environment string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the Stripe API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient validates the configured key against the environment and builds
// the client.
func NewClient(apiKey, environment string, opts ...Option) (*Client, error) {
	env, err := normalizeEnv(environment)
	if err != nil {
		return nil, err
	}

	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}
	if err := validateAPIKey(env, trimmedKey); err != nil {
		return nil, err
	}

	client := &Client{
		apiKey:      trimmedKey,
		environment: env,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// Environment reports the normalized Stripe environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// SessionLineItem is one priced entry on a checkout session.
type SessionLineItem struct {
	Name        string
	Quantity    int
	AmountCents int64
	Currency    string
}

// CheckoutSessionParams describes a hosted checkout session request.
type CheckoutSessionParams struct {
	SuccessURL       string
	CancelURL        string
	CustomerEmail    string
	AllowedCountries []string
	Metadata         map[string]string
	LineItems        []SessionLineItem
}

// CreateCheckoutSession creates a payment-mode checkout session and returns
// the hosted payment page URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "stripe client not configured")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if trimmed := strings.TrimSpace(params.CustomerEmail); trimmed != "" {
		form.Set("customer_email", trimmed)
	}
	for i, country := range params.AllowedCountries {
		form.Set(fmt.Sprintf("shipping_address_collection[allowed_countries][%d]", i), country)
	}
	for i, item := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", strings.ToLower(item.Currency))
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.AmountCents, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
	}
	for key, value := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + checkoutSessionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeSubmission, err, "build checkout session request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeSubmission, err, "execute checkout session request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return "", pkgerrors.New(pkgerrors.CodeSubmission, extractErrorMessage(resp.StatusCode, body))
	}

	var session struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeSubmission, err, "decode checkout session response")
	}
	if session.URL == "" {
		return "", pkgerrors.New(pkgerrors.CodeSubmission, "stripe returned no checkout url")
	}
	return session.URL, nil
}

// extractErrorMessage relays Stripe's structured error message when present.
func extractErrorMessage(status int, body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return fmt.Sprintf("stripe checkout error (status %d)", status)
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a test secret key (sk_test/rk_test)", testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a live secret key (sk_live/rk_live)", liveEnv)
	default:
		return errInvalidStripeEnv
	}
}
