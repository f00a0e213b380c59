package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/nightcrawl/nightcrawl-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://maps.googleapis.com"
	geocodePath                = "/maps/api/geocode/json"
	nearbySearchPath           = "/maps/api/place/nearbysearch/json"
	statusOK                   = "OK"
	statusZeroResults          = "ZERO_RESULTS"
	errorBodyReadLimit   int64 = 1024
)

var errAPIKeyRequired = errors.New("google maps api key is required")

// Client wraps the Google Maps geocoding and Places nearby-search web services.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
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

// WithBaseURL overrides the configured Maps base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Google Maps client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
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

// LatLng is the latitude/longitude pair returned by Google.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Photo carries the reference token used to fetch a place photo.
type Photo struct {
	PhotoReference string `json:"photo_reference"`
}

// Place mirrors the fields of a nearby-search result consumed downstream.
type Place struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Geometry struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           float64  `json:"rating"`
	Types            []string `json:"types"`
	Icon             string   `json:"icon"`
	Photos           []Photo  `json:"photos"`
}

// Geocode resolves a free-text address to a coordinate, taking the first
// result's location. Non-OK provider statuses and empty result sets are
// resolution failures; nothing is retried.
func (c *Client) Geocode(ctx context.Context, address string) (LatLng, error) {
	if c == nil {
		return LatLng{}, pkgerrors.New(pkgerrors.CodeDependency, "google maps client not configured")
	}
	if strings.TrimSpace(address) == "" {
		return LatLng{}, pkgerrors.New(pkgerrors.CodeValidation, "geocode address is required")
	}

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", c.apiKey)

	var apiResp struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Results      []struct {
			Geometry struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, geocodePath, query, &apiResp); err != nil {
		return LatLng{}, pkgerrors.Wrap(pkgerrors.CodeResolution, err, "geocoding failed")
	}

	if apiResp.Status != statusOK || len(apiResp.Results) == 0 {
		detail := apiResp.Status
		if apiResp.ErrorMessage != "" {
			detail = fmt.Sprintf("%s: %s", apiResp.Status, apiResp.ErrorMessage)
		}
		return LatLng{}, pkgerrors.New(pkgerrors.CodeResolution, fmt.Sprintf("geocoding failed (%s)", detail))
	}

	return apiResp.Results[0].Geometry.Location, nil
}

// NearbySearchRequest describes one Places nearby-search query.
type NearbySearchRequest struct {
	Location LatLng
	Radius   int
	Type     string
}

// NearbySearch returns places around the given coordinate in provider order.
// A ZERO_RESULTS status is an empty result, not an error.
func (c *Client) NearbySearch(ctx context.Context, req NearbySearchRequest) ([]Place, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "google maps client not configured")
	}

	query := url.Values{}
	query.Set("location", fmt.Sprintf("%v,%v", req.Location.Lat, req.Location.Lng))
	query.Set("radius", fmt.Sprintf("%d", req.Radius))
	if req.Type != "" {
		query.Set("type", req.Type)
	}
	query.Set("key", c.apiKey)

	var apiResp struct {
		Status       string  `json:"status"`
		ErrorMessage string  `json:"error_message"`
		Results      []Place `json:"results"`
	}
	if err := c.getJSON(ctx, nearbySearchPath, query, &apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDiscovery, err, "nearby search failed")
	}

	if apiResp.Status != statusOK && apiResp.Status != statusZeroResults {
		detail := apiResp.Status
		if apiResp.ErrorMessage != "" {
			detail = fmt.Sprintf("%s: %s", apiResp.Status, apiResp.ErrorMessage)
		}
		return nil, pkgerrors.New(pkgerrors.CodeDiscovery, fmt.Sprintf("nearby search failed (%s)", detail))
	}

	return apiResp.Results, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	endpoint := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.baseURL, "/"), path, query.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
