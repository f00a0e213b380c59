package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkoutsvc "github.com/nightcrawl/nightcrawl-backend/internal/checkout"
	"github.com/nightcrawl/nightcrawl-backend/internal/venues"
	"github.com/nightcrawl/nightcrawl-backend/pkg/config"
	pkgerrors "github.com/nightcrawl/nightcrawl-backend/pkg/errors"
	"github.com/nightcrawl/nightcrawl-backend/pkg/metrics"
)

type fixedVenueService struct {
	result []venues.Venue
	err    error
}

func (s fixedVenueService) Search(ctx context.Context, input venues.SearchInput) ([]venues.Venue, error) {
	return s.result, s.err
}

type fixedCheckoutService struct {
	url string
	err error
}

func (s fixedCheckoutService) Submit(ctx context.Context, input checkoutsvc.SubmitInput) (string, error) {
	return s.url, s.err
}

func testRouter(venueSvc venues.Service, checkoutSvc checkoutsvc.Service) http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev

	registry := prometheus.NewRegistry()
	return NewRouter(
		cfg,
		nil,
		venueSvc,
		checkoutSvc,
		metrics.NewHTTPMetrics(registry),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)
}

func TestRouterVenuesEndpoint(t *testing.T) {
	router := testRouter(
		fixedVenueService{result: []venues.Venue{{Name: "The Keg", PlaceID: "p1"}}},
		fixedCheckoutService{},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues?city=Montreal", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected a bare JSON array: %v", err)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("request id header missing")
	}
}

func TestRouterVenuesValidationStatus(t *testing.T) {
	router := testRouter(
		fixedVenueService{err: pkgerrors.New(pkgerrors.CodeValidation, "city required")},
		fixedCheckoutService{},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouterCheckoutEndpoint(t *testing.T) {
	router := testRouter(fixedVenueService{}, fixedCheckoutService{url: "https://pay.test/link"})

	body := `{"orderItems": [{"type": "hat", "quantity": 1}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["url"] != "https://pay.test/link" {
		t.Fatalf("unexpected body %v", payload)
	}
}

func TestRouterCheckoutRequiresPost(t *testing.T) {
	router := testRouter(fixedVenueService{}, fixedCheckoutService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkout", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRouterHealthAndMetrics(t *testing.T) {
	router := testRouter(fixedVenueService{}, fixedCheckoutService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health/live: expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Nightcrawl-Env") != config.AppEnvDev {
		t.Fatal("env header missing")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}
