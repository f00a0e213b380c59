package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	checkoutsvc "github.com/nightcrawl/nightcrawl-backend/internal/checkout"
	pkgerrors "github.com/nightcrawl/nightcrawl-backend/pkg/errors"
)

type stubCheckoutService struct {
	url string
	err error

	calls     int
	lastInput checkoutsvc.SubmitInput
}

func (s *stubCheckoutService) Submit(ctx context.Context, input checkoutsvc.SubmitInput) (string, error) {
	s.calls++
	s.lastInput = input
	return s.url, s.err
}

const checkoutBody = `{
	"orderItems": [
		{"id": 17, "type": "tshirt", "color": "#ff0000", "size": "M", "quantity": 2, "image": "/shirts/red.png"}
	],
	"user": {"partyName": "Bachelor Party", "userName": "Alex", "email": "alex@example.com", "phone": "+1 514 555 0100", "address": "1 Rue Demo"},
	"crawlInfo": {"city": "Montreal", "date": "2026-09-12", "startTime": "20:00", "endTime": "02:00", "typeOfPeople": "singles", "numLocations": 3},
	"venues": [{"name": "The Keg", "lat": 45.5, "lng": -73.6, "place_id": "p1"}]
}`

func TestCreateCheckoutOK(t *testing.T) {
	svc := &stubCheckoutService{url: "https://pay.test/link"}

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(checkoutBody))
	rec := httptest.NewRecorder()
	CreateCheckout(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["url"] != "https://pay.test/link" {
		t.Fatalf("unexpected body %v", body)
	}

	input := svc.lastInput
	if len(input.OrderItems) != 1 || input.OrderItems[0].Type != "tshirt" || input.OrderItems[0].Quantity != 2 {
		t.Fatalf("order items not mapped: %+v", input.OrderItems)
	}
	if input.User.Email != "alex@example.com" {
		t.Fatalf("user not mapped: %+v", input.User)
	}
	// numLocations arrives as a JSON number and is coerced to a string.
	if input.CrawlInfo.NumLocations != "3" {
		t.Fatalf("numLocations not coerced: %q", input.CrawlInfo.NumLocations)
	}
	if len(input.Venues) != 1 || input.Venues[0].Name != "The Keg" {
		t.Fatalf("venues not mapped: %+v", input.Venues)
	}
}

func TestCreateCheckoutMalformedJSON(t *testing.T) {
	svc := &stubCheckoutService{}

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	CreateCheckout(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.calls != 0 {
		t.Fatalf("service should not be called on decode failure")
	}
}

func TestCreateCheckoutEmptyOrderItems(t *testing.T) {
	svc := &stubCheckoutService{}

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"orderItems": []}`))
	rec := httptest.NewRecorder()
	CreateCheckout(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !strings.Contains(body["error"], "orderItems") {
		t.Fatalf("field name missing from message: %v", body)
	}
	if svc.calls != 0 {
		t.Fatalf("service should not be called on validation failure")
	}
}

func TestCreateCheckoutUnknownProductType(t *testing.T) {
	svc := &stubCheckoutService{}

	body := `{"orderItems": [{"type": "hoodie", "quantity": 1}]}`
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateCheckout(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCheckoutProviderFailure(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeSubmission, "Invalid location_id provided; Insufficient permissions")}

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(checkoutBody))
	rec := httptest.NewRecorder()
	CreateCheckout(svc, nil)(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if payload["error"] != "Invalid location_id provided; Insufficient permissions" {
		t.Fatalf("provider detail not relayed: %v", payload)
	}
}

func TestCreateCheckoutExtraFieldsTolerated(t *testing.T) {
	svc := &stubCheckoutService{url: "https://pay.test/link"}

	body := `{"orderItems": [{"type": "hat", "quantity": 1, "sku": "X-1"}], "theme": "dark"}`
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateCheckout(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unknown fields should be ignored, got %d: %s", rec.Code, rec.Body.String())
	}
}
