package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nightcrawl/nightcrawl-backend/internal/venues"
	pkgerrors "github.com/nightcrawl/nightcrawl-backend/pkg/errors"
	"github.com/nightcrawl/nightcrawl-backend/pkg/logger"
)

const (
	// unitPriceCents is the flat merchandise price in minor units,
	// regardless of product type, color, or size.
	unitPriceCents int64 = 2499

	currency = "CAD"

	// fallbackEventLabel names line items when no venue context exists.
	fallbackEventLabel = "Pub Crawl"
)

// productLabels maps product types to the human-readable labels embedded
// in line-item descriptions.
var productLabels = map[string]string{
	"tshirt":  "T-Shirt",
	"tanktop": "Tank Top",
	"hat":     "Hat",
}

// colorNames is a closed palette; unknown codes default to Black.
var colorNames = map[string]string{
	"#232323": "Black",
	"#ff0000": "Red",
	"#fff":    "White",
}

// OrderItem is one merchandise entry from the client-held cart.
type OrderItem struct {
	Type     string
	Color    string
	Size     string
	Quantity int
	Image    string
}

// UserInfo carries the buyer's contact and shipping fields, passed through
// verbatim to the provider's records.
type UserInfo struct {
	PartyName string
	UserName  string
	Email     string
	Phone     string
	Address   string
}

// CrawlInfo is the itinerary context attached to a submission.
type CrawlInfo struct {
	City         string
	Date         string
	StartTime    string
	EndTime      string
	TypeOfPeople string
	NumLocations string
}

// SubmitInput bundles everything a checkout submission carries.
type SubmitInput struct {
	OrderItems []OrderItem
	User       UserInfo
	CrawlInfo  CrawlInfo
	Venues     []venues.Venue
}

// LineItem is one priced entry in a checkout request.
type LineItem struct {
	Description    string
	Quantity       int
	UnitPriceCents int64
	Note           string
}

// Request is the provider-facing checkout payload.
type Request struct {
	IdempotencyKey    string
	LineItems         []LineItem
	Currency          string
	CustomerEmail     string
	ShippingCountries []string
	SuccessURL        string
	CancelURL         string
	Metadata          map[string]string
}

// Gateway creates a hosted checkout session and returns the redirect URL.
type Gateway interface {
	CreatePaymentLink(ctx context.Context, req Request) (string, error)
}

// Service assembles checkout requests and relays them to the gateway.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (string, error)
}

type service struct {
	gateway    Gateway
	successURL string
	cancelURL  string
	logger     *logger.Logger
}

// NewService builds the checkout service.
func NewService(gateway Gateway, successURL, cancelURL string, logg *logger.Logger) (Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("checkout gateway required")
	}
	return &service{
		gateway:    gateway,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logg,
	}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (string, error) {
	if len(input.OrderItems) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order items required")
	}

	req := s.assemble(input)

	if s.logger != nil {
		ctx = s.logger.WithFields(ctx, map[string]any{
			"line_item_count": len(req.LineItems),
			"city":            input.CrawlInfo.City,
		})
		s.logger.Info(ctx, "submitting checkout")
	}

	url, err := s.gateway.CreatePaymentLink(ctx, req)
	if err != nil {
		if s.logger != nil {
			s.logger.Error(ctx, "checkout submission failed", err)
		}
		return "", err
	}

	if s.logger != nil {
		s.logger.Info(ctx, "checkout link created")
	}
	return url, nil
}

// assemble is deterministic given identical input, except for the
// idempotency token, which is fresh per submission.
func (s *service) assemble(input SubmitInput) Request {
	eventLabel := fallbackEventLabel
	if len(input.Venues) > 0 && strings.TrimSpace(input.Venues[0].Name) != "" {
		eventLabel = input.Venues[0].Name
	}

	lineItems := make([]LineItem, 0, len(input.OrderItems))
	for _, item := range input.OrderItems {
		lineItems = append(lineItems, LineItem{
			Description:    fmt.Sprintf("%s - %s", productLabel(item.Type), eventLabel),
			Quantity:       item.Quantity,
			UnitPriceCents: unitPriceCents,
			Note:           fmt.Sprintf("Color: %s, Size: %s", colorName(item.Color), item.Size),
		})
	}

	return Request{
		IdempotencyKey:    newIdempotencyKey(),
		LineItems:         lineItems,
		Currency:          currency,
		CustomerEmail:     input.User.Email,
		ShippingCountries: []string{"CA"},
		SuccessURL:        s.successURL,
		CancelURL:         s.cancelURL,
		Metadata:          buildMetadata(input, eventLabel),
	}
}

// buildMetadata carries the full itinerary context and buyer contact for
// the provider's record-keeping; nothing here is validated locally.
func buildMetadata(input SubmitInput, eventLabel string) map[string]string {
	return map[string]string{
		"city":           input.CrawlInfo.City,
		"date":           input.CrawlInfo.Date,
		"start_time":     input.CrawlInfo.StartTime,
		"end_time":       input.CrawlInfo.EndTime,
		"type_of_people": input.CrawlInfo.TypeOfPeople,
		"num_locations":  input.CrawlInfo.NumLocations,
		"venue_count":    fmt.Sprintf("%d", len(input.Venues)),
		"first_venue":    eventLabel,
		"party_name":     input.User.PartyName,
		"user_name":      input.User.UserName,
		"phone":          input.User.Phone,
		"address":        input.User.Address,
	}
}

func productLabel(productType string) string {
	if label, ok := productLabels[strings.ToLower(strings.TrimSpace(productType))]; ok {
		return label
	}
	return productLabels["hat"]
}

func colorName(code string) string {
	if name, ok := colorNames[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return "Black"
}

// newIdempotencyKey generates a provider-facing token: millisecond
// timestamp plus a random suffix. It is never tracked or reconciled
// locally.
func newIdempotencyKey() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
