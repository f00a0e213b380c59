package checkout

import (
	"context"
	"fmt"

	"github.com/nightcrawl/nightcrawl-backend/pkg/config"
	"github.com/nightcrawl/nightcrawl-backend/pkg/square"
	"github.com/nightcrawl/nightcrawl-backend/pkg/stripe"
)

// The two provider clients expose the same capability (create a hosted
// checkout session); the adapters below collapse them behind Gateway so
// the provider is a configuration choice, not a code path.

type squarePaymentLinker interface {
	CreatePaymentLink(ctx context.Context, params square.PaymentLinkParams) (string, error)
}

type stripeSessionCreator interface {
	CreateCheckoutSession(ctx context.Context, params stripe.CheckoutSessionParams) (string, error)
}

// NewGateway selects the configured provider adapter.
func NewGateway(provider string, squareClient *square.Client, stripeClient *stripe.Client) (Gateway, error) {
	switch provider {
	case config.ProviderSquare:
		if squareClient == nil {
			return nil, fmt.Errorf("square client required for provider %q", provider)
		}
		return &squareGateway{client: squareClient}, nil
	case config.ProviderStripe:
		if stripeClient == nil {
			return nil, fmt.Errorf("stripe client required for provider %q", provider)
		}
		return &stripeGateway{client: stripeClient}, nil
	default:
		return nil, fmt.Errorf("unknown checkout provider %q", provider)
	}
}

type squareGateway struct {
	client squarePaymentLinker
}

func (g *squareGateway) CreatePaymentLink(ctx context.Context, req Request) (string, error) {
	lineItems := make([]square.PaymentLinkLineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		lineItems = append(lineItems, square.PaymentLinkLineItem{
			Name:        item.Description,
			Quantity:    item.Quantity,
			AmountCents: item.UnitPriceCents,
			Currency:    req.Currency,
			Note:        item.Note,
		})
	}
	return g.client.CreatePaymentLink(ctx, square.PaymentLinkParams{
		IdempotencyKey: req.IdempotencyKey,
		RedirectURL:    req.SuccessURL,
		BuyerEmail:     req.CustomerEmail,
		LineItems:      lineItems,
	})
}

type stripeGateway struct {
	client stripeSessionCreator
}

func (g *stripeGateway) CreatePaymentLink(ctx context.Context, req Request) (string, error) {
	lineItems := make([]stripe.SessionLineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		name := item.Description
		if item.Note != "" {
			name = fmt.Sprintf("%s (%s)", item.Description, item.Note)
		}
		lineItems = append(lineItems, stripe.SessionLineItem{
			Name:        name,
			Quantity:    item.Quantity,
			AmountCents: item.UnitPriceCents,
			Currency:    req.Currency,
		})
	}
	return g.client.CreateCheckoutSession(ctx, stripe.CheckoutSessionParams{
		SuccessURL:       req.SuccessURL,
		CancelURL:        req.CancelURL,
		CustomerEmail:    req.CustomerEmail,
		AllowedCountries: req.ShippingCountries,
		Metadata:         req.Metadata,
		LineItems:        lineItems,
	})
}
