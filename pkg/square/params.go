package square

import (
	"fmt"
	"strings"

	sq "github.com/square/square-go-sdk"
	sqcheckout "github.com/square/square-go-sdk/checkout"
)

// PaymentLinkLineItem is one priced entry on a hosted checkout link.
type PaymentLinkLineItem struct {
	Name        string
	Quantity    int
	AmountCents int64
	Currency    string
	Note        string
}

// PaymentLinkParams contains the fields required to create a Square payment link.
type PaymentLinkParams struct {
	IdempotencyKey string
	RedirectURL    string
	BuyerEmail     string
	LineItems      []PaymentLinkLineItem
}

func (p PaymentLinkParams) toSquareRequest(locationID string) *sqcheckout.CreatePaymentLinkRequest {
	lineItems := make([]*sq.OrderLineItem, 0, len(p.LineItems))
	for _, item := range p.LineItems {
		line := &sq.OrderLineItem{
			Quantity:       fmt.Sprintf("%d", item.Quantity),
			Name:           ptrString(item.Name),
			BasePriceMoney: moneyPtr(item.AmountCents, item.Currency),
		}
		if trimmed := strings.TrimSpace(item.Note); trimmed != "" {
			line.Note = ptrString(trimmed)
		}
		lineItems = append(lineItems, line)
	}

	req := &sqcheckout.CreatePaymentLinkRequest{
		IdempotencyKey: ptrString(p.IdempotencyKey),
		Order: &sq.Order{
			LocationID: locationID,
			LineItems:  lineItems,
		},
	}

	options := &sq.CheckoutOptions{
		AskForShippingAddress: boolPtr(true),
	}
	if trimmed := strings.TrimSpace(p.RedirectURL); trimmed != "" {
		options.RedirectURL = ptrString(trimmed)
	}
	req.CheckoutOptions = options

	if trimmed := strings.TrimSpace(p.BuyerEmail); trimmed != "" {
		req.PrePopulatedData = &sq.PrePopulatedData{
			BuyerEmail: ptrString(trimmed),
		}
	}

	return req
}

func ptrString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}

func int64Ptr(value int64) *int64 {
	return &value
}

func currencyPtr(code string) *sq.Currency {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		trimmed = "CAD"
	}
	c := sq.Currency(trimmed)
	return &c
}

func moneyPtr(amount int64, currency string) *sq.Money {
	if amount == 0 {
		return nil
	}
	return &sq.Money{
		Amount:   int64Ptr(amount),
		Currency: currencyPtr(currency),
	}
}
