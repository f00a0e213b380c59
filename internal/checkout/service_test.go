package checkout

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nightcrawl/nightcrawl-backend/internal/venues"
	pkgerrors "github.com/nightcrawl/nightcrawl-backend/pkg/errors"
)

type stubGateway struct {
	url string
	err error

	calls   int
	lastReq Request
}

func (g *stubGateway) CreatePaymentLink(ctx context.Context, req Request) (string, error) {
	g.calls++
	g.lastReq = req
	return g.url, g.err
}

func submitInput() SubmitInput {
	return SubmitInput{
		OrderItems: []OrderItem{
			{Type: "tshirt", Color: "#ff0000", Size: "M", Quantity: 2},
			{Type: "hat", Color: "#232323", Size: "One Size", Quantity: 1},
		},
		User: UserInfo{
			PartyName: "Bachelor Party",
			UserName:  "Alex",
			Email:     "alex@example.com",
			Phone:     "+1 514 555 0100",
			Address:   "1 Rue Demo, Montreal",
		},
		CrawlInfo: CrawlInfo{
			City:         "Montreal",
			Date:         "2026-09-12",
			StartTime:    "20:00",
			EndTime:      "02:00",
			TypeOfPeople: "singles",
			NumLocations: "3",
		},
		Venues: []venues.Venue{
			{Name: "The Keg", PlaceID: "p1"},
			{Name: "Bistro Demo", PlaceID: "p2"},
		},
	}
}

func TestSubmitRequiresOrderItems(t *testing.T) {
	gw := &stubGateway{}
	svc, err := NewService(gw, "https://front.test/success", "https://front.test/cancel", nil)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), SubmitInput{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Zero(t, gw.calls)
}

func TestSubmitAssemblesRequest(t *testing.T) {
	gw := &stubGateway{url: "https://pay.test/link"}
	svc, err := NewService(gw, "https://front.test/success", "https://front.test/cancel", nil)
	require.NoError(t, err)

	url, err := svc.Submit(context.Background(), submitInput())
	require.NoError(t, err)
	require.Equal(t, "https://pay.test/link", url)
	require.Equal(t, 1, gw.calls)

	req := gw.lastReq
	require.Len(t, req.LineItems, 2)

	require.Equal(t, "T-Shirt - The Keg", req.LineItems[0].Description)
	require.Equal(t, 2, req.LineItems[0].Quantity)
	require.Equal(t, int64(2499), req.LineItems[0].UnitPriceCents)
	require.Equal(t, "Color: Red, Size: M", req.LineItems[0].Note)

	require.Equal(t, "Hat - The Keg", req.LineItems[1].Description)
	require.Equal(t, "Color: Black, Size: One Size", req.LineItems[1].Note)

	require.Equal(t, "CAD", req.Currency)
	require.Equal(t, "alex@example.com", req.CustomerEmail)
	require.Equal(t, []string{"CA"}, req.ShippingCountries)
	require.Equal(t, "https://front.test/success", req.SuccessURL)
	require.Equal(t, "https://front.test/cancel", req.CancelURL)
}

func TestSubmitMetadataCarriesItinerary(t *testing.T) {
	gw := &stubGateway{url: "https://pay.test/link"}
	svc, err := NewService(gw, "https://front.test/success", "https://front.test/cancel", nil)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), submitInput())
	require.NoError(t, err)

	meta := gw.lastReq.Metadata
	require.Equal(t, "Montreal", meta["city"])
	require.Equal(t, "2026-09-12", meta["date"])
	require.Equal(t, "20:00", meta["start_time"])
	require.Equal(t, "02:00", meta["end_time"])
	require.Equal(t, "singles", meta["type_of_people"])
	require.Equal(t, "3", meta["num_locations"])
	require.Equal(t, "2", meta["venue_count"])
	require.Equal(t, "The Keg", meta["first_venue"])
	require.Equal(t, "Bachelor Party", meta["party_name"])
	require.Equal(t, "Alex", meta["user_name"])
	require.Equal(t, "+1 514 555 0100", meta["phone"])
	require.Equal(t, "1 Rue Demo, Montreal", meta["address"])
}

func TestSubmitFallbackEventLabel(t *testing.T) {
	gw := &stubGateway{url: "https://pay.test/link"}
	svc, err := NewService(gw, "https://front.test/success", "https://front.test/cancel", nil)
	require.NoError(t, err)

	input := submitInput()
	input.Venues = nil
	_, err = svc.Submit(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "T-Shirt - Pub Crawl", gw.lastReq.LineItems[0].Description)
	require.Equal(t, "Pub Crawl", gw.lastReq.Metadata["first_venue"])

	input.Venues = []venues.Venue{{Name: "   "}}
	_, err = svc.Submit(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "T-Shirt - Pub Crawl", gw.lastReq.LineItems[0].Description)
}

func TestSubmitGatewayFailureRelayed(t *testing.T) {
	gwErr := pkgerrors.New(pkgerrors.CodeSubmission, "Invalid location_id provided")
	gw := &stubGateway{err: gwErr}
	svc, err := NewService(gw, "https://front.test/success", "https://front.test/cancel", nil)
	require.NoError(t, err)

	url, err := svc.Submit(context.Background(), submitInput())
	require.Error(t, err)
	require.Empty(t, url)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeSubmission, typed.Code())
}

func TestIdempotencyKeyFreshPerSubmission(t *testing.T) {
	gw := &stubGateway{url: "https://pay.test/link"}
	svc, err := NewService(gw, "https://front.test/success", "https://front.test/cancel", nil)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), submitInput())
	require.NoError(t, err)
	first := gw.lastReq.IdempotencyKey

	_, err = svc.Submit(context.Background(), submitInput())
	require.NoError(t, err)
	second := gw.lastReq.IdempotencyKey

	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)

	parts := strings.SplitN(first, "-", 2)
	require.Len(t, parts, 2)
	_, err = strconv.ParseInt(parts[0], 10, 64)
	require.NoError(t, err, "timestamp prefix should be numeric")
	require.Len(t, parts[1], 8)
}

func TestProductAndColorFallbacks(t *testing.T) {
	require.Equal(t, "T-Shirt", productLabel(" TShirt "))
	require.Equal(t, "Tank Top", productLabel("tanktop"))
	require.Equal(t, "Hat", productLabel("hoodie"))
	require.Equal(t, "Hat", productLabel(""))

	require.Equal(t, "White", colorName("#FFF"))
	require.Equal(t, "Red", colorName("#ff0000"))
	require.Equal(t, "Black", colorName("#00ff00"))
	require.Equal(t, "Black", colorName(""))
}
