package controllers

import (
	"fmt"
	"net/http"

	"github.com/nightcrawl/nightcrawl-backend/api/responses"
	"github.com/nightcrawl/nightcrawl-backend/api/validators"
	checkoutsvc "github.com/nightcrawl/nightcrawl-backend/internal/checkout"
	"github.com/nightcrawl/nightcrawl-backend/internal/venues"
	pkgerrors "github.com/nightcrawl/nightcrawl-backend/pkg/errors"
	"github.com/nightcrawl/nightcrawl-backend/pkg/logger"
)

// CreateCheckout handles POST /checkout: it relays the submitted cart,
// buyer, and itinerary context to the payment provider and returns the
// hosted checkout URL.
func CreateCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		url, err := svc.Submit(r.Context(), payload.toSubmitInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, checkoutResponse{URL: url})
	}
}

type checkoutRequest struct {
	OrderItems []orderItemPayload `json:"orderItems" validate:"required,min=1,dive"`
	User       userPayload        `json:"user"`
	CrawlInfo  crawlInfoPayload   `json:"crawlInfo"`
	Venues     []venues.Venue     `json:"venues"`
}

// orderItemPayload mirrors the client cart entry. The id and image fields
// are client-side bookkeeping and ride along unused.
type orderItemPayload struct {
	ID       any    `json:"id,omitempty"`
	Type     string `json:"type" validate:"required,oneof=tshirt tanktop hat"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Image    string `json:"image,omitempty"`
}

type userPayload struct {
	PartyName string `json:"partyName"`
	UserName  string `json:"userName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type crawlInfoPayload struct {
	City         string `json:"city"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	TypeOfPeople string `json:"typeOfPeople"`
	NumLocations any    `json:"numLocations"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

func (p checkoutRequest) toSubmitInput() checkoutsvc.SubmitInput {
	items := make([]checkoutsvc.OrderItem, 0, len(p.OrderItems))
	for _, item := range p.OrderItems {
		items = append(items, checkoutsvc.OrderItem{
			Type:     item.Type,
			Color:    item.Color,
			Size:     item.Size,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}

	numLocations := ""
	if p.CrawlInfo.NumLocations != nil {
		numLocations = fmt.Sprint(p.CrawlInfo.NumLocations)
	}

	return checkoutsvc.SubmitInput{
		OrderItems: items,
		User: checkoutsvc.UserInfo{
			PartyName: p.User.PartyName,
			UserName:  p.User.UserName,
			Email:     p.User.Email,
			Phone:     p.User.Phone,
			Address:   p.User.Address,
		},
		CrawlInfo: checkoutsvc.CrawlInfo{
			City:         p.CrawlInfo.City,
			Date:         p.CrawlInfo.Date,
			StartTime:    p.CrawlInfo.StartTime,
			EndTime:      p.CrawlInfo.EndTime,
			TypeOfPeople: p.CrawlInfo.TypeOfPeople,
			NumLocations: numLocations,
		},
		Venues: p.Venues,
	}
}
