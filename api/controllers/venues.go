package controllers

import (
	"net/http"

	"github.com/nightcrawl/nightcrawl-backend/api/responses"
	"github.com/nightcrawl/nightcrawl-backend/api/validators"
	"github.com/nightcrawl/nightcrawl-backend/internal/venues"
	pkgerrors "github.com/nightcrawl/nightcrawl-backend/pkg/errors"
	"github.com/nightcrawl/nightcrawl-backend/pkg/logger"
)

// SearchVenues handles GET /venues?city=&category=&limit=. The date and
// time parameters the frontend sends alongside are accepted and ignored;
// they only matter at checkout time.
func SearchVenues(svc venues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "venue service unavailable"))
			return
		}

		result, err := svc.Search(r.Context(), venues.SearchInput{
			City:     r.URL.Query().Get("city"),
			Category: venues.ParseCategory(r.URL.Query().Get("category")),
			Limit:    validators.ParseOptionalInt(r, "limit"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, result)
	}
}
