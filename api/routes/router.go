package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nightcrawl/nightcrawl-backend/api/controllers"
	"github.com/nightcrawl/nightcrawl-backend/api/middleware"
	checkoutsvc "github.com/nightcrawl/nightcrawl-backend/internal/checkout"
	"github.com/nightcrawl/nightcrawl-backend/internal/venues"
	"github.com/nightcrawl/nightcrawl-backend/pkg/config"
	"github.com/nightcrawl/nightcrawl-backend/pkg/logger"
	"github.com/nightcrawl/nightcrawl-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	venueService venues.Service,
	checkoutService checkoutsvc.Service,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Get("/venues", controllers.SearchVenues(venueService, logg))
	r.Post("/checkout", controllers.CreateCheckout(checkoutService, logg))

	return r
}
