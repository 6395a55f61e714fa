package routes

import (
	"net/http"
	"time"

	"aerosense/estimator/internal/api"
	"aerosense/estimator/internal/logging"
	"aerosense/estimator/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(deps *api.Dependencies, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()
	cfg := deps.Config.HTTP

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(deps.Checks, deps.Services.Locations.AirportCount(), upSince))
	r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))

	handlers := api.NewHandlers(deps)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.Middleware)
		if cfg.RequestTimeout > 0 {
			v1.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		}

		v1.Get("/locations/resolve", handlers.ResolveLocation())
		v1.Get("/airports/suggest", handlers.SuggestAirports())
		v1.Get("/fares/calendar", handlers.FareCalendar())

		v1.Route("/flights", func(flights chi.Router) {
			flights.With(middleware.InFlightMiddleware(deps.Metrics, "search")).
				Post("/search", handlers.SearchFlights())
			flights.Get("/{flight_id}/seats", handlers.SeatMap())
		})
	})

	return r
}
