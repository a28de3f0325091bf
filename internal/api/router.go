package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/randytsao24/tripmate/internal/api/handlers"
	"github.com/randytsao24/tripmate/internal/config"
)

// Services are the domain components the router exposes
type Services struct {
	Transport   handlers.TransportSearcher
	Planner     handlers.SchedulePlanner
	Directories []handlers.CityDirectory
}

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(cfg *config.Config, svc Services) http.Handler {
	r := chi.NewRouter()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(svc.Directories...)
	rootHandler := handlers.NewRootHandler()
	locationHandler := handlers.NewLocationHandler(svc.Directories...)
	transportHandler := handlers.NewTransportHandler(svc.Transport)
	scheduleHandler := handlers.NewScheduleHandler(svc.Planner)

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	// Logging wraps Recovery so recovered panics are still logged and counted
	r.Use(Logging)
	r.Use(Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(rootHandler.NotFound)
	r.MethodNotAllowed(rootHandler.MethodNotAllowed)

	// Core routes
	r.Get("/", rootHandler.Index)
	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Window > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimit.Requests, cfg.RateLimit.Window))
		}
		r.Use(Timeout(cfg.Server.RequestTimeout))

		r.Get("/", rootHandler.Index)
		r.Get("/locations/{mode}", locationHandler.GetCities)

		// Transport routes
		r.Get("/transport/search", transportHandler.SearchPage)
		r.Post("/transport/search", transportHandler.Search)

		// Schedule routes
		r.Post("/schedule/auto-generate", scheduleHandler.AutoGenerate)
		r.Post("/schedule/generate-multi", scheduleHandler.GenerateMulti)
		r.Get("/schedule/places/recommend", scheduleHandler.RecommendPlaces)
	})

	return r
}
