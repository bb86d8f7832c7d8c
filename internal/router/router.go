package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/FACorreiaa/wanderspark-api/internal/api/itinerary"
	"github.com/FACorreiaa/wanderspark-api/internal/api/packing"
	"github.com/FACorreiaa/wanderspark-api/internal/api/suggestions"
)

// Config contains dependencies needed for the router setup
type Config struct {
	SuggestionsHandler *suggestions.HandlerImpl
	ItineraryHandler   *itinerary.HandlerImpl
	PackingHandler     *packing.HandlerImpl
	// RateLimit guards the routes that call the model.
	RateLimit      func(http.Handler) http.Handler
	MetricsHandler http.Handler
	AllowedOrigins []string
}

// SetupRouter builds the API routes. Server-wide middleware (request id,
// logging, recoverer) is applied by the caller.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	rateLimit := cfg.RateLimit
	if rateLimit == nil {
		rateLimit = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/suggestions/travel", cfg.SuggestionsHandler.GetTravelSuggestions)
		r.Get("/suggestions/stay", cfg.SuggestionsHandler.GetStaySuggestions)
		r.Post("/itineraries/export", cfg.ItineraryHandler.ExportItinerary)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/itineraries", cfg.ItineraryHandler.GenerateItinerary)
			r.Post("/itineraries/refine", cfg.ItineraryHandler.RefineItinerary)
			r.Post("/packing-lists", cfg.PackingHandler.GeneratePackingList)
		})
	})

	return r
}
