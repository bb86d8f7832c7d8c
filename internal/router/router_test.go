package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	generativeAI "github.com/FACorreiaa/wanderspark-api/internal/api/generative_ai"
	"github.com/FACorreiaa/wanderspark-api/internal/api/itinerary"
	"github.com/FACorreiaa/wanderspark-api/internal/api/packing"
	"github.com/FACorreiaa/wanderspark-api/internal/api/suggestions"
)

type failingGenerator struct{}

func (failingGenerator) Run(context.Context, generativeAI.PromptSpec, []generativeAI.Tool, any) error {
	return errors.New("model unavailable")
}

func testRouter(rateLimit func(http.Handler) http.Handler) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := suggestions.NewDummyProvider(logger)
	svc := suggestions.NewServiceImpl(provider, provider, suggestions.NewMemoryCache(time.Minute, time.Minute), logger)

	return SetupRouter(&Config{
		SuggestionsHandler: suggestions.NewHandlerImpl(svc, logger),
		ItineraryHandler:   itinerary.NewHandlerImpl(itinerary.NewServiceImpl(failingGenerator{}, svc, logger), logger),
		PackingHandler:     packing.NewHandlerImpl(packing.NewServiceImpl(failingGenerator{}, logger), logger),
		RateLimit:          rateLimit,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
	})
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rr
}

func TestSetupRouter(t *testing.T) {
	h := testRouter(nil)

	rr := serve(h, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())

	assert.Equal(t, "# metrics", serve(h, http.MethodGet, "/metrics", "").Body.String())

	rr = serve(h, http.MethodGet, "/api/v1/suggestions/travel?source=Delhi&destination=Goa", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "IndiGo")

	rr = serve(h, http.MethodPost, "/api/v1/packing-lists",
		`{"destination":"Manali","duration":5,"climate":"Cold","tripType":"Adventure","transportMode":"Car"}`)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.NotContains(t, rr.Body.String(), "model unavailable")

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/v1/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(h, http.MethodGet, "/api/v1/itineraries", "").Code)
}

func TestSetupRouter_RateLimitOnlyGuardsGeneration(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	h := testRouter(deny)

	for _, target := range []string{"/api/v1/itineraries", "/api/v1/itineraries/refine", "/api/v1/packing-lists"} {
		assert.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodPost, target, "{}").Code, target)
	}
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/v1/suggestions/stay?destination=Goa", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, "/api/v1/itineraries/export", "{}").Code)
}
