package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	appMiddleware "github.com/FACorreiaa/wanderspark-api/app/middleware"
	llmInteraction "github.com/FACorreiaa/wanderspark-api/internal/api/llm_interaction"
)

func TestNewMetricsServer(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# HELP wanderspark"))
	})
	srv := newMetricsServer("9090", metrics)
	assert.Equal(t, ":9090", srv.Addr)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "# HELP wanderspark", rr.Body.String())

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/suggestions/stay", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPIHandlerWithoutMetricsRoute(t *testing.T) {
	limiter := appMiddleware.NewRateLimiter(1, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := newTestServer(&scriptedModel{}, llmInteraction.NoopRecorder{}, limiter)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
