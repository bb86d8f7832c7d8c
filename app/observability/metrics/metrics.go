package metrics

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerationRequestsTotal   metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	ModelCallsTotal           metric.Int64Counter
	ToolCallsTotal            metric.Int64Counter
	SuggestionCacheHits       metric.Int64Counter
	SuggestionCacheMisses     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so it must run
// after tracer.InitTracingAndMetrics to be exported.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("WanderSpark")
		var err error
		m := &AppMetrics{}

		m.GenerationRequestsTotal, err = meter.Int64Counter(
			"generation_requests_total",
			metric.WithDescription("Total number of generation requests by operation and outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_requests_total: %v", err)
		}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"generation_duration_seconds",
			metric.WithDescription("Duration of generation requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_duration_seconds: %v", err)
		}

		m.ModelCallsTotal, err = meter.Int64Counter(
			"model_calls_total",
			metric.WithDescription("Total number of language model round trips"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create model_calls_total: %v", err)
		}

		m.ToolCallsTotal, err = meter.Int64Counter(
			"tool_calls_total",
			metric.WithDescription("Total number of tool invocations requested by the model"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tool_calls_total: %v", err)
		}

		m.SuggestionCacheHits, err = meter.Int64Counter(
			"suggestion_cache_hits_total",
			metric.WithDescription("Suggestion lookups served from cache"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_cache_hits_total: %v", err)
		}

		m.SuggestionCacheMisses, err = meter.Int64Counter(
			"suggestion_cache_misses_total",
			metric.WithDescription("Suggestion lookups that reached the provider"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_cache_misses_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global AppMetrics, initializing it against whatever meter
// provider is installed (the otel no-op provider in tests).
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

// RecordGeneration counts one finished generation call and its latency.
func (m *AppMetrics) RecordGeneration(ctx context.Context, op string, outcome string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("operation", op), attribute.String("outcome", outcome))
	m.GenerationRequestsTotal.Add(ctx, 1, attrs)
	m.GenerationDurationSeconds.Record(ctx, seconds, metric.WithAttributes(attribute.String("operation", op)))
}
