package tracer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Providers keeps the installed providers so main can flush them on shutdown.
type Providers struct {
	Tracer *trace.TracerProvider
	Meter  *metric.MeterProvider
}

// InitTracingAndMetrics installs global trace and meter providers. Metrics are
// exported through the Prometheus exporter and served by MetricsHandler.
func InitTracingAndMetrics(serviceName string) (*Providers, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	tp := trace.NewTracerProvider(trace.WithResource(res))
	otel.SetTracerProvider(tp)

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
	otel.SetMeterProvider(mp)

	return &Providers{Tracer: tp, Meter: mp}, nil
}

// MetricsHandler exposes the default Prometheus registry the exporter writes to.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func (p *Providers) Shutdown(ctx context.Context) error {
	if err := p.Tracer.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}
	if err := p.Meter.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}
