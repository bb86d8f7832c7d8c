package suggestions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wanderspark-api/app/observability/metrics"
	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

var (
	_ TravelProvider = (*ServiceImpl)(nil)
	_ StayProvider   = (*ServiceImpl)(nil)
)

// Service is both providers behind a cache.
type Service interface {
	TravelProvider
	StayProvider
}

type ServiceImpl struct {
	travel TravelProvider
	stay   StayProvider
	cache  Cache
	logger *slog.Logger
}

func NewServiceImpl(travel TravelProvider, stay StayProvider, cache Cache, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{travel: travel, stay: stay, cache: cache, logger: logger}
}

func cacheKey(kind string, parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return kind + ":" + strings.Join(parts, ":")
}

func (s *ServiceImpl) LookupTravel(ctx context.Context, source, destination string) ([]types.TravelSuggestion, error) {
	ctx, span := otel.Tracer("SuggestionsService").Start(ctx, "LookupTravel", trace.WithAttributes(
		attribute.String("source", source),
		attribute.String("destination", destination),
	))
	defer span.End()

	if strings.TrimSpace(source) == "" || strings.TrimSpace(destination) == "" {
		span.SetStatus(codes.Error, "Empty place")
		return nil, ErrEmptyPlace
	}

	key := cacheKey("travel", source, destination)
	var cached []types.TravelSuggestion
	if s.fromCache(ctx, key, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	out, err := s.travel.LookupTravel(ctx, source, destination)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Travel lookup failed")
		return nil, fmt.Errorf("travel lookup %s -> %s: %w", source, destination, err)
	}
	if len(out) == 0 {
		span.SetStatus(codes.Error, "No travel options")
		return nil, fmt.Errorf("travel lookup %s -> %s: %w", source, destination, types.ErrEmptyOutput)
	}
	s.toCache(ctx, key, out)
	span.SetStatus(codes.Ok, "Travel options found")
	return out, nil
}

func (s *ServiceImpl) LookupStay(ctx context.Context, destination string) ([]types.StaySuggestion, error) {
	ctx, span := otel.Tracer("SuggestionsService").Start(ctx, "LookupStay", trace.WithAttributes(
		attribute.String("destination", destination),
	))
	defer span.End()

	if strings.TrimSpace(destination) == "" {
		span.SetStatus(codes.Error, "Empty place")
		return nil, ErrEmptyPlace
	}

	key := cacheKey("stay", destination)
	var cached []types.StaySuggestion
	if s.fromCache(ctx, key, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	out, err := s.stay.LookupStay(ctx, destination)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Stay lookup failed")
		return nil, fmt.Errorf("stay lookup %s: %w", destination, err)
	}
	if len(out) == 0 {
		span.SetStatus(codes.Error, "No stay options")
		return nil, fmt.Errorf("stay lookup %s: %w", destination, types.ErrEmptyOutput)
	}
	s.toCache(ctx, key, out)
	span.SetStatus(codes.Ok, "Stay options found")
	return out, nil
}

// fromCache treats cache failures as misses.
func (s *ServiceImpl) fromCache(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.logger.WarnContext(ctx, "Suggestion cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	attrs := metric.WithAttributes(attribute.String("kind", strings.SplitN(key, ":", 2)[0]))
	if found && err == nil {
		metrics.Get().SuggestionCacheHits.Add(ctx, 1, attrs)
		s.logger.DebugContext(ctx, "Suggestion cache hit", slog.String("key", key))
		return true
	}
	metrics.Get().SuggestionCacheMisses.Add(ctx, 1, attrs)
	return false
}

func (s *ServiceImpl) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.WarnContext(ctx, "Suggestion cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}
