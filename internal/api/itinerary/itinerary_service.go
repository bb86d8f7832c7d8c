package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"text/template"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wanderspark-api/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/wanderspark-api/internal/api/generative_ai"
	"github.com/FACorreiaa/wanderspark-api/internal/api/suggestions"
	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service generates itineraries and refines them once a travel option is picked.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.Itinerary, error)
	RefineItinerary(ctx context.Context, req types.RefinementRequest) (*types.Itinerary, error)
}

type ServiceImpl struct {
	generator      generativeAI.StructuredGenerator
	providers      suggestions.Service
	generatePrompt *template.Template
	refinePrompt   *template.Template
	logger         *slog.Logger
}

func NewServiceImpl(generator generativeAI.StructuredGenerator, providers suggestions.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		generator:      generator,
		providers:      providers,
		generatePrompt: template.Must(template.New(generatePromptName).Parse(generateTemplate)),
		refinePrompt:   template.Must(template.New(refinePromptName).Parse(refineTemplate)),
		logger:         logger,
	}
}

func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("source", req.Source),
		attribute.String("destination", req.Destination),
		attribute.Int("duration", req.Duration),
		attribute.String("trip_type", string(req.TripType)),
	))
	defer span.End()

	start := time.Now()
	l := s.logger.With(slog.String("method", "GenerateItinerary"), slog.String("destination", req.Destination))

	if err := req.Validate(); err != nil {
		l.InfoContext(ctx, "Rejected trip request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid trip request")
		recordOutcome(ctx, "generate_itinerary", err, start)
		return nil, err
	}

	it, err := s.generate(ctx, req)
	recordOutcome(ctx, "generate_itinerary", err, start)
	if err != nil {
		l.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		return nil, &types.GenerationError{Op: "generateItinerary", Err: err}
	}

	l.InfoContext(ctx, "Itinerary generated",
		slog.Int("days", len(it.DailyItineraries)),
		slog.Int("travel_suggestions", len(it.TravelSuggestions)),
		slog.Int("stay_suggestions", len(it.StaySuggestions)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return it, nil
}

func (s *ServiceImpl) generate(ctx context.Context, req types.TripRequest) (*types.Itinerary, error) {
	prompt, err := render(s.generatePrompt, newGenerateData(req))
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	observed := &observedSuggestions{providers: s.providers}
	tools := []generativeAI.Tool{
		suggestions.NewTravelTool(observed),
		suggestions.NewStayTool(observed),
	}

	var it types.Itinerary
	spec := generativeAI.PromptSpec{
		Name:   generatePromptName,
		System: systemInstruction,
		Prompt: prompt,
		Schema: ItinerarySchema,
	}
	if err := s.generator.Run(ctx, spec, tools, &it); err != nil {
		return nil, err
	}

	// Suggestions come from the providers, never from the model's own text.
	if travel := observed.travelResult(); travel != nil {
		it.TravelSuggestions = travel
	}
	if stay := observed.stayResult(); stay != nil {
		it.StaySuggestions = stay
	}

	it.Normalize()
	if err := it.ValidateFor(req.Duration); err != nil {
		return nil, fmt.Errorf("model output does not match the itinerary schema: %w", err)
	}
	return &it, nil
}

func (s *ServiceImpl) RefineItinerary(ctx context.Context, req types.RefinementRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "RefineItinerary", trace.WithAttributes(
		attribute.Int("days", len(req.Itinerary.DailyItineraries)),
		attribute.String("selected.mode", string(req.SelectedTravel.Mode)),
		attribute.String("selected.details", req.SelectedTravel.Details),
	))
	defer span.End()

	start := time.Now()
	l := s.logger.With(slog.String("method", "RefineItinerary"))

	if err := req.Validate(); err != nil {
		l.InfoContext(ctx, "Rejected refinement request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid refinement request")
		recordOutcome(ctx, "refine_itinerary", err, start)
		return nil, err
	}

	it, err := s.refine(ctx, req)
	recordOutcome(ctx, "refine_itinerary", err, start)
	if err != nil {
		l.ErrorContext(ctx, "Itinerary refinement failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Refinement failed")
		return nil, &types.RefinementError{Err: err}
	}

	l.InfoContext(ctx, "Itinerary refined", slog.Int("days", len(it.DailyItineraries)))
	span.SetStatus(codes.Ok, "Itinerary refined")
	return it, nil
}

func (s *ServiceImpl) refine(ctx context.Context, req types.RefinementRequest) (*types.Itinerary, error) {
	days, err := json.Marshal(req.Itinerary.DailyItineraries)
	if err != nil {
		return nil, fmt.Errorf("encode day plans: %w", err)
	}
	prompt, err := render(s.refinePrompt, newRefineData(req, string(days)))
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	var out types.Itinerary
	spec := generativeAI.PromptSpec{
		Name:   refinePromptName,
		System: systemInstruction,
		Prompt: prompt,
		Schema: ItinerarySchema,
	}
	if err := s.generator.Run(ctx, spec, nil, &out); err != nil {
		return nil, err
	}

	// whatever the model said about suggestions is discarded before validation
	out.TravelSuggestions, out.StaySuggestions = nil, nil
	out.Normalize()
	if err := out.ValidateFor(len(req.Itinerary.DailyItineraries)); err != nil {
		return nil, fmt.Errorf("model output does not match the itinerary schema: %w", err)
	}

	out.TravelSuggestions = req.Itinerary.TravelSuggestions
	out.StaySuggestions = req.Itinerary.StaySuggestions
	return &out, nil
}

func recordOutcome(ctx context.Context, op string, err error, start time.Time) {
	outcome := "success"
	var ve *types.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		outcome = "invalid_request"
	default:
		outcome = "failed"
	}
	metrics.Get().RecordGeneration(ctx, op, outcome, time.Since(start).Seconds())
}

// observedSuggestions sits between the tools and the providers for one
// generation run and keeps the last successful result of each lookup.
type observedSuggestions struct {
	providers suggestions.Service

	mu     sync.Mutex
	travel []types.TravelSuggestion
	stay   []types.StaySuggestion
}

func (o *observedSuggestions) LookupTravel(ctx context.Context, source, destination string) ([]types.TravelSuggestion, error) {
	out, err := o.providers.LookupTravel(ctx, source, destination)
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	o.travel = out
	o.mu.Unlock()
	return out, nil
}

func (o *observedSuggestions) LookupStay(ctx context.Context, destination string) ([]types.StaySuggestion, error) {
	out, err := o.providers.LookupStay(ctx, destination)
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	o.stay = out
	o.mu.Unlock()
	return out, nil
}

func (o *observedSuggestions) travelResult() []types.TravelSuggestion {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.travel
}

func (o *observedSuggestions) stayResult() []types.StaySuggestion {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stay
}
