package packing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wanderspark-api/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/wanderspark-api/internal/api/generative_ai"
	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GeneratePackingList(ctx context.Context, req types.PackingListRequest) (*types.PackingListResult, error)
}

type ServiceImpl struct {
	generator generativeAI.StructuredGenerator
	prompt    *template.Template
	logger    *slog.Logger
}

func NewServiceImpl(generator generativeAI.StructuredGenerator, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		generator: generator,
		prompt: template.Must(template.New(packingPromptName).
			Funcs(template.FuncMap{"modeHint": modeHint}).
			Parse(packingTemplate)),
		logger: logger,
	}
}

func (s *ServiceImpl) GeneratePackingList(ctx context.Context, req types.PackingListRequest) (*types.PackingListResult, error) {
	ctx, span := otel.Tracer("PackingService").Start(ctx, "GeneratePackingList", trace.WithAttributes(
		attribute.String("destination", req.Destination),
		attribute.Int("duration", req.Duration),
		attribute.String("transport_mode", string(req.TransportMode)),
	))
	defer span.End()

	start := time.Now()
	l := s.logger.With(slog.String("method", "GeneratePackingList"), slog.String("destination", req.Destination))

	if err := req.Validate(); err != nil {
		l.InfoContext(ctx, "Rejected packing list request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid packing list request")
		metrics.Get().RecordGeneration(ctx, "generate_packing_list", "invalid_request", time.Since(start).Seconds())
		return nil, err
	}

	result, err := s.generate(ctx, l, req)
	if err != nil {
		metrics.Get().RecordGeneration(ctx, "generate_packing_list", "failed", time.Since(start).Seconds())
		l.ErrorContext(ctx, "Packing list generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		return nil, &types.GenerationError{Op: "generatePackingList", Err: err}
	}

	metrics.Get().RecordGeneration(ctx, "generate_packing_list", "success", time.Since(start).Seconds())
	span.SetStatus(codes.Ok, "Packing list generated")
	return result, nil
}

func (s *ServiceImpl) generate(ctx context.Context, l *slog.Logger, req types.PackingListRequest) (*types.PackingListResult, error) {
	var sb strings.Builder
	if err := s.prompt.Execute(&sb, req); err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	var result types.PackingListResult
	spec := generativeAI.PromptSpec{
		Name:   packingPromptName,
		System: systemInstruction,
		Prompt: sb.String(),
		Schema: packingSchema,
	}
	if err := s.generator.Run(ctx, spec, nil, &result); err != nil {
		return nil, err
	}

	kept := result.EssentialChecklist[:0:0]
	for _, item := range result.EssentialChecklist {
		if other, ok := foreignMode(item, req.TransportMode); ok {
			l.WarnContext(ctx, "Dropped checklist item for another transport mode",
				slog.String("item", item), slog.String("belongs_to", string(other)))
			continue
		}
		kept = append(kept, item)
	}
	if len(result.EssentialChecklist) > 0 && len(kept) == 0 {
		return nil, errors.New("every checklist item belonged to another transport mode")
	}
	result.EssentialChecklist = kept

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("model output does not match the packing list schema: %w", err)
	}
	return &result, nil
}
