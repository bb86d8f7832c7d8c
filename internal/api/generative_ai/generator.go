package generativeAI

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/FACorreiaa/wanderspark-api/app/observability/metrics"
	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

// PromptSpec is one prompt owned by an orchestrator: the rendered text, an
// optional system instruction and the schema the answer must decode into.
type PromptSpec struct {
	Name        string
	System      string
	Prompt      string
	Schema      *genai.Schema
	Temperature *float32
}

// Tool is a capability the model may call while answering.
type Tool interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, args map[string]any) (any, error)
}

// StructuredGenerator runs a prompt with the given tools and decodes the
// final answer into out.
type StructuredGenerator interface {
	Run(ctx context.Context, spec PromptSpec, tools []Tool, out any) error
}

// InteractionRecorder stores model round trips. Failures never fail a request.
type InteractionRecorder interface {
	Record(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error)
}

var (
	ErrUnknownTool       = errors.New("model called an unknown tool")
	ErrTooManyToolRounds = errors.New("model exceeded the tool call budget")
)

var _ StructuredGenerator = (*GeminiGenerator)(nil)

type GeminiGenerator struct {
	client        ContentGenerator
	recorder      InteractionRecorder
	logger        *slog.Logger
	temperature   float32
	timeout       time.Duration
	maxToolRounds int
}

type GeneratorOptions struct {
	Temperature   float32
	Timeout       time.Duration
	MaxToolRounds int
}

func NewGeminiGenerator(client ContentGenerator, recorder InteractionRecorder, opts GeneratorOptions, logger *slog.Logger) *GeminiGenerator {
	if opts.MaxToolRounds <= 0 {
		opts.MaxToolRounds = 4
	}
	return &GeminiGenerator{
		client:        client,
		recorder:      recorder,
		logger:        logger,
		temperature:   opts.Temperature,
		timeout:       opts.Timeout,
		maxToolRounds: opts.MaxToolRounds,
	}
}

func (g *GeminiGenerator) Run(ctx context.Context, spec PromptSpec, tools []Tool, out any) error {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "StructuredGenerator.Run", trace.WithAttributes(
		attribute.String("prompt.name", spec.Name),
		attribute.Int("prompt.length", len(spec.Prompt)),
		attribute.Int("tools.count", len(tools)),
	))
	defer span.End()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cfg, prompt, byName, err := g.buildConfig(spec, tools)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid prompt spec")
		return err
	}

	l := g.logger.With(slog.String("prompt", spec.Name))
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	for round := 0; ; round++ {
		start := time.Now()
		resp, err := g.client.GenerateContent(ctx, contents, cfg)
		latency := time.Since(start)
		metrics.Get().ModelCallsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("prompt", spec.Name),
			attribute.Bool("error", err != nil),
		))
		if err != nil {
			l.ErrorContext(ctx, "Model call failed", slog.Int("round", round), slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Model call failed")
			return fmt.Errorf("model call failed: %w", err)
		}
		g.record(ctx, spec.Name, prompt, resp, latency)

		calls := functionCalls(resp)
		if len(calls) == 0 {
			return g.decode(ctx, span, resp, out)
		}

		if round >= g.maxToolRounds {
			span.SetStatus(codes.Error, "Tool round budget exceeded")
			return fmt.Errorf("%w (%d rounds)", ErrTooManyToolRounds, g.maxToolRounds)
		}

		l.DebugContext(ctx, "Model requested tool calls", slog.Int("round", round), slog.Int("calls", len(calls)))
		span.AddEvent("tool calls", trace.WithAttributes(attribute.Int("round", round), attribute.Int("calls", len(calls))))

		parts, err := g.callTools(ctx, byName, calls)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Tool call failed")
			return err
		}
		contents = append(contents, resp.Candidates[0].Content, genai.NewContentFromParts(parts, genai.RoleUser))
	}
}

func (g *GeminiGenerator) buildConfig(spec PromptSpec, tools []Tool) (*genai.GenerateContentConfig, string, map[string]Tool, error) {
	temperature := g.temperature
	if spec.Temperature != nil {
		temperature = *spec.Temperature
	}
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](temperature)}
	if spec.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(spec.System, genai.RoleUser)
	}

	prompt := spec.Prompt
	byName := make(map[string]Tool, len(tools))
	if len(tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(tools))
		for _, tool := range tools {
			decl := tool.Declaration()
			if _, dup := byName[decl.Name]; dup {
				return nil, "", nil, fmt.Errorf("duplicate tool %q", decl.Name)
			}
			byName[decl.Name] = tool
			decls = append(decls, decl)
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
		if spec.Schema != nil {
			instruction, err := schemaInstruction(spec.Schema)
			if err != nil {
				return nil, "", nil, err
			}
			prompt += instruction
		}
	} else if spec.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = spec.Schema
	}
	return cfg, prompt, byName, nil
}

// callTools executes every call of one model turn concurrently and returns
// the function responses in call order.
func (g *GeminiGenerator) callTools(ctx context.Context, byName map[string]Tool, calls []*genai.FunctionCall) ([]*genai.Part, error) {
	// resolve every name first so an unknown tool never leaves others running
	tools := make([]Tool, len(calls))
	for i, call := range calls {
		tool, ok := byName[call.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
		}
		tools[i] = tool
	}

	parts := make([]*genai.Part, len(calls))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, call := range calls {
		tool := tools[i]
		eg.Go(func() error {
			result, err := tool.Call(egCtx, call.Args)
			metrics.Get().ToolCallsTotal.Add(egCtx, 1, metric.WithAttributes(
				attribute.String("tool", call.Name),
				attribute.Bool("error", err != nil),
			))
			if err != nil {
				return fmt.Errorf("tool %s failed: %w", call.Name, err)
			}
			parts[i] = &genai.Part{FunctionResponse: &genai.FunctionResponse{
				ID:       call.ID,
				Name:     call.Name,
				Response: map[string]any{"output": result},
			}}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

func (g *GeminiGenerator) decode(ctx context.Context, span trace.Span, resp *genai.GenerateContentResponse, out any) error {
	txt := responseText(resp)
	if strings.TrimSpace(txt) == "" {
		span.SetStatus(codes.Error, "Empty response from AI")
		return types.ErrEmptyOutput
	}
	span.SetAttributes(attribute.Int("response.length", len(txt)))

	if err := json.Unmarshal([]byte(cleanJSONResponse(txt)), out); err != nil {
		g.logger.WarnContext(ctx, "Model response is not valid JSON for the schema", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to parse model response")
		return fmt.Errorf("failed to parse model response: %w", err)
	}
	span.SetStatus(codes.Ok, "Structured response decoded")
	return nil
}

func (g *GeminiGenerator) record(ctx context.Context, name, prompt string, resp *genai.GenerateContentResponse, latency time.Duration) {
	if g.recorder == nil {
		return
	}
	interaction := types.LlmInteraction{
		PromptName:   name,
		Prompt:       prompt,
		ResponseText: responseText(resp),
		ModelUsed:    g.client.Model(),
		LatencyMs:    int(latency.Milliseconds()),
	}
	if calls := functionCalls(resp); len(calls) > 0 && interaction.ResponseText == "" {
		names := make([]string, len(calls))
		for i, c := range calls {
			names[i] = c.Name
		}
		interaction.ResponseText = "tool calls: " + strings.Join(names, ", ")
	}
	if u := resp.UsageMetadata; u != nil {
		interaction.PromptTokens = int(u.PromptTokenCount)
		interaction.CompletionTokens = int(u.CandidatesTokenCount)
		interaction.TotalTokens = int(u.TotalTokenCount)
	}
	if _, err := g.recorder.Record(ctx, interaction); err != nil {
		g.logger.WarnContext(ctx, "Failed to record LLM interaction", slog.String("prompt", name), slog.Any("error", err))
	}
}
