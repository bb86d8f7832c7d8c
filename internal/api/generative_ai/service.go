package generativeAI

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/wanderspark-api/config"
)

// ContentGenerator is the single model call the structured generator needs.
// *AIClient implements it against Gemini.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Model() string
}

var _ ContentGenerator = (*AIClient)(nil)

type AIClient struct {
	client *genai.Client
	model  string
}

func NewAIClient(ctx context.Context, cfg config.GeminiConfig) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		err := fmt.Errorf("%s environment variable is not set", cfg.APIKeyEnv)
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	span.SetStatus(codes.Ok, "AI client created successfully")
	return &AIClient{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (ai *AIClient) Model() string {
	return ai.model
}

func (ai *AIClient) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateContent", trace.WithAttributes(
		attribute.Int("contents.count", len(contents)),
		attribute.String("model", ai.model),
	))
	defer span.End()

	result, err := ai.client.Models.GenerateContent(ctx, ai.model, contents, config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if result.UsageMetadata != nil {
		span.SetAttributes(attribute.Int("usage.total_tokens", int(result.UsageMetadata.TotalTokenCount)))
	}
	span.SetStatus(codes.Ok, "Content generated successfully")
	return result, nil
}
