package llmInteraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	generativeAI "github.com/FACorreiaa/wanderspark-api/internal/api/generative_ai"
	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

var (
	_ generativeAI.InteractionRecorder = (*PostgresLlmInteractionRepo)(nil)
	_ generativeAI.InteractionRecorder = NoopRecorder{}
)

// Querier is the subset of *pgxpool.Pool the repository needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresLlmInteractionRepo struct {
	logger *slog.Logger
	pgpool Querier
}

func NewPostgresLlmInteractionRepo(pgpool Querier, logger *slog.Logger) *PostgresLlmInteractionRepo {
	return &PostgresLlmInteractionRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const insertInteraction = `
        INSERT INTO llm_interactions (
            prompt_name, prompt, response_text, model_used,
            prompt_tokens, completion_tokens, total_tokens, latency_ms
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `

// Record stores one model round trip and returns its id.
func (r *PostgresLlmInteractionRepo) Record(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error) {
	ctx, span := otel.Tracer("LlmInteractionRepo").Start(ctx, "Record", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("prompt.name", interaction.PromptName),
	))
	defer span.End()

	var id uuid.UUID
	err := r.pgpool.QueryRow(ctx, insertInteraction,
		interaction.PromptName, interaction.Prompt, interaction.ResponseText, interaction.ModelUsed,
		interaction.PromptTokens, interaction.CompletionTokens, interaction.TotalTokens, interaction.LatencyMs,
	).Scan(&id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		return uuid.Nil, fmt.Errorf("failed to save llm interaction: %w", err)
	}

	r.logger.DebugContext(ctx, "Saved llm interaction", slog.String("id", id.String()), slog.String("prompt_name", interaction.PromptName))
	span.SetStatus(codes.Ok, "")
	return id, nil
}

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, types.LlmInteraction) (uuid.UUID, error) {
	return uuid.Nil, nil
}
