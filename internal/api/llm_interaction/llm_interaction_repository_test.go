package llmInteraction

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

func testInteraction() types.LlmInteraction {
	return types.LlmInteraction{
		PromptName:       "generateItineraryPrompt",
		Prompt:           "Plan a 3 day trip to Goa",
		ResponseText:     `{"dayPlans":[]}`,
		ModelUsed:        "gemini-2.0-flash",
		PromptTokens:     120,
		CompletionTokens: 340,
		TotalTokens:      460,
		LatencyMs:        812,
	}
}

func TestPostgresLlmInteractionRepo_Record(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	in := testInteraction()

	t.Run("returns the generated id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		want := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO llm_interactions")).
			WithArgs(in.PromptName, in.Prompt, in.ResponseText, in.ModelUsed,
				in.PromptTokens, in.CompletionTokens, in.TotalTokens, in.LatencyMs).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(want))

		got, err := NewPostgresLlmInteractionRepo(mock, logger).Record(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database errors", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		boom := errors.New("relation \"llm_interactions\" does not exist")
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO llm_interactions")).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(boom)

		got, err := NewPostgresLlmInteractionRepo(mock, logger).Record(context.Background(), in)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, uuid.Nil, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoopRecorder(t *testing.T) {
	id, err := NoopRecorder{}.Record(context.Background(), testInteraction())
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)
}
