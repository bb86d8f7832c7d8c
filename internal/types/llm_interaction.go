package types

import (
	"time"

	"github.com/google/uuid"
)

// LlmInteraction is one model round trip, kept for auditing prompt quality
// and latency.
type LlmInteraction struct {
	ID               uuid.UUID `json:"id"`
	PromptName       string    `json:"prompt_name"`
	Prompt           string    `json:"prompt"`
	ResponseText     string    `json:"response_text"`
	ModelUsed        string    `json:"model_used"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	LatencyMs        int       `json:"latency_ms"`
	CreatedAt        time.Time `json:"created_at"`
}
