package driven

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// AIConfigValidator validates AI provider configuration by attempting
// a real connection to the configured endpoint. Used by the settings
// service before persisting provider changes.
type AIConfigValidator interface {
	// ValidateEmbedding checks that the embedding configuration is usable:
	// the provider is known, required fields are set, and the endpoint
	// answers a ping. Returns a descriptive error when validation fails.
	ValidateEmbedding(ctx context.Context, settings *domain.EmbeddingSettings) error

	// ValidateLLM checks that the LLM configuration is usable.
	ValidateLLM(ctx context.Context, settings *domain.LLMSettings) error
}
