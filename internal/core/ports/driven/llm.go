package driven

import "context"

// GenerateOptions configures text generation.
type GenerateOptions struct {
	// MaxTokens limits the response length (0 = provider default).
	MaxTokens int

	// Temperature controls randomness (0.0-1.0).
	Temperature float64

	// StopWords end generation when encountered.
	StopWords []string
}

// LLMService generates text from prompts. This is the answerer capability:
// the core assembles a prompt and passes it verbatim. Calls must respect
// the context deadline; generation beyond it is cancelled and surfaces as
// a timeout error.
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
