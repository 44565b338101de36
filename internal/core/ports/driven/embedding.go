package driven

import "context"

// EmbeddingService generates vector embeddings for text.
// Implementations call external model services (Ollama, OpenAI) and must
// decode responses strictly: a malformed or empty payload is an error,
// never a silently truncated vector.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Returns a fixed-size float vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// Implementations may batch into a single API call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
