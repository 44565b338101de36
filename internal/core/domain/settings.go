package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// StorageBackend selects the chunk store implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite persists the corpus on disk. The default.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendMemory keeps the corpus in memory only. It does not
	// survive restarts and exists for tests and throwaway sessions; it
	// must be selected explicitly.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Persistent returns true if the backend survives process restarts.
func (b StorageBackend) Persistent() bool {
	return b == StorageBackendSQLite
}

// Pipeline defaults, mirroring the original assistant's tuning.
const (
	// DefaultChunkSize is the word-count budget per chunk.
	DefaultChunkSize = 500

	// DefaultChunkOverlap is the word-count budget for the sentence
	// suffix carried into the next chunk.
	DefaultChunkOverlap = 50

	// DefaultMaxContextChunks is how many chunks retrieval returns when
	// the caller does not ask for a specific k.
	DefaultMaxContextChunks = 3

	// DefaultIngestWorkers bounds concurrent embedding calls during a
	// corpus refresh.
	DefaultIngestWorkers = 4

	// DefaultChunkPreviewRunes is the per-chunk truncation applied when
	// assembling assignment prompts.
	DefaultChunkPreviewRunes = 200
)

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions overrides the model's known dimensionality.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds answer-generation provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// TimeoutSeconds is the enforced generation deadline. Zero means
	// the adapter default.
	TimeoutSeconds int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings holds chunker configuration.
type ChunkingSettings struct {
	// ChunkSize is the word-count budget per chunk.
	ChunkSize int

	// ChunkOverlap is the word-count overlap budget between chunks.
	ChunkOverlap int
}

// RetrievalSettings holds retriever configuration.
type RetrievalSettings struct {
	// MaxContextChunks is the default and maximum k for retrieval.
	MaxContextChunks int
}

// StorageSettings holds chunk/answer store configuration.
type StorageSettings struct {
	// Backend selects the store implementation.
	Backend StorageBackend

	// Path is the sqlite database location. Ignored by the memory
	// backend.
	Path string
}

// MaterialsSettings holds material source configuration.
type MaterialsSettings struct {
	// Paths are the directories scanned for course materials.
	Paths []string

	// Extensions are the file extensions ingested (with dots).
	Extensions []string
}

// IngestSettings bounds refresh concurrency.
type IngestSettings struct {
	// Workers is the embedding worker pool size.
	Workers int

	// EmbedsPerSecond throttles embedding calls. Zero disables the
	// limiter.
	EmbedsPerSecond float64
}

// ServeSettings configures the long-running serve mode.
type ServeSettings struct {
	// HTTPAddr exposes the MCP server over HTTP when non-empty;
	// otherwise the server speaks stdio.
	HTTPAddr string

	// RefreshSchedule is an optional cron expression for periodic
	// corpus refreshes while serving.
	RefreshSchedule string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Storage holds store settings.
	Storage StorageSettings

	// Materials holds material source settings.
	Materials MaterialsSettings

	// Chunking holds chunker settings.
	Chunking ChunkingSettings

	// Retrieval holds retriever settings.
	Retrieval RetrievalSettings

	// Ingest holds refresh concurrency settings.
	Ingest IngestSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds answer-generation provider settings.
	LLM LLMSettings

	// Serve holds serve-mode settings.
	Serve ServeSettings
}

// DefaultAppSettings returns settings that work against a local Ollama
// instance out of the box. Cloud providers require an explicit API key via
// the settings commands.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
			// Path is resolved by the config store against the
			// user data directory when left empty.
		},
		Materials: MaterialsSettings{
			Extensions: []string{".txt", ".md", ".pdf"},
		},
		Chunking: ChunkingSettings{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
		},
		Retrieval: RetrievalSettings{
			MaxContextChunks: DefaultMaxContextChunks,
		},
		Ingest: IngestSettings{
			Workers: DefaultIngestWorkers,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "bge-m3",
		},
		LLM: LLMSettings{
			Provider: AIProviderOllama,
			Model:    "llama3.2",
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support answer generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "bge-m3",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"bge-m3":            1024,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
