package services

import (
	"context"
	"fmt"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyStorageBackend   = "storage.backend"
	keyStoragePath      = "storage.path"
	keyMaterialPaths    = "materials.paths"
	keyMaterialExts     = "materials.extensions"
	keyChunkSize        = "chunking.chunk_size"
	keyChunkOverlap     = "chunking.chunk_overlap"
	keyMaxContextChunks = "retrieval.max_context_chunks"
	keyIngestWorkers    = "ingest.workers"
	keyEmbedsPerSecond  = "ingest.embeds_per_second"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedDimensions  = "embedding.dimensions"
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMTimeout       = "llm.timeout_seconds"
	keyServeHTTPAddr    = "serve.http_addr"
	keyRefreshSchedule  = "serve.refresh_schedule"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings, filling unset keys with
// defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			Path:    s.configStore.GetString(keyStoragePath),
		},
		Materials: domain.MaterialsSettings{
			Paths:      s.configStore.GetStringSlice(keyMaterialPaths),
			Extensions: s.getStringSlice(keyMaterialExts, defaults.Materials.Extensions),
		},
		Chunking: domain.ChunkingSettings{
			ChunkSize:    s.getInt(keyChunkSize, defaults.Chunking.ChunkSize),
			ChunkOverlap: s.getInt(keyChunkOverlap, defaults.Chunking.ChunkOverlap),
		},
		Retrieval: domain.RetrievalSettings{
			MaxContextChunks: s.getInt(keyMaxContextChunks, defaults.Retrieval.MaxContextChunks),
		},
		Ingest: domain.IngestSettings{
			Workers:         s.getInt(keyIngestWorkers, defaults.Ingest.Workers),
			EmbedsPerSecond: s.configStore.GetFloat(keyEmbedsPerSecond),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:   s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:      s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:    s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:     s.configStore.GetString(keyEmbedAPIKey),
			Dimensions: s.configStore.GetInt(keyEmbedDimensions),
		},
		LLM: domain.LLMSettings{
			Provider:       s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:          s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:        s.configStore.GetString(keyLLMBaseURL),
			APIKey:         s.configStore.GetString(keyLLMAPIKey),
			TimeoutSeconds: s.configStore.GetInt(keyLLMTimeout),
		},
		Serve: domain.ServeSettings{
			HTTPAddr:        s.configStore.GetString(keyServeHTTPAddr),
			RefreshSchedule: s.configStore.GetString(keyRefreshSchedule),
		},
	}

	return settings, nil
}

// Save persists application settings.
//
//nolint:gocyclo // Straight-line persistence of every settings group.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.configStore.Set(keyStoragePath, settings.Storage.Path); err != nil {
		return fmt.Errorf("save storage path: %w", err)
	}
	if err := s.configStore.Set(keyMaterialPaths, settings.Materials.Paths); err != nil {
		return fmt.Errorf("save material paths: %w", err)
	}
	if err := s.configStore.Set(keyMaterialExts, settings.Materials.Extensions); err != nil {
		return fmt.Errorf("save material extensions: %w", err)
	}
	if err := s.configStore.Set(keyChunkSize, settings.Chunking.ChunkSize); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	if err := s.configStore.Set(keyChunkOverlap, settings.Chunking.ChunkOverlap); err != nil {
		return fmt.Errorf("save chunk overlap: %w", err)
	}
	if err := s.configStore.Set(keyMaxContextChunks, settings.Retrieval.MaxContextChunks); err != nil {
		return fmt.Errorf("save max context chunks: %w", err)
	}
	if err := s.configStore.Set(keyIngestWorkers, settings.Ingest.Workers); err != nil {
		return fmt.Errorf("save ingest workers: %w", err)
	}
	if err := s.configStore.Set(keyEmbedsPerSecond, settings.Ingest.EmbedsPerSecond); err != nil {
		return fmt.Errorf("save embeds per second: %w", err)
	}

	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyEmbedDimensions, settings.Embedding.Dimensions); err != nil {
		return fmt.Errorf("save embedding dimensions: %w", err)
	}

	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMTimeout, settings.LLM.TimeoutSeconds); err != nil {
		return fmt.Errorf("save llm timeout: %w", err)
	}

	if err := s.configStore.Set(keyServeHTTPAddr, settings.Serve.HTTPAddr); err != nil {
		return fmt.Errorf("save serve http addr: %w", err)
	}
	if err := s.configStore.Set(keyRefreshSchedule, settings.Serve.RefreshSchedule); err != nil {
		return fmt.Errorf("save refresh schedule: %w", err)
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}
	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: provider %s requires an API key", domain.ErrInvalidInput, provider)
	}

	if err := s.configStore.Set(keyEmbedProvider, provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if apiKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, apiKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: provider %s requires an API key", domain.ErrInvalidInput, provider)
	}

	if err := s.configStore.Set(keyLLMProvider, provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if apiKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, apiKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	return nil
}

// SetMaterialPaths replaces the configured material directories.
func (s *SettingsService) SetMaterialPaths(paths []string) error {
	if err := s.configStore.Set(keyMaterialPaths, paths); err != nil {
		return fmt.Errorf("save material paths: %w", err)
	}
	return nil
}

// Validate checks that current settings are internally consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}
	if settings.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", domain.ErrInvalidInput)
	}
	if settings.Chunking.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap cannot be negative", domain.ErrInvalidInput)
	}
	if settings.Chunking.ChunkOverlap >= settings.Chunking.ChunkSize {
		return fmt.Errorf("%w: chunk overlap must be smaller than chunk size", domain.ErrInvalidInput)
	}
	if settings.Retrieval.MaxContextChunks <= 0 {
		return fmt.Errorf("%w: max context chunks must be positive", domain.ErrInvalidInput)
	}
	if !settings.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, settings.Embedding.Provider)
	}
	if !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: unknown LLM provider %q", domain.ErrInvalidInput, settings.LLM.Provider)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration
// by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig(ctx context.Context) error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(ctx, &settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging
// the provider.
func (s *SettingsService) ValidateLLMConfig(ctx context.Context) error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(ctx, &settings.LLM)
}

// getString returns the stored value or the default when unset.
func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

// getInt returns the stored value or the default when unset.
func (s *SettingsService) getInt(key string, def int) int {
	if v := s.configStore.GetInt(key); v != 0 {
		return v
	}
	return def
}

// getStringSlice returns the stored value or the default when unset.
func (s *SettingsService) getStringSlice(key string, def []string) []string {
	if v := s.configStore.GetStringSlice(key); len(v) > 0 {
		return v
	}
	return def
}

// getProvider parses a stored provider name, falling back to the default
// for unset or unknown values.
func (s *SettingsService) getProvider(key string, def domain.AIProvider) domain.AIProvider {
	v := domain.AIProvider(s.configStore.GetString(key))
	if v.IsValid() {
		return v
	}
	return def
}

// getBackend parses the stored storage backend name.
func (s *SettingsService) getBackend(def domain.StorageBackend) domain.StorageBackend {
	v := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if v.IsValid() {
		return v
	}
	return def
}
