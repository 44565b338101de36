// Command studymate is a course material study assistant. It indexes
// lecture notes into a chunk corpus and answers questions and
// assignments against it through a CLI and an MCP server.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/studymate-labs/studymate-cli/internal/adapters/driven/ai"
	fileconfig "github.com/studymate-labs/studymate-cli/internal/adapters/driven/config/file"
	"github.com/studymate-labs/studymate-cli/internal/adapters/driven/storage/memory"
	"github.com/studymate-labs/studymate-cli/internal/adapters/driven/storage/sqlite"
	"github.com/studymate-labs/studymate-cli/internal/adapters/driving/cli"
	"github.com/studymate-labs/studymate-cli/internal/connectors/filesystem"
	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
	"github.com/studymate-labs/studymate-cli/internal/core/services"
	"github.com/studymate-labs/studymate-cli/internal/logger"
	"github.com/studymate-labs/studymate-cli/internal/normalisers"
	"github.com/studymate-labs/studymate-cli/internal/normalisers/docx"
	"github.com/studymate-labs/studymate-cli/internal/normalisers/markdown"
	"github.com/studymate-labs/studymate-cli/internal/normalisers/pdf"
	"github.com/studymate-labs/studymate-cli/internal/normalisers/plaintext"
	"github.com/studymate-labs/studymate-cli/internal/postprocessors/chunker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := fileconfig.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	chunkStore, answerStore, closeStores, err := openStores(settings)
	if err != nil {
		return err
	}
	defer closeStores()

	aiResult := ai.CreateAndValidate(settings)
	for _, warning := range aiResult.Warnings {
		logger.Warn("%s", warning)
	}

	registry := normalisers.NewRegistry(
		plaintext.New(),
		markdown.New(),
		pdf.New(),
		docx.New(),
	)

	chunkerProc := chunker.New(
		chunker.WithChunkSize(settings.Chunking.ChunkSize),
		chunker.WithOverlap(settings.Chunking.ChunkOverlap),
	)

	source := filesystem.New(settings.Materials.Paths, settings.Materials.Extensions)

	generateTimeout := time.Duration(settings.LLM.TimeoutSeconds) * time.Second

	retrievalService := services.NewRetrievalService(
		chunkStore, aiResult.EmbeddingService, settings.Retrieval.MaxContextChunks)
	askService := services.NewAskService(
		retrievalService, aiResult.LLMService, answerStore, generateTimeout)
	assignmentService := services.NewAssignmentService(
		retrievalService, aiResult.LLMService, answerStore, 0, generateTimeout)
	answerService := services.NewAnswerService(answerStore)
	refreshService := services.NewRefreshOrchestrator(
		[]driven.MaterialSource{source},
		registry,
		chunkerProc,
		aiResult.EmbeddingService,
		chunkStore,
		services.RefreshConfig{
			Workers:         settings.Ingest.Workers,
			EmbedsPerSecond: settings.Ingest.EmbedsPerSecond,
		},
	)

	cli.SetServices(cli.Services{
		Retrieval:  retrievalService,
		Ask:        askService,
		Assignment: assignmentService,
		Answers:    answerService,
		Refresh:    refreshService,
		Settings:   settingsService,
	})

	return cli.Execute()
}

// openStores opens the chunk and answer stores for the configured
// backend. The returned closer is a no-op for the memory backend.
func openStores(settings *domain.AppSettings) (driven.ChunkStore, driven.AnswerStore, func(), error) {
	if settings.Storage.Backend == domain.StorageBackendMemory {
		return memory.NewChunkStore(), memory.NewAnswerStore(), func() {}, nil
	}

	store, err := sqlite.NewStore(settings.Storage.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening sqlite store: %w", err)
	}

	closer := func() {
		if err := store.Close(); err != nil {
			logger.Warn("Closing store: %v", err)
		}
	}
	return store.ChunkStore(), store.AnswerStore(), closer, nil
}
