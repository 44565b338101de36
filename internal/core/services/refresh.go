package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driving"
	"github.com/studymate-labs/studymate-cli/internal/logger"
)

// Ensure RefreshOrchestrator implements the interface.
var _ driving.RefreshOrchestrator = (*RefreshOrchestrator)(nil)

// watchDebounce coalesces bursts of file events into one re-ingestion.
const watchDebounce = 2 * time.Second

// RefreshOrchestrator coordinates corpus ingestion: loading materials,
// normalising, chunking, embedding and storing. A refresh replaces the
// stored chunks source by source; a source whose embeddings fail keeps
// its previously stored chunks.
type RefreshOrchestrator struct {
	sources          []driven.MaterialSource
	registry         driven.NormaliserRegistry
	chunker          driven.Chunker
	embeddingService driven.EmbeddingService
	chunkStore       driven.ChunkStore
	workers          int
	limiter          *rate.Limiter

	mu          sync.RWMutex
	running     bool
	phase       domain.CorpusPhase
	lastRefresh time.Time
	documents   int
	skipped     int
}

// RefreshConfig bounds refresh concurrency.
type RefreshConfig struct {
	// Workers is the embedding worker pool size (default 4).
	Workers int

	// EmbedsPerSecond throttles embedding calls to respect provider
	// rate limits. Zero disables throttling.
	EmbedsPerSecond float64
}

// NewRefreshOrchestrator creates a new refresh orchestrator.
func NewRefreshOrchestrator(
	sources []driven.MaterialSource,
	registry driven.NormaliserRegistry,
	chunker driven.Chunker,
	embeddingService driven.EmbeddingService,
	chunkStore driven.ChunkStore,
	cfg RefreshConfig,
) *RefreshOrchestrator {
	if cfg.Workers <= 0 {
		cfg.Workers = domain.DefaultIngestWorkers
	}

	var limiter *rate.Limiter
	if cfg.EmbedsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.EmbedsPerSecond), 1)
	}

	return &RefreshOrchestrator{
		sources:          sources,
		registry:         registry,
		chunker:          chunker,
		embeddingService: embeddingService,
		chunkStore:       chunkStore,
		workers:          cfg.Workers,
		limiter:          limiter,
		phase:            domain.PhaseEmpty,
	}
}

// sourceBatch is the chunked form of one material, keyed by its source
// identifier, awaiting embedding.
type sourceBatch struct {
	source string
	path   string
	chunks []domain.Chunk
}

// loadResult carries the chunked materials plus what the prune pass
// needs to know: which skipped documents may still own stored chunks,
// and whether any source failed in a way that hides its documents
// entirely. A partial load makes "vanished" undecidable, so pruning
// is skipped for the run.
type loadResult struct {
	batches        []sourceBatch
	skipped        int
	skippedSources map[string]bool
	partial        bool
}

// Refresh re-ingests all configured material sources. One document
// failing to load, normalise or chunk never aborts the refresh; it is
// logged, skipped and counted. Concurrent refreshes are rejected.
//
//nolint:gocyclo // Orchestration walks the full lifecycle sequentially.
func (o *RefreshOrchestrator) Refresh(ctx context.Context) (*domain.RefreshReport, error) {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, domain.ErrRefreshInProgress
	}
	o.running = true
	o.phase = domain.PhaseLoading
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	report := &domain.RefreshReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	logger.Section("Corpus Refresh")

	// Load and chunk every material first; embedding starts only once
	// the cheap, local work has succeeded.
	loaded := o.loadAndChunk(ctx)
	batches, skipped := loaded.batches, loaded.skipped
	report.Documents = len(batches) + skipped
	report.SkippedDocuments = skipped
	for _, b := range batches {
		report.Chunks += len(b.chunks)
	}

	o.setPhase(domain.PhaseChunked)
	logger.Info("Chunked %d documents into %d chunks (%d skipped)",
		len(batches), report.Chunks, skipped)

	if o.embeddingService == nil {
		o.setPhase(o.currentStoredPhase(ctx))
		report.FinishedAt = time.Now().UTC()
		return report, fmt.Errorf("%w: no embedding provider configured", domain.ErrEmbeddingUnavailable)
	}

	// Embed and replace source by source. The store keeps a source's
	// old chunks until its replacement commits, so a mid-refresh
	// failure never leaves a source unqueryable.
	seen := make(map[string]bool, len(batches))
	for _, batch := range batches {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = time.Now().UTC()
			return report, err
		}
		seen[batch.source] = true

		entries, err := o.embedBatch(ctx, batch)
		if err != nil {
			logger.Degraded("Source %s kept its previous chunks: embedding failed (%v)", batch.source, err)
			report.DegradedSources = append(report.DegradedSources, batch.source)
			continue
		}

		if err := o.chunkStore.ReplaceSource(ctx, batch.source, entries); err != nil {
			if errors.Is(err, domain.ErrSchemaMismatch) {
				// A dimensionality change means the provider or model
				// changed under us. Refusing loudly beats silently
				// mixing incomparable vectors.
				report.FinishedAt = time.Now().UTC()
				return report, fmt.Errorf("store source %s: %w", batch.source, err)
			}
			logger.Degraded("Source %s kept its previous chunks: store write failed (%v)", batch.source, err)
			report.DegradedSources = append(report.DegradedSources, batch.source)
			continue
		}
		report.StoredChunks += len(entries)
	}
	o.setPhase(domain.PhaseEmbedded)

	// Drop sources that vanished from the material directories. A
	// source is only "vanished" when this run saw every document: a
	// skipped document keeps its prior chunks, and a partial load
	// (unavailable source, unattributable read errors) skips pruning
	// for the whole run rather than guess what still exists.
	if loaded.partial {
		logger.Warn("Skipping vanished-source cleanup: a material source did not load completely")
	} else if err := o.pruneVanished(ctx, seen, loaded.skippedSources, report); err != nil {
		logger.Warn("Pruning removed sources failed: %v", err)
	}

	o.mu.Lock()
	o.phase = domain.PhaseStored
	o.lastRefresh = time.Now().UTC()
	o.documents = report.Documents
	o.skipped = report.SkippedDocuments
	o.mu.Unlock()

	report.FinishedAt = time.Now().UTC()
	logger.Info("Refresh complete: %d chunks stored in %s", report.StoredChunks, report.Duration().Round(time.Millisecond))
	return report, nil
}

// loadAndChunk streams materials from every source, normalises and chunks
// them. Failures are counted, not fatal.
func (o *RefreshOrchestrator) loadAndChunk(ctx context.Context) loadResult {
	res := loadResult{skippedSources: make(map[string]bool)}
	for _, src := range o.sources {
		if err := src.Validate(ctx); err != nil {
			logger.Warn("Material source %s unavailable: %v", src.Name(), err)
			res.partial = true
			continue
		}

		materials, errs := src.Load(ctx)
		for materials != nil || errs != nil {
			select {
			case material, ok := <-materials:
				if !ok {
					materials = nil
					continue
				}
				batch, ok := o.chunkMaterial(ctx, material)
				if !ok {
					res.skipped++
					res.skippedSources[material.Source] = true
					continue
				}
				if batch != nil {
					res.batches = append(res.batches, *batch)
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				// Read errors carry no source identifier, so the
				// failed document cannot be exempted individually.
				logger.Warn("Skipping material: %v", err)
				res.skipped++
				res.partial = true
			case <-ctx.Done():
				res.partial = true
				return res
			}
		}
	}
	return res
}

// chunkMaterial normalises and chunks one material. It returns nil, true
// for materials that legitimately produce no chunks (empty files).
func (o *RefreshOrchestrator) chunkMaterial(ctx context.Context, material domain.Material) (*sourceBatch, bool) {
	text, err := o.registry.Normalise(ctx, &material)
	if err != nil {
		logger.Warn("Skipping %s: %v", material.Source, err)
		return nil, false
	}

	chunks, degraded := o.chunker.Process(material.Source, text)
	if degraded {
		logger.Degraded("Sentence tokenization failed for %s; indexed as a single chunk", material.Source)
	}
	if len(chunks) == 0 {
		logger.Debug("No chunks for %s (empty after normalising)", material.Source)
		return nil, true
	}

	return &sourceBatch{source: material.Source, path: material.Path, chunks: chunks}, true
}

// embedBatch embeds all chunks of one source on a bounded worker pool.
// Any chunk failing fails the whole batch so the source keeps its old
// index rather than storing a partial one.
func (o *RefreshOrchestrator) embedBatch(ctx context.Context, batch sourceBatch) ([]domain.StoreEntry, error) {
	entries := make([]domain.StoreEntry, len(batch.chunks))
	total := strconv.Itoa(len(batch.chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i := range batch.chunks {
		g.Go(func() error {
			if o.limiter != nil {
				if err := o.limiter.Wait(gctx); err != nil {
					return err
				}
			}

			chunk := batch.chunks[i]
			vector, err := o.embeddingService.Embed(gctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("%w: chunk %s: %w", domain.ErrEmbeddingUnavailable, chunk.ID, err)
			}
			if len(vector) == 0 {
				return fmt.Errorf("%w: chunk %s: empty vector", domain.ErrEmbeddingUnavailable, chunk.ID)
			}

			entries[i] = domain.StoreEntry{
				Chunk:     chunk,
				Embedding: vector,
				Metadata: map[string]string{
					"path":         batch.path,
					"chunk_index":  strconv.Itoa(chunk.Seq),
					"total_chunks": total,
				},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// pruneVanished deletes stored sources that no longer exist on disk.
// Sources that were skipped or degraded this run keep their chunks.
func (o *RefreshOrchestrator) pruneVanished(ctx context.Context, seen, skipped map[string]bool, report *domain.RefreshReport) error {
	degraded := make(map[string]bool, len(report.DegradedSources))
	for _, s := range report.DegradedSources {
		degraded[s] = true
	}

	stored, err := o.chunkStore.Sources(ctx)
	if err != nil {
		return err
	}
	for _, source := range stored {
		if seen[source] || degraded[source] || skipped[source] {
			continue
		}
		logger.Info("Removing vanished source %s", source)
		if err := o.chunkStore.DeleteSource(ctx, source); err != nil {
			return fmt.Errorf("delete source %s: %w", source, err)
		}
	}
	return nil
}

// Status reports the current corpus state. On a fresh process the phase
// derives from the store: a populated store is Stored, otherwise Empty.
func (o *RefreshOrchestrator) Status(ctx context.Context) (*domain.CorpusStatus, error) {
	count, err := o.chunkStore.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	sources, err := o.chunkStore.Sources(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	dims, err := o.chunkStore.Dimensions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	phase := o.phase
	if !o.running && (phase == domain.PhaseEmpty || phase == domain.PhaseStored) {
		phase = domain.PhaseEmpty
		if count > 0 {
			phase = domain.PhaseStored
		}
	}

	return &domain.CorpusStatus{
		Phase:       phase,
		Running:     o.running,
		Documents:   o.documents,
		Chunks:      count,
		Sources:     len(sources),
		Dimensions:  dims,
		LastRefresh: o.lastRefresh,
		Errors:      o.skipped,
	}, nil
}

// Reset removes all stored chunks and returns the corpus to Empty.
func (o *RefreshOrchestrator) Reset(ctx context.Context) error {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return domain.ErrRefreshInProgress
	}
	o.mu.Unlock()

	if err := o.chunkStore.Reset(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	o.mu.Lock()
	o.phase = domain.PhaseEmpty
	o.documents = 0
	o.skipped = 0
	o.lastRefresh = time.Time{}
	o.mu.Unlock()

	logger.Info("Corpus reset")
	return nil
}

// Watch blocks, re-ingesting the corpus as material files change, until
// the context is cancelled. Bursts of file events are debounced into one
// refresh.
func (o *RefreshOrchestrator) Watch(ctx context.Context) error {
	events := make(chan domain.MaterialEvent)

	var wg sync.WaitGroup
	for _, src := range o.sources {
		ch, err := src.Watch(ctx)
		if err != nil {
			return fmt.Errorf("watch source %s: %w", src.Name(), err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ev := range ch {
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(events)
	}()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return ctx.Err()
			}
			logger.Debug("Material %s: %s", ev.Type, ev.Path)
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				fire = timer.C
			} else {
				timer.Reset(watchDebounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			if _, err := o.Refresh(ctx); err != nil && !errors.Is(err, domain.ErrRefreshInProgress) {
				logger.Warn("Watch refresh failed: %v", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// setPhase records a lifecycle phase transition.
func (o *RefreshOrchestrator) setPhase(phase domain.CorpusPhase) {
	o.mu.Lock()
	o.phase = phase
	o.mu.Unlock()
}

// currentStoredPhase derives Empty or Stored from the store contents.
func (o *RefreshOrchestrator) currentStoredPhase(ctx context.Context) domain.CorpusPhase {
	count, err := o.chunkStore.Count(ctx)
	if err != nil || count == 0 {
		return domain.PhaseEmpty
	}
	return domain.PhaseStored
}
