package services

import (
	"context"
	"sort"
	"sync"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Hand-written test doubles for the driven ports. The memory adapters
// cover the happy paths; these mocks exist to force specific failures.

// mockEmbedder returns a fixed vector or a fixed error.
type mockEmbedder struct {
	vector []float32
	err    error
	calls  int
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return len(m.vector) }
func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockLLM returns a fixed response or a fixed error and records the
// prompt it was given.
type mockLLM struct {
	response string
	err      error
	prompt   string
}

var _ driven.LLMService = (*mockLLM)(nil)

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockChunkStore is a minimal in-memory chunk store whose operations can
// be failed selectively.
type mockChunkStore struct {
	mu      sync.Mutex
	entries map[string]domain.StoreEntry
	order   []string

	queryHits  []domain.ChunkHit
	queryErr   error
	countErr   error
	putErr     error
	replaceErr error
}

var _ driven.ChunkStore = (*mockChunkStore)(nil)

func newMockChunkStore() *mockChunkStore {
	return &mockChunkStore{entries: make(map[string]domain.StoreEntry)}
}

func (m *mockChunkStore) Put(_ context.Context, entries []domain.StoreEntry) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		if _, ok := m.entries[e.Chunk.ID]; !ok {
			m.order = append(m.order, e.Chunk.ID)
		}
		m.entries[e.Chunk.ID] = e
	}
	return nil
}

func (m *mockChunkStore) ReplaceSource(ctx context.Context, source string, entries []domain.StoreEntry) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if err := m.DeleteSource(ctx, source); err != nil {
		return err
	}
	return m.Put(ctx, entries)
}

func (m *mockChunkStore) DeleteSource(_ context.Context, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.order[:0]
	for _, id := range m.order {
		if m.entries[id].Chunk.Source == source {
			delete(m.entries, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	return nil
}

func (m *mockChunkStore) Query(_ context.Context, _ []float32, k int) ([]domain.ChunkHit, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	hits := m.queryHits
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (m *mockChunkStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]domain.StoreEntry)
	m.order = nil
	return nil
}

func (m *mockChunkStore) Count(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries), nil
}

func (m *mockChunkStore) Sources(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	var sources []string
	for _, id := range m.order {
		src := m.entries[id].Chunk.Source
		if !seen[src] {
			seen[src] = true
			sources = append(sources, src)
		}
	}
	sort.Strings(sources)
	return sources, nil
}

func (m *mockChunkStore) Dimensions(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		return len(e.Embedding), nil
	}
	return 0, nil
}

func (m *mockChunkStore) Close() error { return nil }

// mockAnswerStore records saved answers in memory.
type mockAnswerStore struct {
	mu      sync.Mutex
	answers []domain.Answer
	saveErr error
}

var _ driven.AnswerStore = (*mockAnswerStore)(nil)

func (m *mockAnswerStore) SaveAnswer(_ context.Context, answer *domain.Answer) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, *answer)
	return nil
}

func (m *mockAnswerStore) GetAnswer(_ context.Context, id string) (*domain.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.answers {
		if m.answers[i].ID == id {
			a := m.answers[i]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAnswerStore) ListAnswers(_ context.Context, limit int) ([]domain.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Answer, len(m.answers))
	copy(out, m.answers)
	// Newest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// mockMaterialSource streams a fixed set of materials.
type mockMaterialSource struct {
	name        string
	materials   []domain.Material
	loadErrs    []error
	validateErr error
	events      chan domain.MaterialEvent
}

var _ driven.MaterialSource = (*mockMaterialSource)(nil)

func (m *mockMaterialSource) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *mockMaterialSource) Validate(_ context.Context) error { return m.validateErr }

func (m *mockMaterialSource) Load(_ context.Context) (<-chan domain.Material, <-chan error) {
	matCh := make(chan domain.Material, len(m.materials))
	errCh := make(chan error, len(m.loadErrs))
	for _, mat := range m.materials {
		matCh <- mat
	}
	for _, err := range m.loadErrs {
		errCh <- err
	}
	close(matCh)
	close(errCh)
	return matCh, errCh
}

func (m *mockMaterialSource) Watch(_ context.Context) (<-chan domain.MaterialEvent, error) {
	if m.events == nil {
		m.events = make(chan domain.MaterialEvent)
	}
	return m.events, nil
}

func (m *mockMaterialSource) Close() error { return nil }

// passthroughNormaliser returns material content as-is for any extension.
type passthroughNormaliser struct {
	err error
}

var _ driven.NormaliserRegistry = (*passthroughNormaliser)(nil)

func (n *passthroughNormaliser) Normalise(_ context.Context, material *domain.Material) (string, error) {
	if n.err != nil {
		return "", n.err
	}
	return string(material.Content), nil
}

func (n *passthroughNormaliser) Supported(_ string) bool { return true }

// wholeTextChunker emits the full text as a single chunk.
type wholeTextChunker struct{}

var _ driven.Chunker = (*wholeTextChunker)(nil)

func (wholeTextChunker) Process(source, text string) ([]domain.Chunk, bool) {
	if text == "" {
		return nil, false
	}
	return []domain.Chunk{domain.NewChunk(source, 0, text)}, false
}
