package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/studymate-labs/studymate-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// chunk and answer store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.studymate/data/studymate.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".studymate", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "studymate.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// AnswerStore returns an AnswerStore interface backed by this store.
func (s *Store) AnswerStore() driven.AnswerStore {
	return &answerStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// Put upserts entries keyed by chunk id. The whole batch runs in one
// transaction: a dimension mismatch rolls everything back.
func (s *chunkStore) Put(ctx context.Context, entries []domain.StoreEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.insertEntries(ctx, tx, entries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

// ReplaceSource atomically swaps all chunks of one source for the given
// entries. The delete and inserts share one transaction, so the old
// chunks stay queryable until the replacement commits.
func (s *chunkStore) ReplaceSource(ctx context.Context, source string, entries []domain.StoreEntry) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE source = ?", source); err != nil {
		return fmt.Errorf("deleting source chunks: %w", err)
	}

	if err := s.insertEntries(ctx, tx, entries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing source replacement: %w", err)
	}
	return nil
}

// DeleteSource removes all chunks of a source.
func (s *chunkStore) DeleteSource(ctx context.Context, source string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE source = ?", source); err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

// Query returns the top-k entries by cosine similarity to the query
// embedding. Ranking happens in Go over rows scanned in insertion order,
// which makes the tie-break deterministic.
func (s *chunkStore) Query(ctx context.Context, embedding []float32, k int) ([]domain.ChunkHit, error) {
	if k <= 0 {
		return []domain.ChunkHit{}, nil
	}

	dims, err := s.schemaDimensions(ctx, s.store.db)
	if err != nil {
		return nil, err
	}
	if dims == 0 {
		return []domain.ChunkHit{}, nil
	}
	if len(embedding) != dims {
		return nil, &domain.SchemaMismatchError{Expected: dims, Actual: len(embedding)}
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source, seq, content, embedding
		FROM chunks ORDER BY inserted_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var hits []domain.ChunkHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.Source, &chunk.Seq, &chunk.Content, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		hits = append(hits, domain.ChunkHit{
			Chunk:      chunk,
			Similarity: cosineSimilarity(embedding, bytesToFloat32Slice(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	// Stable sort keeps the insertion-order tie-break from the scan.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if k > len(hits) {
		k = len(hits)
	}
	if hits == nil {
		return []domain.ChunkHit{}, nil
	}
	return hits[:k], nil
}

// Reset drops all entries and the recorded dimensionality.
func (s *chunkStore) Reset(ctx context.Context) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM store_schema"); err != nil {
		return fmt.Errorf("deleting schema row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w", err)
	}
	return nil
}

// Count returns the number of stored entries.
func (s *chunkStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// Sources returns the distinct source identifiers currently stored.
func (s *chunkStore) Sources(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT DISTINCT source FROM chunks ORDER BY source")
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	sources := make([]string, 0)
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		sources = append(sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}
	return sources, nil
}

// Dimensions returns the schematised dimensionality, or 0 when empty.
func (s *chunkStore) Dimensions(ctx context.Context) (int, error) {
	return s.schemaDimensions(ctx, s.store.db)
}

// Close closes the underlying store.
func (s *chunkStore) Close() error {
	return s.store.Close()
}

// querier abstracts *sql.DB and *sql.Tx for schema reads.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// schemaDimensions reads the recorded dimensionality, 0 when unset.
func (s *chunkStore) schemaDimensions(ctx context.Context, q querier) (int, error) {
	var dims int
	row := q.QueryRowContext(ctx, "SELECT dimensions FROM store_schema WHERE id = 1")
	if err := row.Scan(&dims); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("reading store schema: %w", err)
	}
	return dims, nil
}

// insertEntries validates dimensionality against the store schema and
// upserts the entries inside the caller's transaction.
func (s *chunkStore) insertEntries(ctx context.Context, tx *sql.Tx, entries []domain.StoreEntry) error {
	if len(entries) == 0 {
		return nil
	}

	dims, err := s.schemaDimensions(ctx, tx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		// An empty vector would read as "schema unset" below and slip
		// past the all-or-nothing check.
		if len(entry.Embedding) == 0 {
			return fmt.Errorf("%w: chunk %s has an empty embedding", domain.ErrInvalidInput, entry.Chunk.ID)
		}
		if dims == 0 {
			dims = len(entry.Embedding)
			continue
		}
		if len(entry.Embedding) != dims {
			return &domain.SchemaMismatchError{Expected: dims, Actual: len(entry.Embedding)}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO store_schema (id, dimensions) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET dimensions = excluded.dimensions
	`, dims); err != nil {
		return fmt.Errorf("recording store schema: %w", err)
	}

	var nextInsert int64
	row := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(inserted_at), 0) FROM chunks")
	if err := row.Scan(&nextInsert); err != nil {
		return fmt.Errorf("reading insertion counter: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, source, seq, content, embedding, metadata, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			seq = excluded.seq,
			content = excluded.content,
			embedding = excluded.embedding,
			metadata = excluded.metadata
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		metadataJSON, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		nextInsert++
		embeddingBlob := float32SliceToBytes(entry.Embedding)
		if _, err := stmt.ExecContext(ctx, entry.Chunk.ID, entry.Chunk.Source, entry.Chunk.Seq,
			entry.Chunk.Content, embeddingBlob, string(metadataJSON), nextInsert); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}
	return nil
}

// ==================== Answer Store ====================

// answerStore implements driven.AnswerStore.
type answerStore struct {
	store *Store
}

var _ driven.AnswerStore = (*answerStore)(nil)

// SaveAnswer stores an answer.
func (s *answerStore) SaveAnswer(ctx context.Context, answer *domain.Answer) error {
	sourcesJSON, err := json.Marshal(answer.ContextSources)
	if err != nil {
		return fmt.Errorf("marshalling context sources: %w", err)
	}
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO answers (id, kind, title, question, body, used_context, context_sources, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			title = excluded.title,
			question = excluded.question,
			body = excluded.body,
			used_context = excluded.used_context,
			context_sources = excluded.context_sources,
			model = excluded.model
	`, answer.ID, answer.Kind.String(), answer.Title, answer.Question, answer.Body,
		answer.UsedContext, string(sourcesJSON), answer.Model, answer.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving answer: %w", err)
	}
	return nil
}

// GetAnswer retrieves an answer by ID.
func (s *answerStore) GetAnswer(ctx context.Context, id string) (*domain.Answer, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, kind, title, question, body, used_context, context_sources, model, created_at
		FROM answers WHERE id = ?
	`, id)

	answer, err := scanAnswer(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return answer, nil
}

// ListAnswers returns answers ordered newest first.
func (s *answerStore) ListAnswers(ctx context.Context, limit int) ([]domain.Answer, error) {
	query := `
		SELECT id, kind, title, question, body, used_context, context_sources, model, created_at
		FROM answers ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying answers: %w", err)
	}
	defer rows.Close()

	answers := make([]domain.Answer, 0)
	for rows.Next() {
		answer, err := scanAnswer(rows.Scan)
		if err != nil {
			return nil, err
		}
		answers = append(answers, *answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating answers: %w", err)
	}
	return answers, nil
}

// scanAnswer scans a single answer row via the given scan function.
func scanAnswer(scan func(dest ...any) error) (*domain.Answer, error) {
	var answer domain.Answer
	var kind, sourcesJSON string
	var createdAt sql.NullTime
	if err := scan(&answer.ID, &kind, &answer.Title, &answer.Question, &answer.Body,
		&answer.UsedContext, &sourcesJSON, &answer.Model, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning answer: %w", err)
	}

	answer.Kind = domain.AnswerKind(kind)
	if err := json.Unmarshal([]byte(sourcesJSON), &answer.ContextSources); err != nil {
		return nil, fmt.Errorf("unmarshaling context sources: %w", err)
	}
	if createdAt.Valid {
		answer.CreatedAt = createdAt.Time
	}
	return &answer, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes cosine similarity between two vectors of
// equal length. Zero vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
