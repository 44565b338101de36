package domain

import (
	"errors"
	"fmt"
)

// Core error values. Services and adapters wrap these with %w so callers
// can classify failures with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the caller supplied invalid data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required capability has no
	// configuration (e.g. no LLM provider set up).
	ErrNotConfigured = errors.New("not configured")

	// ErrUnsupportedFormat indicates no normaliser handles the
	// material's file extension. The material is skipped.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrRefreshInProgress indicates a corpus refresh is already
	// running; concurrent refreshes are rejected, not queued.
	ErrRefreshInProgress = errors.New("refresh already in progress")

	// ErrTokenizationDegraded indicates sentence segmentation failed and
	// the chunker fell back to a single whole-text chunk. Recoverable.
	ErrTokenizationDegraded = errors.New("tokenization degraded")

	// ErrEmbeddingUnavailable indicates the embedding capability failed
	// or returned an unusable vector. Retrieval degrades to an empty
	// context; ingestion skips the affected chunks. Recoverable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the answer-generation capability is
	// unreachable or not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrGenerationTimeout indicates the answerer exceeded its enforced
	// deadline. Recoverable; callers may retry with backoff.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrStoreUnavailable indicates the chunk store failed. Fatal for
	// the current operation; results are never silently stale.
	ErrStoreUnavailable = errors.New("chunk store unavailable")

	// ErrSchemaMismatch indicates an embedding's dimensionality does not
	// match the store schema. The offending call fails whole; the store
	// is unchanged. See SchemaMismatchError for the dimensions involved.
	ErrSchemaMismatch = errors.New("embedding dimension mismatch")
)

// SchemaMismatchError reports a rejected embedding dimensionality.
// It matches ErrSchemaMismatch under errors.Is.
type SchemaMismatchError struct {
	// Expected is the dimensionality the store is schematised to.
	Expected int

	// Actual is the dimensionality of the rejected vector.
	Actual int
}

// Error implements the error interface.
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: store expects %d, got %d", e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrSchemaMismatch) hold for this type.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
