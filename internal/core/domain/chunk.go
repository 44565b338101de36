package domain

import "strconv"

// Chunk is a bounded, overlapping segment of a material's text.
// Chunks are created by the chunker and read-only afterward.
type Chunk struct {
	// ID is derived deterministically from Source and Seq.
	// No two chunks of the same source share a sequence index.
	ID string

	// Source identifies the material the chunk came from.
	Source string

	// Seq is the zero-based position of the chunk within its source.
	Seq int

	// Content is the chunk text.
	Content string
}

// ChunkID derives the deterministic chunk identifier for a source and
// sequence index. The same (source, seq) pair always yields the same id,
// which is what makes re-ingestion an upsert rather than a duplicate.
func ChunkID(source string, seq int) string {
	return source + "_" + strconv.Itoa(seq)
}

// NewChunk builds a chunk with its derived identifier.
func NewChunk(source string, seq int, content string) Chunk {
	return Chunk{
		ID:      ChunkID(source, seq),
		Source:  source,
		Seq:     seq,
		Content: content,
	}
}

// StoreEntry is a chunk with its embedding and metadata, as persisted by
// the chunk store. Entries are never mutated; they are removed only by an
// explicit reset, a source replace, or a source delete.
type StoreEntry struct {
	// Chunk is the stored chunk.
	Chunk Chunk

	// Embedding is the chunk's dense vector. All entries in one store
	// instance have identical dimensionality.
	Embedding []float32

	// Metadata carries optional string attributes (e.g. file path).
	Metadata map[string]string
}

// ChunkHit is a query result: a stored chunk ranked by similarity to the
// query embedding. Results are ordered by similarity descending with ties
// broken by insertion order.
type ChunkHit struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Similarity is the cosine similarity to the query embedding,
	// in [-1, 1], higher is closer.
	Similarity float64
}
