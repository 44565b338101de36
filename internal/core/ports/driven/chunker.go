package driven

import "github.com/studymate-labs/studymate-cli/internal/core/domain"

// Chunker splits normalised document text into retrievable chunks.
type Chunker interface {
	// Process splits text into chunks for source. Chunk IDs derive
	// from the source name and the chunk sequence so a re-ingested
	// document replaces its previous chunks. The degraded flag
	// reports that sentence tokenization failed and the whole text
	// was kept as a single chunk.
	Process(source, text string) (chunks []domain.Chunk, degraded bool)
}
