// Package domain defines the core business entities for StudyMate.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Material: A raw course document supplied by a material source
//   - Chunk: A bounded, overlapping segment of a material's text
//   - StoreEntry: A chunk with its embedding, as persisted
//   - Assignment / Answer: A task to solve and the generated result
//   - CorpusStatus: The ingestion lifecycle of the chunk corpus
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
