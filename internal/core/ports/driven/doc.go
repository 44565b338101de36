// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ChunkStore: Chunk + embedding persistence and similarity query
//   - MaterialSource: Streams raw course materials
//   - Normaliser: Extracts plain text from a raw material
//   - Chunker: Splits normalised text into chunks
//   - SentenceTokenizer: Sentence segmentation for the chunker
//   - ConfigStore: Application configuration
//   - AnswerStore: Generated answer persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Vector embeddings. Without it, retrieval returns
//     empty context and answers proceed on general knowledge.
//   - LLMService: Answer generation. Without it, ask/solve report
//     a configuration error; refresh and search still work.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
