// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - ChunkStore: chunk and embedding persistence with similarity queries
//   - AnswerStore: generated answer persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// The embedding dimensionality is recorded in a single-row store_schema table,
// fixed by the first successful write and cleared only by a full reset.
//
// # Data Location
//
// By default, the database is stored at ~/.studymate/data/studymate.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
