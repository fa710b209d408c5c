// Package sqlite provides a SQLite-based implementation of the persistence ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. It implements two store interfaces through a single database connection:
//
//   - DocumentStore: Document persistence (chunks are derived and never stored)
//   - ConversationStore: Chat history persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.notebook/data/notebook.db
package sqlite
