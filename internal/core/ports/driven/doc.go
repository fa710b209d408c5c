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
//   - PostProcessorPipeline: Turns a document into chunks (the chunker stage)
//   - ChunkIndex: Holds the aggregate chunk set, partitioned by document
//   - Scorer: Relevance of one chunk to one query
//   - DocumentStore: Document persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ExtractorRegistry: Text extraction. Without it only pre-extracted text can be ingested.
//   - Fetcher: URL retrieval. Without it URL ingestion is disabled.
//   - Watcher: Directory change events. Without it watch mode is disabled.
//   - AnswerGenerator: Phrases answers from evidence. Without it chat is disabled.
//   - ConversationStore: Chat history persistence.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
