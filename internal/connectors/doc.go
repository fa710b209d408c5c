// Package connectors provides the adapters that bring raw content into the
// notebook from outside the process: a directory watcher (filesystem) and
// a web page fetcher (web).
//
// Connectors only retrieve bytes. Text extraction is done by the
// extractors package and indexing by the core services.
package connectors
