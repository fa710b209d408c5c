// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The retrieval engine is three stages: the Indexer chunks documents and
// keeps the chunk set current, the Ranker scores a snapshot of that set
// against a query, and NotebookService fronts both. The remaining services
// (ingest, chat, settings, watch) sit on top of NotebookService.
package services
