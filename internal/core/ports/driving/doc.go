// Package driving defines what the CLI and the MCP server may ask of the
// notebook: ingestion, retrieval, chat, settings and directory watching.
// Implementations live in internal/core/services.
package driving
