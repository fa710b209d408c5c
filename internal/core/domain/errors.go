package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDocument indicates a document was rejected at ingestion.
	// Nothing from a rejected document is ever indexed.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrUnsupportedType indicates no extractor handles a content type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrStoreUnavailable indicates a required store was not configured.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrWatcherClosed indicates the watcher has been closed.
	ErrWatcherClosed = errors.New("watcher closed")

	// ErrNotConfigured indicates an optional collaborator is missing.
	ErrNotConfigured = errors.New("not configured")
)

// ExtractionError is returned by text extraction collaborators.
// The engine never retries extraction.
type ExtractionError struct {
	// URI identifies what was being extracted.
	URI string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.URI == "" {
		return fmt.Sprintf("extraction failed: %v", e.Err)
	}
	return fmt.Sprintf("extraction failed for %s: %v", e.URI, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError wraps err as an ExtractionError for uri.
func NewExtractionError(uri string, err error) *ExtractionError {
	return &ExtractionError{URI: uri, Err: err}
}
