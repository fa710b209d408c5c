package domain

// RawSource represents opaque bytes awaiting text extraction.
// It is the input of the extraction collaborator.
type RawSource struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// Name is an optional display label.
	Name string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Kind is the origin tag assigned to the resulting document.
	Kind DocumentKind

	// Content is the raw bytes.
	Content []byte

	// Metadata contains source-specific key-value pairs.
	Metadata map[string]any
}

// Extraction is the output of the extraction collaborator.
type Extraction struct {
	// Title is the detected title, if any.
	Title string

	// Text is the extracted plain text.
	Text string

	// Metadata describes the extraction (format, MIME type, page count).
	Metadata map[string]any
}

// ChangeType represents the type of file change.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns a human-readable name for the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileChange is a change event emitted by a directory watcher.
type FileChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the absolute path of the affected file.
	Path string
}
