package domain

import "time"

// MessageRole identifies who authored a conversation message.
type MessageRole string

// Message roles.
const (
	// RoleUser is a question asked by the user.
	RoleUser MessageRole = "user"

	// RoleAssistant is a generated answer.
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn of the conversation history.
// Conversation history is owned separately from documents and chunks.
type Message struct {
	// ID is the unique identifier.
	ID string `json:"id"`

	// Role is the author of the message.
	Role MessageRole `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Sources are the documents cited by an assistant message.
	Sources []DocumentRef `json:"sources,omitempty"`

	// Confidence is copied from the answer for assistant messages.
	Confidence float64 `json:"confidence,omitempty"`

	// CreatedAt is when the message was recorded.
	CreatedAt time.Time `json:"created_at"`
}
