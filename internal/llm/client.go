// Package llm provides the inference client for the local model server.
package llm

import (
	"context"
)

// ChatMessage represents one role-tagged turn sent to the model.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Fallback replies. The inference layer degrades gracefully: the chat
// endpoint always returns some assistant content, so failures at this
// boundary become fixed strings instead of errors.
const (
	FallbackEmptyReply  = "Sorry, I couldn't generate a response."
	FallbackUnreachable = "Sorry, I am currently unable to connect to the AI model."
	FallbackUnexpected  = "An unexpected error occurred while generating a response."
)

// Client sends an ordered message history to the inference backend and
// returns its reply text. Implementations never trim, reorder, or retry;
// transport and decoding failures surface as fallback strings, never as
// errors to the caller.
type Client interface {
	Complete(ctx context.Context, history []ChatMessage) string
}
