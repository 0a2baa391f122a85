// Package model defines data structures for the gateway.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message represents one turn in a conversation. Messages are immutable
// once appended; a conversation only ever grows.
type Message struct {
	ID        string    `json:"id" bson:"id"`
	Role      Role      `json:"role" bson:"role"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// NewMessage creates a message with a fresh identifier and timestamp.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// AddMessageRequest is the request body for appending a message to a
// conversation. Role defaults to "user" when absent.
type AddMessageRequest struct {
	Content string `json:"message_content"`
	Role    string `json:"role,omitempty"`
}

// SummaryResponse is the response body for a conversation summary.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// AnalysisResponse is the response body for a document analysis.
type AnalysisResponse struct {
	AnalysisResult string `json:"analysis_result"`
	OriginalText   string `json:"original_text"`
}

// UserResponse is the response body for the current-user endpoint.
type UserResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}
