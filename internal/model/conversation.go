package model

import (
	"time"

	"github.com/google/uuid"
)

// Conversation represents an ordered message history owned by exactly one
// user. The stored message order is the LLM context order.
type Conversation struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Messages  []Message `json:"messages" bson:"messages"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewConversation creates an empty conversation owned by the given user.
func NewConversation(userID string) *Conversation {
	return &Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Messages:  []Message{},
		CreatedAt: time.Now().UTC(),
	}
}
