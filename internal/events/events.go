// Package events publishes conversation lifecycle events to NATS.
package events

import (
	"context"
	"time"
)

// Type represents the type of conversation event.
type Type string

const (
	TypeConversationCreated Type = "conversation.created"
	TypeConversationDeleted Type = "conversation.deleted"
	TypeMessageAppended     Type = "message.appended"
)

// Event describes one conversation lifecycle change. Events carry ids and
// roles only, never message content.
type Event struct {
	ID             string    `json:"id"`
	Type           Type      `json:"type"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Role           string    `json:"role,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Publisher emits events. Publishing is fire-and-forget: a failed publish
// is logged and counted but never fails the request that produced it.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Noop is a Publisher that discards everything. Used when no NATS URL is
// configured.
type Noop struct{}

// Publish discards the event.
func (Noop) Publish(ctx context.Context, ev Event) {}
