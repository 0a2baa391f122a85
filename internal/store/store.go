// Package store provides persistence for conversations.
package store

import (
	"context"
	"errors"

	"github.com/casemate-ai/casemate-gateway/internal/model"
)

// ErrNotFound is returned when no conversation matches both the requested
// id and the requesting owner. The two causes are indistinguishable so a
// caller cannot probe for the existence of other users' conversations.
var ErrNotFound = errors.New("conversation not found")

// ConversationStore is the repository abstraction over the conversation
// collection. Every read and mutation is keyed by id and owner together.
//
// AppendMessages relies on the store's per-document atomic positional push
// as the sole concurrency mechanism: two concurrent appends to the same
// conversation both land without lost writes, but their relative order is
// unspecified. There is no per-conversation lock above the store.
type ConversationStore interface {
	// Insert stores a new conversation.
	Insert(ctx context.Context, conv *model.Conversation) error

	// ListByOwner returns conversations owned by userID, capped at limit.
	ListByOwner(ctx context.Context, userID string, limit int64) ([]model.Conversation, error)

	// FindByIDAndOwner returns the conversation with the given id if it is
	// owned by userID, or ErrNotFound.
	FindByIDAndOwner(ctx context.Context, id, userID string) (*model.Conversation, error)

	// AppendMessages atomically appends messages, in order, to the
	// conversation matched by id and owner. Returns ErrNotFound when no
	// document matched.
	AppendMessages(ctx context.Context, id, userID string, msgs ...model.Message) error

	// Delete removes the conversation matched by id and owner. Returns
	// ErrNotFound when no document matched.
	Delete(ctx context.Context, id, userID string) error
}
