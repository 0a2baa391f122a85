package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/casemate-ai/casemate-gateway/internal/events"
	"github.com/casemate-ai/casemate-gateway/internal/model"
	"github.com/casemate-ai/casemate-gateway/internal/store"
	"github.com/casemate-ai/casemate-gateway/pkg/logger"
	"github.com/casemate-ai/casemate-gateway/pkg/metrics"
)

// maxConversationList caps how many conversations a single list call
// returns.
const maxConversationList = 100

// ConversationService handles conversation lifecycle operations.
type ConversationService struct {
	store     store.ConversationStore
	publisher events.Publisher
	logger    *logger.Logger
}

// NewConversationService creates a new conversation service.
func NewConversationService(st store.ConversationStore, pub events.Publisher, log *logger.Logger) *ConversationService {
	return &ConversationService{
		store:     st,
		publisher: pub,
		logger:    log,
	}
}

// List returns the caller's conversations, capped at 100. Ordering is
// whatever the store returns.
func (s *ConversationService) List(ctx context.Context, userID string) ([]model.Conversation, error) {
	return s.store.ListByOwner(ctx, userID, maxConversationList)
}

// Create stores a new empty conversation owned by the caller.
func (s *ConversationService) Create(ctx context.Context, userID string) (*model.Conversation, error) {
	conv := model.NewConversation(userID)

	if err := s.store.Insert(ctx, conv); err != nil {
		return nil, err
	}

	s.logger.Info("conversation created",
		zap.String("conversation_id", conv.ID),
		zap.String("user_id", userID),
	)
	metrics.ConversationsTotal.WithLabelValues("create").Inc()
	s.publisher.Publish(ctx, events.Event{
		ID:             uuid.New().String(),
		Type:           events.TypeConversationCreated,
		ConversationID: conv.ID,
		UserID:         userID,
		CreatedAt:      conv.CreatedAt,
	})

	return conv, nil
}

// Delete removes the conversation matched by id and owner. A miss on
// either is store.ErrNotFound; the caller cannot tell the two apart.
func (s *ConversationService) Delete(ctx context.Context, userID, conversationID string) error {
	if err := s.store.Delete(ctx, conversationID, userID); err != nil {
		return err
	}

	s.logger.Info("conversation deleted",
		zap.String("conversation_id", conversationID),
		zap.String("user_id", userID),
	)
	metrics.ConversationsTotal.WithLabelValues("delete").Inc()
	s.publisher.Publish(ctx, events.Event{
		ID:             uuid.New().String(),
		Type:           events.TypeConversationDeleted,
		ConversationID: conversationID,
		UserID:         userID,
		CreatedAt:      time.Now().UTC(),
	})

	return nil
}
