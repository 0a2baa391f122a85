package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/casemate-ai/casemate-gateway/internal/events"
	"github.com/casemate-ai/casemate-gateway/internal/llm"
	"github.com/casemate-ai/casemate-gateway/internal/model"
	"github.com/casemate-ai/casemate-gateway/internal/store"
	"github.com/casemate-ai/casemate-gateway/pkg/logger"
	"github.com/casemate-ai/casemate-gateway/pkg/metrics"
)

// summarizeInstruction is the synthetic user turn appended to the history
// when summarizing a conversation.
const summarizeInstruction = "Please provide a concise summary of the key points and legal topics discussed in the above conversation. Format the summary with a title and bullet points."

// summaryTooShort is returned without an inference call when a
// conversation has fewer than two stored messages.
const summaryTooShort = "This conversation is too short to summarize."

// MessageService handles the message pipeline: history assembly, role
// branching, inference, and persistence sequencing.
type MessageService struct {
	store     store.ConversationStore
	llm       llm.Client
	publisher events.Publisher
	logger    *logger.Logger
}

// NewMessageService creates a new message service.
func NewMessageService(st store.ConversationStore, client llm.Client, pub events.Publisher, log *logger.Logger) *MessageService {
	return &MessageService{
		store:     st,
		llm:       client,
		publisher: pub,
		logger:    log,
	}
}

// AddUserMessage appends a user turn to the conversation, obtains the
// assistant reply for the full history, persists both turns in one atomic
// append (user first, assistant second), and returns the assistant
// message.
func (s *MessageService) AddUserMessage(ctx context.Context, userID, conversationID, content string) (*model.Message, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	conv, err := s.store.FindByIDAndOwner(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	history := historyFor(conv.Messages)
	history = append(history, llm.ChatMessage{Role: string(model.RoleUser), Content: content})

	reply := s.llm.Complete(ctx, history)

	userMsg := model.NewMessage(model.RoleUser, content)
	assistantMsg := model.NewMessage(model.RoleAssistant, reply)

	if err := s.store.AppendMessages(ctx, conversationID, userID, userMsg, assistantMsg); err != nil {
		return nil, err
	}

	metrics.MessagesTotal.WithLabelValues(string(model.RoleUser)).Inc()
	metrics.MessagesTotal.WithLabelValues(string(model.RoleAssistant)).Inc()
	s.publishAppended(ctx, userID, conversationID, model.RoleUser)
	s.publishAppended(ctx, userID, conversationID, model.RoleAssistant)

	return &assistantMsg, nil
}

// AddSystemMessage appends a system turn to the conversation matched by
// id and owner. No inference call is made and no assistant message is
// produced. A miss on id+owner is store.ErrNotFound.
func (s *MessageService) AddSystemMessage(ctx context.Context, userID, conversationID, content string) error {
	if content == "" {
		return ErrEmptyContent
	}

	systemMsg := model.NewMessage(model.RoleSystem, content)
	if err := s.store.AppendMessages(ctx, conversationID, userID, systemMsg); err != nil {
		return err
	}

	metrics.MessagesTotal.WithLabelValues(string(model.RoleSystem)).Inc()
	s.publishAppended(ctx, userID, conversationID, model.RoleSystem)

	return nil
}

// Summarize asks the model for a structured summary of the stored
// history. The summary is a read-only side query: neither the instruction
// nor the result is persisted. Conversations with fewer than two messages
// short-circuit to a fixed reply with no inference call.
func (s *MessageService) Summarize(ctx context.Context, userID, conversationID string) (string, error) {
	conv, err := s.store.FindByIDAndOwner(ctx, conversationID, userID)
	if err != nil {
		return "", err
	}

	if len(conv.Messages) < 2 {
		return summaryTooShort, nil
	}

	history := historyFor(conv.Messages)
	history = append(history, llm.ChatMessage{Role: string(model.RoleUser), Content: summarizeInstruction})

	s.logger.Debug("summarizing conversation",
		zap.String("conversation_id", conversationID),
		zap.Int("history_len", len(history)),
	)

	return s.llm.Complete(ctx, history), nil
}

// historyFor maps stored messages, in stored order, to the LLM wire
// format.
func historyFor(msgs []model.Message) []llm.ChatMessage {
	history := make([]llm.ChatMessage, 0, len(msgs)+1)
	for _, msg := range msgs {
		history = append(history, llm.ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return history
}

func (s *MessageService) publishAppended(ctx context.Context, userID, conversationID string, role model.Role) {
	s.publisher.Publish(ctx, events.Event{
		ID:             uuid.New().String(),
		Type:           events.TypeMessageAppended,
		ConversationID: conversationID,
		UserID:         userID,
		Role:           string(role),
		CreatedAt:      time.Now().UTC(),
	})
}
