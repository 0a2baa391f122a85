package service

import (
	"context"
	"sync"

	"github.com/casemate-ai/casemate-gateway/internal/llm"
	"github.com/casemate-ai/casemate-gateway/internal/model"
	"github.com/casemate-ai/casemate-gateway/internal/store"
)

// fakeStore is an in-memory ConversationStore. Every lookup is keyed by
// id and owner together, like the Mongo implementation.
type fakeStore struct {
	mu            sync.Mutex
	conversations map[string]*model.Conversation
	insertErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{conversations: make(map[string]*model.Conversation)}
}

func (s *fakeStore) Insert(ctx context.Context, conv *model.Conversation) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *conv
	copied.Messages = append([]model.Message{}, conv.Messages...)
	s.conversations[conv.ID] = &copied
	return nil
}

func (s *fakeStore) ListByOwner(ctx context.Context, userID string, limit int64) ([]model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []model.Conversation{}
	for _, conv := range s.conversations {
		if conv.UserID == userID && int64(len(result)) < limit {
			result = append(result, *conv)
		}
	}
	return result, nil
}

func (s *fakeStore) FindByIDAndOwner(ctx context.Context, id, userID string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok || conv.UserID != userID {
		return nil, store.ErrNotFound
	}
	copied := *conv
	copied.Messages = append([]model.Message{}, conv.Messages...)
	return &copied, nil
}

func (s *fakeStore) AppendMessages(ctx context.Context, id, userID string, msgs ...model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok || conv.UserID != userID {
		return store.ErrNotFound
	}
	conv.Messages = append(conv.Messages, msgs...)
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok || conv.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.conversations, id)
	return nil
}

// stored returns the live stored conversation, bypassing owner checks.
func (s *fakeStore) stored(id string) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations[id]
}

// fakeLLM records every history it receives and answers with a fixed
// reply.
type fakeLLM struct {
	mu        sync.Mutex
	reply     string
	histories [][]llm.ChatMessage
}

func (f *fakeLLM) Complete(ctx context.Context, history []llm.ChatMessage) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := append([]llm.ChatMessage{}, history...)
	f.histories = append(f.histories, copied)
	return f.reply
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.histories)
}
