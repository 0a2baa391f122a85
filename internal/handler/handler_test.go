package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/casemate-ai/casemate-gateway/internal/llm"
	"github.com/casemate-ai/casemate-gateway/internal/middleware"
	"github.com/casemate-ai/casemate-gateway/internal/model"
	"github.com/casemate-ai/casemate-gateway/internal/store"
)

// memStore is a minimal in-memory ConversationStore for handler tests.
type memStore struct {
	mu            sync.Mutex
	conversations map[string]*model.Conversation
}

func newMemStore() *memStore {
	return &memStore{conversations: make(map[string]*model.Conversation)}
}

func (s *memStore) Insert(ctx context.Context, conv *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conv.ID] = conv
	return nil
}

func (s *memStore) ListByOwner(ctx context.Context, userID string, limit int64) ([]model.Conversation, error) {
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

func (s *memStore) FindByIDAndOwner(ctx context.Context, id, userID string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok || conv.UserID != userID {
		return nil, store.ErrNotFound
	}
	return conv, nil
}

func (s *memStore) AppendMessages(ctx context.Context, id, userID string, msgs ...model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok || conv.UserID != userID {
		return store.ErrNotFound
	}
	conv.Messages = append(conv.Messages, msgs...)
	return nil
}

func (s *memStore) Delete(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok || conv.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.conversations, id)
	return nil
}

// stubLLM answers every completion with a fixed reply.
type stubLLM struct {
	mu    sync.Mutex
	reply string
	calls int
}

func (f *stubLLM) Complete(ctx context.Context, history []llm.ChatMessage) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.reply
}

// asUser injects a verified subject id the way the auth middleware does.
func asUser(userID string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func chatRouter(messageHandler *MessageHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/chats/{id}", func(r chi.Router) {
		r.Post("/messages", messageHandler.Add)
		r.Post("/summarize", messageHandler.Summarize)
	})
	return r
}
