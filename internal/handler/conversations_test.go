package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casemate-ai/casemate-gateway/internal/events"
	"github.com/casemate-ai/casemate-gateway/internal/model"
	"github.com/casemate-ai/casemate-gateway/internal/service"
	"github.com/casemate-ai/casemate-gateway/pkg/logger"
)

func setupConversations(t *testing.T) http.Handler {
	t.Helper()
	st := newMemStore()
	svc := service.NewConversationService(st, events.Noop{}, logger.NewNop())
	h := NewConversationHandler(svc, logger.NewNop())

	r := chi.NewRouter()
	r.Route("/api/v1/chats", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
	return asUser("user-1", r)
}

func TestConversationLifecycle(t *testing.T) {
	handler := setupConversations(t)

	// Create.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/chats", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Empty(t, created.Messages)

	// List includes the new conversation.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []model.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Delete succeeds once.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/chats/"+created.ID, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Second delete is a 404.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/chats/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUnknownConversation(t *testing.T) {
	handler := setupConversations(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/chats/never-existed", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}
