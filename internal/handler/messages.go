package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/casemate-ai/casemate-gateway/internal/middleware"
	"github.com/casemate-ai/casemate-gateway/internal/model"
	"github.com/casemate-ai/casemate-gateway/internal/service"
	"github.com/casemate-ai/casemate-gateway/pkg/logger"
)

// MessageHandler handles message and summary endpoints.
type MessageHandler struct {
	service *service.MessageService
	logger  *logger.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(svc *service.MessageService, log *logger.Logger) *MessageHandler {
	return &MessageHandler{
		service: svc,
		logger:  log,
	}
}

// Add handles POST /api/v1/chats/{id}/messages
//
// The payload role is decoded once here into a closed set: user turns get
// an assistant reply, system turns are stored without one, anything else
// is rejected before the pipeline runs.
func (h *MessageHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	conversationID := chi.URLParam(r, "id")

	var req model.AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateMessageContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch req.Role {
	case "", string(model.RoleUser):
		assistantMsg, err := h.service.AddUserMessage(ctx, userID, conversationID, req.Content)
		if err != nil {
			h.logger.Warn("failed to add user message",
				zap.String("conversation_id", conversationID),
				zap.Error(err),
			)
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, assistantMsg)

	case string(model.RoleSystem):
		if err := h.service.AddSystemMessage(ctx, userID, conversationID, req.Content); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusBadRequest, "unsupported message role")
	}
}

// Summarize handles POST /api/v1/chats/{id}/summarize
func (h *MessageHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	conversationID := chi.URLParam(r, "id")

	summary, err := h.service.Summarize(ctx, userID, conversationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SummaryResponse{Summary: summary})
}
