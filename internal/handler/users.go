package handler

import (
	"net/http"

	"github.com/casemate-ai/casemate-gateway/internal/middleware"
	"github.com/casemate-ai/casemate-gateway/internal/model"
)

// UserHandler handles the current-user endpoint.
type UserHandler struct{}

// NewUserHandler creates a new user handler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	writeJSON(w, http.StatusOK, model.UserResponse{
		UID:   middleware.GetUserID(ctx),
		Email: middleware.GetEmail(ctx),
	})
}
