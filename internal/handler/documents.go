package handler

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/casemate-ai/casemate-gateway/internal/middleware"
	"github.com/casemate-ai/casemate-gateway/internal/service"
	"github.com/casemate-ai/casemate-gateway/pkg/logger"
)

// DocumentHandler handles document analysis endpoints.
type DocumentHandler struct {
	service *service.DocumentService
	logger  *logger.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(svc *service.DocumentService, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: svc,
		logger:  log,
	}
}

// Analyze handles POST /api/v1/documents/analyze
//
// Multipart form: "file" is the document, "prompt_text" optionally
// overrides the default analysis instruction.
func (h *DocumentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, middleware.MaxUploadBytes)
	if err := r.ParseMultipartForm(middleware.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	promptText := r.FormValue("prompt_text")
	if err := middleware.ValidatePromptText(promptText); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	result, err := h.service.Analyze(ctx, data, header.Filename, promptText)
	if err != nil {
		h.logger.Warn("document analysis failed",
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
