// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/casemate-ai/casemate-gateway/internal/extract"
	"github.com/casemate-ai/casemate-gateway/internal/service"
	"github.com/casemate-ai/casemate-gateway/internal/store"
)

// notFoundDetail deliberately merges "does not exist" and "not yours" so
// responses never leak the existence of other users' conversations.
const notFoundDetail = "Conversation not found or you do not have permission to access it."

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeServiceError maps pipeline errors onto transport status codes.
// Anything unrecognized becomes a generic 500; details stay in the logs.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundDetail)
	case errors.Is(err, service.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, service.ErrEmptyContent.Error())
	case errors.Is(err, service.ErrNoExtractableText):
		writeError(w, http.StatusBadRequest, service.ErrNoExtractableText.Error())
	case errors.Is(err, extract.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, extract.ErrUnsupportedFormat.Error())
	case errors.Is(err, extract.ErrExtractionFailed):
		writeError(w, http.StatusBadRequest, extract.ErrExtractionFailed.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
