package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// DeckInputErrorResponse is returned when a new deck fails validation. Input
// echoes what was submitted so a client can redisplay the form.
type DeckInputErrorResponse struct {
	Error  string            `json:"error"`
	Input  domain.DeckInput  `json:"input"`
	Fields map[string]string `json:"fields"`
}

// bufferPool reuses encoding buffers across responses
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// status and user-facing message. Deck validation failures echo the input.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context())

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		log.Warn(op+" rejected", "fields", vErr.Fields)
		respondJSON(w, http.StatusBadRequest, DeckInputErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Input:  vErr.Input,
			Fields: vErr.Fields,
		})
		return
	}

	status, msg := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Warn(op+" failed", "error", err, "status", status)
	}
	respondError(w, status, msg)
}
