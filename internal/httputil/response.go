package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/redmonkez12/friend-app/internal/apperr"
)

// Machine-readable error codes returned next to the message.
const (
	CodeMissingToken     = "missing_token"
	CodeInvalidToken     = "invalid_token"
	CodeTooManyRequests  = "too_many_requests"
	CodeNotFound         = "endpoint_not_found"
	CodeMethodNotAllowed = "method_not_allowed"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CreatedResponse acknowledges an insert with the new row id.
type CreatedResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondError sends a JSON error response with the given message and status code.
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// RespondErrorWithCode sends a JSON error response with a machine-readable error code.
func RespondErrorWithCode(w http.ResponseWriter, message string, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)
}

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst. An empty body leaves dst
// untouched; anything that is not a JSON object, or that exceeds
// MaxBodyBytes, is a validation error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &apperr.Error{Kind: apperr.KindValidation, Message: "invalid request body", Err: err}
}
