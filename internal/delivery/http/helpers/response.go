package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeNotFound      = "not_found"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the API error envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Fields maps draft fields to validation messages, when the request failed validation.
	Fields map[string]string `json:"fields,omitempty"`
}

// APIResponse is the envelope for API errors. Successful responses carry
// the resource itself so that /api/events stays a plain JSON array.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// WriteValidationError writes a 400 whose error lists the failing fields.
func WriteValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, APIResponse{
		Error: &APIError{Code: ErrCodeBadRequest, Message: message, Fields: fields},
	})
}
