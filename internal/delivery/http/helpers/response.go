package helpers

import (
	"encoding/json"
	"net/http"

	"devevent/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodeTooManyRequests = "too_many_requests"
	ErrCodeInternalError   = "internal_error"
)

// ErrorResponse is the body of every error response. Error carries the
// underlying error text and is only filled in development; Errors lists
// rejected fields on validation failures.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Error   string              `json:"error,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode,
// and encodes body as is.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONError writes an ErrorResponse with the given code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeError(w, statusCode, ErrorResponse{Message: message, Code: code})
}

// WriteJSONErrorDetail is WriteJSONError plus the underlying error text.
func WriteJSONErrorDetail(w http.ResponseWriter, statusCode int, code, message, detail string) {
	writeError(w, statusCode, ErrorResponse{Message: message, Code: code, Error: detail})
}

// WriteValidationError writes a 400 listing every rejected field.
func WriteValidationError(w http.ResponseWriter, fields []domain.FieldError) {
	writeError(w, http.StatusBadRequest, ErrorResponse{
		Message: "Validation failed",
		Code:    ErrCodeBadRequest,
		Errors:  fields,
	})
}

func writeError(w http.ResponseWriter, statusCode int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
