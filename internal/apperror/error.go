package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/zerocode/landing/internal/logger"
)

// Error represents an application error with HTTP status and error code
type Error struct {
	HTTPStatus int
	Code       string
	Message    string
	Internal   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the internal error
func (e *Error) Unwrap() error {
	return e.Internal
}

// WithInternal returns a copy of the error with an internal error attached
func (e *Error) WithInternal(err error) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    e.Message,
		Internal:   err,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    message,
		Internal:   e.Internal,
	}
}

// New creates a new application error
func New(status int, code, message string) *Error {
	return &Error{
		HTTPStatus: status,
		Code:       code,
		Message:    message,
	}
}

// Common error definitions
var (
	ErrNotFound             = New(http.StatusNotFound, "not_found", "Resource not found")
	ErrSessionNotFound      = New(http.StatusNotFound, "session_not_found", "Builder session not found")
	ErrExampleNotFound      = New(http.StatusNotFound, "example_not_found", "Example prompt not found")
	ErrBadRequest           = New(http.StatusBadRequest, "bad_request", "Invalid request")
	ErrRateLimited          = New(http.StatusTooManyRequests, "rate_limited", "Too many requests, slow down")
	ErrStreamingUnsupported = New(http.StatusInternalServerError, "streaming_unsupported", "Streaming is not supported by this connection")
	ErrInternal             = New(http.StatusInternalServerError, "internal_error", "An internal error occurred")
)

// ToHTTPError converts an error to a status code and JSON body. Errors that
// are not *Error become internal errors without leaking their text.
func ToHTTPError(err error) (int, map[string]any) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = ErrInternal
	}
	return appErr.HTTPStatus, map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	}
}

// WriteJSON writes err as a JSON error response. Server errors are logged.
func WriteJSON(w http.ResponseWriter, log *slog.Logger, err error) {
	status, body := ToHTTPError(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", logger.Error(err), slog.Int("status", status))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
