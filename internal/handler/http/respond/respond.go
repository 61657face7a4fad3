// Package respond provides utilities for sending HTTP responses in JSON format.
// It maps domain errors to status codes and keeps internal details out of
// client-facing messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"social-news/internal/domain/entity"
	"social-news/internal/observability/logging"
)

// ErrorBody is the envelope of every failed request.
type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// MessageBody is the envelope of mutations that return no resource.
type MessageBody struct {
	Message string `json:"message"`
}

// Overrides maps a taxonomy sentinel to a status for one endpoint.
// An endpoint that treats a failed write as "nothing there" maps
// entity.ErrWriteFailed to 404, for example.
type Overrides map[error]int

const internalMessage = "internal server error"

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダ送信後なのでログのみ
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, MessageBody{Message: msg})
}

// Error writes the error envelope with msg as is.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Error: true, Message: msg})
}

// StatusFor resolves the status of err. Overrides are consulted first.
func StatusFor(err error, overrides Overrides) int {
	for sentinel, code := range overrides {
		if errors.Is(err, sentinel) {
			return code
		}
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrNetwork):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrWriteFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// SafeError writes err using the error envelope.
// Messages of UserError and ValidationError reach the client; anything else
// is logged (sanitized) and reported as a generic internal error.
func SafeError(w http.ResponseWriter, r *http.Request, err error, overrides Overrides) {
	if err == nil {
		return
	}
	code := StatusFor(err, overrides)

	var (
		userErr  *entity.UserError
		validErr *entity.ValidationError
		tooLarge *http.MaxBytesError
	)
	msg := internalMessage
	switch {
	case errors.As(err, &userErr):
		msg = userErr.Message
	case errors.As(err, &validErr):
		msg = validErr.Message
	case errors.As(err, &tooLarge):
		msg = "request body too large"
	case code < http.StatusInternalServerError:
		msg = http.StatusText(code)
	}

	if code >= http.StatusInternalServerError {
		logging.WithRequestID(r.Context(), slog.Default()).Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("code", code),
			slog.String("error", SanitizeError(err)))
	}
	Error(w, code, msg)
}
