// Package apierr renders the JSON error envelope used by every endpoint and
// bundles the logging that goes with server-side failures.
//
// Client errors (4xx) carry a human-readable message. Store and driver
// errors are logged with full detail and surfaced as a generic 500 body so
// internal error strings never reach callers.
package apierr

import (
	"net/http"

	"github.com/dalemusser/teamplan/internal/app/system/httpjson"
	"go.uber.org/zap"
)

type envelope struct {
	Error string `json:"error"`
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	httpjson.Write(w, http.StatusBadRequest, envelope{Error: msg})
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "unauthorized"
	}
	httpjson.Write(w, http.StatusUnauthorized, envelope{Error: msg})
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "forbidden"
	}
	httpjson.Write(w, http.StatusForbidden, envelope{Error: msg})
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "not found"
	}
	httpjson.Write(w, http.StatusNotFound, envelope{Error: msg})
}

// Conflict writes a 409.
func Conflict(w http.ResponseWriter, msg string) {
	httpjson.Write(w, http.StatusConflict, envelope{Error: msg})
}

// ErrorLogger pairs a zap logger with the 500 response path so handlers can
// report internal failures in one call.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Internal logs the underlying error with context and writes a generic 500.
// The error detail stays in the logs.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, op string, err error) {
	e.log.Error("handler failure",
		zap.String("op", op),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	httpjson.Write(w, http.StatusInternalServerError, envelope{Error: "internal server error"})
}
