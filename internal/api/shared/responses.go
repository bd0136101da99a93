package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
	"github.com/phrazzld/powerdealer-api/internal/redact"
)

// Client-facing messages per status code.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Please check your input.",
	http.StatusUnauthorized:        "Login required.",
	http.StatusForbidden:           "You don't have permission to perform this action.",
	http.StatusNotFound:            "The requested resource was not found.",
	http.StatusMethodNotAllowed:    "This action is not allowed.",
	http.StatusInternalServerError: "Something went wrong. Please try again later.",
}

const fallbackStatusMessage = "We couldn't process your request right now."

// StatusMessage returns the client-facing message for an HTTP status code.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fallbackStatusMessage
}

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
	TraceID string              `json:"trace_id,omitempty"`
	Code    int                 `json:"-"` // Not serialized to JSON, used for logging
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondSuccess writes a success envelope.
func RespondSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	RespondWithJSON(w, r, status, SuccessResponse{Success: true, Message: message, Data: data})
}

// RespondWithError writes an error envelope. An empty message selects the
// default message for status; nil fields are sent as an empty object.
func RespondWithError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	fields map[string][]string,
) {
	RespondWithErrorAndLog(w, r, status, message, fields, nil)
}

// RespondWithErrorAndLog writes an error envelope and logs err, redacted.
// 5xx responses are logged at ERROR, everything else at DEBUG. The raw error
// text never reaches the client.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	fields map[string][]string,
	err error,
) {
	if message == "" {
		message = StatusMessage(status)
	}
	if fields == nil {
		fields = map[string][]string{}
	}
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", message),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Success: false,
		Message: message,
		Errors:  fields,
		TraceID: traceID,
		Code:    status,
	})
}
