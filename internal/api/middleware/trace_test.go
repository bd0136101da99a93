package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/powerdealer-api/internal/api/middleware"
	"github.com/phrazzld/powerdealer-api/internal/api/shared"
	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		shared.RespondWithError(w, r, http.StatusNotFound, "", nil)
	})

	rec := httptest.NewRecorder()
	middleware.NewTraceMiddleware(base)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.NotEmpty(t, traceID)

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, traceID, body.TraceID)

	var sawHandler, sawCompleted bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, traceID, entry["trace_id"], line)
		switch entry["msg"] {
		case "inside handler":
			sawHandler = true
		case "request completed":
			sawCompleted = true
			assert.EqualValues(t, http.StatusNotFound, entry["status"])
		}
	}
	assert.True(t, sawHandler)
	assert.True(t, sawCompleted)
}
