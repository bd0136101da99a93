package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/powerdealer-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	metrics := middleware.NewMetrics()

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	for _, path := range []string{"/items/1", "/items/2", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP powerdealer_http_requests_total HTTP requests by method, route and status code.
# TYPE powerdealer_http_requests_total counter
powerdealer_http_requests_total{method="GET",route="/items/{id}",status="418"} 2
powerdealer_http_requests_total{method="GET",route="/ok",status="200"} 1
`
	require.NoError(t, testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected),
		"powerdealer_http_requests_total"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "powerdealer_http_request_duration_seconds")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
