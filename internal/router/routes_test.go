package router

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majidyz63/ai-extractor/internal/handlers"
	"github.com/majidyz63/ai-extractor/internal/prompt"
	"github.com/majidyz63/ai-extractor/internal/registry"
	"github.com/majidyz63/ai-extractor/internal/upstream"
)

func newTestHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	store := registry.NewStore(filepath.Join(t.TempDir(), "models.json"))
	_, err := store.Add("mistral/mistral-7b-instruct:free", true)
	require.NoError(t, err)

	apiHandlers := handlers.NewAPIHandlers(
		store,
		upstream.NewClient(upstream.Options{}, nil),
		prompt.NewEngine(""),
		nil,
		handlers.Options{Version: "test", Environment: "test"},
	)
	return SetupRoutes(apiHandlers, opts)
}

func TestSetupRoutes(t *testing.T) {
	handler := newTestHandler(t, Options{EnablePprof: true})
	require.NotNil(t, handler)

	testCases := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		description    string
	}{
		{
			name:           "health endpoint",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
			description:    "Health check should report degraded without an API key",
		},
		{
			name:           "active models endpoint",
			method:         http.MethodGet,
			path:           "/api/active-models",
			expectedStatus: http.StatusOK,
			description:    "Active models should be listed",
		},
		{
			name:           "models endpoint",
			method:         http.MethodGet,
			path:           "/api/models",
			expectedStatus: http.StatusOK,
			description:    "Registered models should be listed",
		},
		{
			name:           "prompts endpoint",
			method:         http.MethodGet,
			path:           "/api/prompts",
			expectedStatus: http.StatusOK,
			description:    "Prompt types should be listed",
		},
		{
			name:           "prompt template endpoint",
			method:         http.MethodGet,
			path:           "/api/prompts/calendar_event",
			expectedStatus: http.StatusOK,
			description:    "The built-in template should be described",
		},
		{
			name:           "extractions without audit store",
			method:         http.MethodGet,
			path:           "/api/extractions",
			expectedStatus: http.StatusServiceUnavailable,
			description:    "Audit endpoints need a database",
		},
		{
			name:           "extract without input",
			method:         http.MethodPost,
			path:           "/api/extract",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			description:    "Extract should reject a missing input",
		},
		{
			name:           "complete without body",
			method:         http.MethodPost,
			path:           "/api/complete",
			expectedStatus: http.StatusBadRequest,
			description:    "Complete should reject an empty body",
		},
		{
			name:           "toggle unknown model",
			method:         http.MethodGet,
			path:           "/toggle?model=unknown",
			expectedStatus: http.StatusNotFound,
			description:    "Toggle should report unknown models",
		},
		{
			name:           "metrics endpoint",
			method:         http.MethodGet,
			path:           "/metrics",
			expectedStatus: http.StatusOK,
			description:    "Prometheus metrics should be exposed",
		},
		{
			name:           "swagger ui endpoint",
			method:         http.MethodGet,
			path:           "/swagger/",
			expectedStatus: http.StatusMovedPermanently,
			description:    "Swagger UI should redirect properly",
		},
		{
			name:           "swagger document",
			method:         http.MethodGet,
			path:           "/swagger/doc.json",
			expectedStatus: http.StatusOK,
			description:    "The generated document should be served",
		},
		{
			name:           "pprof index endpoint",
			method:         http.MethodGet,
			path:           "/debug/pprof/",
			expectedStatus: http.StatusOK,
			description:    "Pprof index should be accessible",
		},
		{
			name:           "pprof cmdline endpoint",
			method:         http.MethodGet,
			path:           "/debug/pprof/cmdline",
			expectedStatus: http.StatusOK,
			description:    "Pprof cmdline should be accessible",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code, tc.description)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestSetupRoutes_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, Options{})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/extract"},
		{http.MethodGet, "/api/complete"},
		{http.MethodPut, "/api/models"},
		{http.MethodGet, "/add"},
		{http.MethodDelete, "/toggle"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}

func TestSetupRoutes_PprofDisabled(t *testing.T) {
	handler := newTestHandler(t, Options{})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRoutes_UnregisteredPath(t *testing.T) {
	handler := newTestHandler(t, Options{})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRoutes_ClientRequestIDEchoed(t *testing.T) {
	handler := newTestHandler(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/active-models", nil)
	req.Header.Set("X-Request-ID", "client-supplied-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client-supplied-1", w.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `["mistral/mistral-7b-instruct:free"]`, w.Body.String())
}
