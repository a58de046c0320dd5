package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majidyz63/ai-extractor/internal/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := logger.Logger
	t.Cleanup(func() { logger.Logger = original })
	logger.Logger = slog.New(logger.NewStructuredJSONHandler(&buf, logger.LevelInfo, "test", "test"))
	return &buf
}

func logEntries(t *testing.T, buf *bytes.Buffer) []logger.StructuredLogEntry {
	t.Helper()
	var entries []logger.StructuredLogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry logger.StructuredLogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestRequestCorrelationGeneratesID(t *testing.T) {
	captureLogs(t)
	var seen string
	handler := RequestCorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/extract", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	id := rr.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, seen)
	assert.NotEmpty(t, rr.Header().Get("X-Response-Time"))
}

func TestRequestCorrelationKeepsClientID(t *testing.T) {
	captureLogs(t)
	handler := RequestCorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/active-models", nil)
	req.Header.Set("X-Request-ID", "client-abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "client-abc-123", rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "ok", rr.Body.String())
}

func TestRequestCorrelationReplacesInvalidClientID(t *testing.T) {
	captureLogs(t)
	handler := RequestCorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.NotEqual(t, "bad id with spaces", rr.Header().Get("X-Request-ID"))
}

func TestRequestCorrelationLogsLifecycle(t *testing.T) {
	buf := captureLogs(t)
	handler := RequestCorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"No input provided"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/extract?x=1", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Request-ID", "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := logEntries(t, buf)
	require.Len(t, entries, 2)

	received := entries[0]
	assert.Equal(t, "Incoming request", received.Message)
	assert.Equal(t, logger.LogStages.RequestReceived, received.Stage)
	assert.Equal(t, "req-1", received.Request["request_id"])
	assert.Equal(t, "POST", received.Request["method"])
	assert.Equal(t, "/api/extract", received.Request["endpoint"])
	headers, ok := received.Request["headers"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "***", headers["Authorization"])

	completed := entries[1]
	assert.Equal(t, logger.LogStages.RequestFailed, completed.Stage)
	assert.EqualValues(t, 400, completed.Response["status_code"])
	assert.EqualValues(t, len(`{"error":"No input provided"}`), completed.Response["bytes"])
}

func TestRequestCorrelationServerErrorLoggedAsError(t *testing.T) {
	buf := captureLogs(t)
	handler := RequestCorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/complete", nil))

	entries := logEntries(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "ERROR", entries[1].Level)
	assert.Equal(t, "status code: 502", entries[1].Error["message"])
}

func TestRequestCorrelationQuietHealthCheck(t *testing.T) {
	buf := captureLogs(t)
	healthy := RequestCorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	healthy.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, strings.TrimSpace(buf.String()))

	failing := RequestCorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	failing.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, logEntries(t, buf), 1)
}
