package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majidyz63/ai-extractor/internal/config"
)

func testConfig(t *testing.T, upstreamURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.json"),
		[]byte(`{"mistral/mistral-7b-instruct:free":{"active":true},"openai/gpt-4o":{"active":false}}`), 0o644))

	cfg := config.DefaultConfig()
	cfg.Registry.ModelsFile = filepath.Join(dir, "models.json")
	cfg.Prompts.Dir = filepath.Join(dir, "prompts")
	cfg.Upstream.APIKey = "sk-test"
	if upstreamURL != "" {
		cfg.Upstream.BaseURL = upstreamURL
	}
	return cfg
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t, ""))
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.NotNil(t, app.Registry)
	assert.NotNil(t, app.Prompts)
	assert.NotNil(t, app.APIHandlers)
	assert.True(t, app.Upstream.Configured())
	assert.False(t, app.Audit.Enabled(), "No MongoDB URI means no audit log")
	assert.NoError(t, app.Close(context.Background()))
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Server.Port = 0

	app, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "Server.Port")
}

func TestNewAppToleratesUnreadableRegistry(t *testing.T) {
	cfg := testConfig(t, "")
	require.NoError(t, os.WriteFile(cfg.Registry.ModelsFile, []byte("{not json"), 0o644))

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	app.SetupRoutes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthHandler(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t, ""))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	app.SetupRoutes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
		Details  map[string]any    `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "up", body.Services["registry"])
	assert.Equal(t, "up", body.Services["upstream"])
	assert.Equal(t, "disabled", body.Services["database"])
	assert.Equal(t, Version, body.Details["version"])
	assert.EqualValues(t, 1, body.Details["active_models"])
}

func TestExtractEndToEnd(t *testing.T) {
	var gotAuth string
	upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` +
			"```json\\n{\\\"title\\\":\\\"Lunch with Sara\\\"}\\n```" + `"}}]}`))
	}))
	defer upstreamServer.Close()

	app, err := NewApp(context.Background(), testConfig(t, upstreamServer.URL))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/extract",
		strings.NewReader(`{"model":"mistral/mistral-7b-instruct:free","input":"Lunch with Sara next Friday"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.SetupRoutes().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Bearer sk-test", gotAuth)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"title": "Lunch with Sara"}, body["output"])
	assert.Equal(t, "calendar_event", body["prompt_type"])
	assert.Equal(t, "en-US", body["lang"])
}

func TestModelRegistryEndToEnd(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t, ""))
	require.NoError(t, err)
	handler := app.SetupRoutes()

	form := strings.NewReader("model=anthropic%2Fclaude-3-haiku&active=on")
	req := httptest.NewRequest(http.MethodPost, "/add", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/toggle?model=mistral/mistral-7b-instruct:free", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/active-models", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["anthropic/claude-3-haiku"]`, w.Body.String())
}
