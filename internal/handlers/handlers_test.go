package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/majidyz63/ai-extractor/internal/database"
	"github.com/majidyz63/ai-extractor/internal/prompt"
	"github.com/majidyz63/ai-extractor/internal/registry"
	"github.com/majidyz63/ai-extractor/internal/upstream"
)

const testModel = "mistral/mistral-7b-instruct:free"

// fakeAudit keeps records in memory
type fakeAudit struct {
	mu      sync.Mutex
	enabled bool
	records []*database.ExtractionLog
	status  string
}

func (f *fakeAudit) Enabled() bool { return f.enabled }

func (f *fakeAudit) Record(_ context.Context, entry *database.ExtractionLog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, entry)
}

func (f *fakeAudit) Recent(_ context.Context, limit int64) ([]*database.ExtractionLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*database.ExtractionLog, 0, limit)
	for i := len(f.records) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *fakeAudit) Get(_ context.Context, requestID string) (*database.ExtractionLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.records {
		if record.RequestID == requestID {
			return record, nil
		}
	}
	return nil, nil
}

func (f *fakeAudit) HealthCheck(context.Context) string {
	if f.status != "" {
		return f.status
	}
	if f.enabled {
		return "healthy"
	}
	return "disabled"
}

func (f *fakeAudit) last() *database.ExtractionLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.records) == 0 {
		return nil
	}
	return f.records[len(f.records)-1]
}

type upstreamCall struct {
	Model    string             `json:"model"`
	Messages []upstream.Message `json:"messages"`
}

type testEnv struct {
	handlers   *APIHandlers
	audit      *fakeAudit
	promptsDir string

	mu    sync.Mutex
	calls []upstreamCall
}

// newTestEnv wires handlers to a temp registry with testModel active and an
// upstream that answers every request with status and body. apiKey may be empty.
func newTestEnv(t *testing.T, status int, body string, apiKey string) *testEnv {
	t.Helper()
	env := &testEnv{audit: &fakeAudit{enabled: true}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		var call upstreamCall
		_ = json.Unmarshal(payload, &call)
		env.mu.Lock()
		env.calls = append(env.calls, call)
		env.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	store := registry.NewStore(filepath.Join(dir, "models.json"))
	_, err := store.Add(testModel, true)
	require.NoError(t, err)
	_, err = store.Add("openai/gpt-4o", false)
	require.NoError(t, err)

	env.promptsDir = filepath.Join(dir, "prompts")
	client := upstream.NewClient(upstream.Options{BaseURL: server.URL, APIKey: apiKey, Timeout: 5 * time.Second}, server.Client())

	env.handlers = NewAPIHandlers(store, client, prompt.NewEngine(env.promptsDir), env.audit, Options{
		Version:     "test",
		Environment: "test",
	})
	env.handlers.now = func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }
	return env
}

func (e *testEnv) lastCall(t *testing.T) upstreamCall {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	require.NotEmpty(t, e.calls, "upstream was not called")
	return e.calls[len(e.calls)-1]
}

func (e *testEnv) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func chatReply(content string) string {
	encoded, _ := json.Marshal(content)
	return `{"id":"gen-1","model":"mistralai/mistral-7b-instruct","choices":[{"message":{"role":"assistant","content":` +
		string(encoded) + `}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`
}

func serve(handler http.HandlerFunc, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func postJSON(handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	return serve(handler, http.MethodPost, target, "application/json", body)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
