// Package upstream talks to the OpenAI-compatible chat completion endpoint
// (OpenRouter by default) on behalf of the relay.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/majidyz63/ai-extractor/internal/logger"
	"github.com/majidyz63/ai-extractor/internal/monitoring"
)

// DefaultBaseURL is the OpenRouter API root
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// maxResponseBytes caps how much of an upstream reply is read
const maxResponseBytes = 8 << 20

// Message is one chat message
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant tool" example:"user"`
	Content any    `json:"content" validate:"required" swaggertype:"string" example:"Lunch with Sara next Friday at noon"`
}

// Usage reports token counts when the provider returns them
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Completion is the relay's view of an upstream reply
type Completion struct {
	Model string
	// ResolvedModel is the model the provider reports having used
	ResolvedModel string
	Content       string
	ProviderError string
	ErrorType     string
	StatusCode    int
	Raw           json.RawMessage
	Usage         Usage
	Duration      time.Duration
}

// HasContent reports whether the reply carried model output
func (c *Completion) HasContent() bool {
	return strings.TrimSpace(c.Content) != ""
}

// Options configures a Client
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// Referer and Title are OpenRouter's optional attribution headers
	Referer string
	Title   string
}

// Client sends chat completion requests upstream
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	referer    string
	title      string
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient.
func NewClient(opts Options, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		timeout:    timeout,
		referer:    opts.Referer,
		title:      opts.Title,
		httpClient: httpClient,
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Endpoint returns the chat completion URL
func (c *Client) Endpoint() string {
	return c.baseURL + "/chat/completions"
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Complete forwards messages to model and returns the parsed reply.
//
// Provider-side failures that still come back as JSON (quota, unknown model)
// are reported through Completion.ProviderError, not as an error.
func (c *Client) Complete(ctx context.Context, model string, messages []Message) (*Completion, error) {
	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}

	ctx = logger.WithComponent(ctx, logger.ComponentNames.UpstreamClient)
	ctx = logger.WithModel(ctx, model)

	payload, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("failed to encode upstream request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}
	if requestID := logger.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	logger.Debug(logger.WithStage(ctx, logger.LogStages.UpstreamRequest), "Sending completion request",
		"url", req.URL.String(),
		"message_count", len(messages),
		"request_size_bytes", len(payload),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(start)
		monitoring.RecordUpstream(model, 0, duration)
		logger.Error(logger.WithStage(ctx, logger.LogStages.UpstreamError), "Upstream communication failed", err,
			"url", req.URL.String(),
			"duration_ms", duration.Milliseconds(),
		)
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	duration := time.Since(start)
	monitoring.RecordUpstream(model, resp.StatusCode, duration)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read upstream response: %w", err)}
	}

	if !gjson.ValidBytes(body) {
		logger.Warn(logger.WithStage(ctx, logger.LogStages.UpstreamError), "Upstream returned a non-JSON body",
			"response_status_code", resp.StatusCode,
			"response_size_bytes", len(body),
		)
		return nil, &Error{StatusCode: resp.StatusCode, Body: body, Err: ErrInvalidResponse}
	}

	completion := parseCompletion(model, resp.StatusCode, body)
	completion.Duration = duration

	logger.Info(logger.WithStage(ctx, logger.LogStages.UpstreamResponse), "Upstream completion received",
		"response_status_code", resp.StatusCode,
		"resolved_model", completion.ResolvedModel,
		"has_content", completion.HasContent(),
		"provider_error", completion.ProviderError,
		"total_tokens", completion.Usage.TotalTokens,
		"duration_ms", duration.Milliseconds(),
	)

	return completion, nil
}

// parseCompletion reads the fields the relay cares about from a JSON reply
func parseCompletion(model string, statusCode int, body []byte) *Completion {
	completion := &Completion{
		Model:         model,
		ResolvedModel: gjson.GetBytes(body, "model").String(),
		StatusCode:    statusCode,
		ErrorType:     ClassifyStatus(statusCode),
		Raw:           json.RawMessage(body),
		Usage: Usage{
			PromptTokens:     gjson.GetBytes(body, "usage.prompt_tokens").Int(),
			CompletionTokens: gjson.GetBytes(body, "usage.completion_tokens").Int(),
			TotalTokens:      gjson.GetBytes(body, "usage.total_tokens").Int(),
		},
	}

	for _, path := range []string{"choices.0.message.content", "output", "content"} {
		if result := gjson.GetBytes(body, path); result.Exists() && result.Type != gjson.Null {
			completion.Content = result.String()
			break
		}
	}

	if errResult := gjson.GetBytes(body, "error"); errResult.Exists() && errResult.Type != gjson.Null {
		if message := gjson.GetBytes(body, "error.message"); message.Exists() {
			completion.ProviderError = message.String()
		} else {
			completion.ProviderError = errResult.String()
		}
	}

	if completion.ProviderError == "" && !completion.HasContent() && statusCode >= http.StatusBadRequest {
		completion.ProviderError = fmt.Sprintf("upstream returned status %d", statusCode)
	}

	return completion
}
