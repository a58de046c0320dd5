package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger levels
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Context keys
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	ComponentKey contextKey = "component"
	StageKey     contextKey = "stage"
	ModelKey     contextKey = "model"
)

// Global logger instance
var Logger *slog.Logger

// Config for the logger
type Config struct {
	Level       slog.Level
	Format      string // "json" or "text"
	Output      string // "stdout", "stderr", or file path
	ServiceName string
	Environment string

	// Rotation settings, only used when Output is a file path
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig is used when Init has not been called
var DefaultConfig = Config{
	Level:       LevelInfo,
	Format:      "json",
	Output:      "stdout",
	ServiceName: "ai-extractor",
	Environment: "development",
	MaxSizeMB:   50,
	MaxBackups:  5,
	MaxAgeDays:  14,
}

// StructuredLogEntry is the JSON shape of every log line
type StructuredLogEntry struct {
	Timestamp   string                 `json:"timestamp"`
	Level       string                 `json:"level"`
	Message     string                 `json:"message"`
	Service     string                 `json:"service"`
	Environment string                 `json:"environment"`
	Component   string                 `json:"component,omitempty"`
	Stage       string                 `json:"stage,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	Request     map[string]interface{} `json:"request,omitempty"`
	Response    map[string]interface{} `json:"response,omitempty"`
	Error       map[string]interface{} `json:"error,omitempty"`
}

var (
	outputMu  sync.Mutex
	rotator   *lumberjack.Logger
	initGuard sync.Mutex
)

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Init initializes the global logger
func Init(config Config) error {
	initGuard.Lock()
	defer initGuard.Unlock()

	output, err := openOutput(config)
	if err != nil {
		return err
	}

	var handler slog.Handler
	switch config.Format {
	case "json", "":
		handler = NewStructuredJSONHandler(output, config.Level, config.ServiceName, config.Environment)
	default:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{Level: config.Level})
	}

	Logger = slog.New(handler)
	return nil
}

func openOutput(config Config) (io.Writer, error) {
	switch config.Output {
	case "stdout", "":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	outputMu.Lock()
	defer outputMu.Unlock()

	if rotator != nil {
		_ = rotator.Close()
	}
	rotator = &lumberjack.Logger{
		Filename:   config.Output,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAgeDays,
		Compress:   config.Compress,
	}

	// Fail early on an unwritable path instead of on the first log line
	if _, err := rotator.Write(nil); err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", config.Output, err)
	}
	return rotator, nil
}

// Close flushes and closes a rotating log file, if one is open
func Close() error {
	outputMu.Lock()
	defer outputMu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// StructuredJSONHandler implements slog.Handler for our structured format
type StructuredJSONHandler struct {
	mu          *sync.Mutex
	writer      io.Writer
	level       slog.Level
	serviceName string
	environment string
	attrs       []slog.Attr
}

// NewStructuredJSONHandler creates a handler writing one JSON object per line
func NewStructuredJSONHandler(w io.Writer, level slog.Level, serviceName, environment string) *StructuredJSONHandler {
	return &StructuredJSONHandler{
		mu:          &sync.Mutex{},
		writer:      w,
		level:       level,
		serviceName: serviceName,
		environment: environment,
	}
}

func (h *StructuredJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *StructuredJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *StructuredJSONHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *StructuredJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	entry := StructuredLogEntry{
		Timestamp:   r.Time.UTC().Format(time.RFC3339),
		Level:       r.Level.String(),
		Message:     r.Message,
		Service:     h.serviceName,
		Environment: h.environment,
		Attributes:  make(map[string]interface{}),
		Request:     make(map[string]interface{}),
		Response:    make(map[string]interface{}),
		Error:       make(map[string]interface{}),
	}

	if ctx != nil {
		if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
			entry.Request["request_id"] = requestID
		}
		if component, ok := ctx.Value(ComponentKey).(string); ok {
			entry.Component = component
		}
		if stage, ok := ctx.Value(StageKey).(string); ok {
			entry.Stage = stage
		}
		if model, ok := ctx.Value(ModelKey).(string); ok && model != "" {
			entry.Attributes["model"] = model
		}
	}

	route := func(a slog.Attr) bool {
		key := a.Key
		value := a.Value.Any()

		switch {
		case strings.HasPrefix(key, "request_"):
			entry.Request[strings.TrimPrefix(key, "request_")] = value
		case strings.HasPrefix(key, "response_"):
			entry.Response[strings.TrimPrefix(key, "response_")] = value
		case strings.HasPrefix(key, "error_"):
			entry.Error[strings.TrimPrefix(key, "error_")] = value
		case key == "error":
			if err, ok := value.(error); ok {
				entry.Error["message"] = err.Error()
				entry.Error["type"] = fmt.Sprintf("%T", err)
			} else {
				entry.Error["message"] = fmt.Sprintf("%v", value)
			}
		default:
			entry.Attributes[key] = serializeValue(value)
		}
		return true
	}
	for _, a := range h.attrs {
		route(a)
	}
	r.Attrs(route)

	if len(entry.Attributes) == 0 {
		entry.Attributes = nil
	}
	if len(entry.Request) == 0 {
		entry.Request = nil
	}
	if len(entry.Response) == 0 {
		entry.Response = nil
	}
	if len(entry.Error) == 0 {
		entry.Error = nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.writer.Write(append(data, '\n'))
	return err
}

func serializeValue(val interface{}) interface{} {
	switch v := val.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case time.Duration:
		return v.Milliseconds()
	case error:
		return v.Error()
	default:
		return val
	}
}

// WithComponent returns a context tagged with the component name
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, ComponentKey, component)
}

// WithStage returns a context tagged with the processing stage
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}

// WithRequestID returns a context carrying the request id
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithModel returns a context carrying the upstream model id
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// RequestIDFromContext returns the request id stored in ctx, if any
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func get() *slog.Logger {
	if Logger == nil {
		if err := Init(DefaultConfig); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize default logger: %v\n", err)
			return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelDebug}))
		}
	}
	return Logger
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// Debug logs at debug level
func Debug(ctx context.Context, msg string, args ...any) {
	get().DebugContext(orBackground(ctx), msg, args...)
}

// Info logs at info level
func Info(ctx context.Context, msg string, args ...any) {
	get().InfoContext(orBackground(ctx), msg, args...)
}

// Warn logs at warn level
func Warn(ctx context.Context, msg string, args ...any) {
	get().WarnContext(orBackground(ctx), msg, args...)
}

// Error logs at error level. err may be nil.
func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err)
	}
	get().ErrorContext(orBackground(ctx), msg, args...)
}
