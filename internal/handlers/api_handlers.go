package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/majidyz63/ai-extractor/internal/database"
	apierrors "github.com/majidyz63/ai-extractor/internal/errors"
	"github.com/majidyz63/ai-extractor/internal/logger"
	"github.com/majidyz63/ai-extractor/internal/prompt"
	"github.com/majidyz63/ai-extractor/internal/registry"
	"github.com/majidyz63/ai-extractor/internal/upstream"
	"github.com/majidyz63/ai-extractor/internal/utils"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// startTime tracks when the application started
var startTime = time.Now()

// errEmptyBody marks a request that sent no body at all
var errEmptyBody = errors.New("empty request body")

// AuditStore records extractions. *database.AuditLogger implements it.
type AuditStore interface {
	Enabled() bool
	Record(ctx context.Context, entry *database.ExtractionLog)
	Recent(ctx context.Context, limit int64) ([]*database.ExtractionLog, error)
	Get(ctx context.Context, requestID string) (*database.ExtractionLog, error)
	HealthCheck(ctx context.Context) string
}

// Options carries request defaults and build metadata
type Options struct {
	DefaultPromptType string
	DefaultLang       string
	Version           string
	Environment       string
}

// APIHandlers contains the dependencies needed for API handlers
type APIHandlers struct {
	Registry *registry.Store
	Upstream *upstream.Client
	Prompts  *prompt.Engine
	Audit    AuditStore

	options Options
	now     func() time.Time
}

// NewAPIHandlers creates a new APIHandlers instance. A nil audit store
// disables the audit endpoints.
func NewAPIHandlers(store *registry.Store, client *upstream.Client, prompts *prompt.Engine, audit AuditStore, opts Options) *APIHandlers {
	if audit == nil {
		audit = database.NewDisabledAuditLogger()
	}
	if opts.DefaultPromptType == "" {
		opts.DefaultPromptType = prompt.DefaultType
	}
	if opts.DefaultLang == "" {
		opts.DefaultLang = "en-US"
	}
	if opts.Version == "" {
		opts.Version = "unknown"
	}

	return &APIHandlers{
		Registry: store,
		Upstream: client,
		Prompts:  prompts,
		Audit:    audit,
		options:  opts,
		now:      time.Now,
	}
}

// HealthHandler handles the health check endpoint
// @Summary      Health check endpoint
// @Description  Returns structured health information including status, services, and version details
// @Tags         health
// @Produce      json
// @Success      200  {object}  handlers.HealthResponse  "Healthy or degraded"
// @Failure      503  {object}  handlers.HealthResponse  "Unhealthy"
// @Router       /health [get]
func (h *APIHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithStage(logger.WithComponent(r.Context(), logger.ComponentNames.Handler), logger.LogStages.HealthCheck)

	services := make(map[string]string)
	overallStatus := "healthy"
	degrade := func() {
		if overallStatus == "healthy" {
			overallStatus = "degraded"
		}
	}

	activeCount := 0
	if active, err := h.Registry.Active(); err != nil {
		services["registry"] = "down"
		overallStatus = "unhealthy"
	} else {
		services["registry"] = "up"
		activeCount = len(active)
	}

	// The relay runs without a key but every completion will fail
	if h.Upstream.Configured() {
		services["upstream"] = "up"
	} else {
		services["upstream"] = "unconfigured"
		degrade()
	}

	if _, err := h.Prompts.List(); err != nil {
		services["prompts"] = "down"
		degrade()
	} else {
		services["prompts"] = "up"
	}

	services["database"] = h.Audit.HealthCheck(ctx)
	if services["database"] == "unhealthy" {
		degrade()
	}

	response := HealthResponse{
		Status:    overallStatus,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Services:  services,
		Details: map[string]interface{}{
			"version":       h.options.Version,
			"environment":   h.options.Environment,
			"uptime":        int64(time.Since(startTime).Seconds()),
			"active_models": activeCount,
		},
	}

	statusCode := http.StatusOK
	if overallStatus == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	if overallStatus != "healthy" {
		logger.Warn(ctx, "Health check degraded or unhealthy",
			"overall_status", overallStatus,
			"services_status", services,
		)
	}

	writeJSON(ctx, w, statusCode, response)
}

// writeJSON encodes v as the response body
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error(ctx, "Failed to marshal response", err)
		w.Header().Set(utils.HeaderContentType, utils.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error","type":"internal_error"}`))
		return
	}

	w.Header().Set(utils.HeaderContentType, utils.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		logger.Error(ctx, "Failed to write response", err, "response_size", len(body))
	}
}

// decodeJSON reads a JSON body into v. An absent body returns errEmptyBody.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// invalidBody reports a body that could not be decoded
func invalidBody(err error) *apierrors.APIError {
	return apierrors.NewValidationError(fmt.Sprintf("Invalid JSON body: %v", err))
}

// completionError maps an upstream client failure to a status and API error
func completionError(err error) (int, *apierrors.APIError) {
	if errors.Is(err, upstream.ErrMissingAPIKey) {
		return http.StatusInternalServerError, apierrors.NewConfigurationError("No OPENROUTER_API_KEY set")
	}

	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, apierrors.NewExternalError("Upstream request timed out")
		}
		return http.StatusBadGateway, apierrors.NewExternalError(upstreamErr.Error())
	}

	return http.StatusInternalServerError, apierrors.NewInternalError(err.Error())
}

// requireActive answers 400 and returns false unless model is registered and active
func (h *APIHandlers) requireActive(ctx context.Context, w http.ResponseWriter, r *http.Request, model string) bool {
	active, err := h.Registry.IsActive(model)
	if err != nil {
		logger.Error(logger.WithStage(ctx, logger.LogStages.RegistryRead), "Failed to read model registry", err)
		apierrors.HandleError(w, r, apierrors.NewInternalError("Failed to read model registry"), http.StatusInternalServerError)
		return false
	}
	if !active {
		apierrors.HandleError(w, r, apierrors.NewValidationError("Model not active or not found"), http.StatusBadRequest)
		return false
	}
	return true
}
