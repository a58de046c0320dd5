package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/majidyz63/ai-extractor/internal/database"
	apierrors "github.com/majidyz63/ai-extractor/internal/errors"
	"github.com/majidyz63/ai-extractor/internal/extract"
	"github.com/majidyz63/ai-extractor/internal/logger"
	"github.com/majidyz63/ai-extractor/internal/monitoring"
	"github.com/majidyz63/ai-extractor/internal/prompt"
	"github.com/majidyz63/ai-extractor/internal/upstream"
	"github.com/majidyz63/ai-extractor/internal/validator"
)

// noContentOutput is relayed when the upstream reply has neither content nor error
const noContentOutput = "No content returned from model"

// ExtractHandler turns free text into structured JSON through the upstream model
// @Summary      Extract structured data
// @Description  Renders the prompt template for prompt_type, sends it to the model and parses the reply as JSON. A reply that is not JSON comes back as {"raw_text": ...}.
// @Tags         extract
// @Accept       json
// @Produce      json
// @Param        request  body      ExtractRequest           true  "Extraction request"
// @Success      200      {object}  ExtractResponse          "Parsed output"
// @Failure      400      {object}  errors.ErrorResponse     "Missing input, bad prompt type, or inactive model"
// @Failure      500      {object}  errors.ErrorResponse     "Upstream credential missing"
// @Failure      502      {object}  errors.ErrorResponse     "Upstream failed or returned no content"
// @Failure      504      {object}  errors.ErrorResponse     "Upstream timed out"
// @Router       /api/extract [post]
func (h *APIHandlers) ExtractHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := logger.WithStage(logger.WithComponent(r.Context(), logger.ComponentNames.Handler), logger.LogStages.RequestValidated)

	var req ExtractRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		apierrors.HandleError(w, r, invalidBody(err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Input) == "" {
		apierrors.HandleError(w, r, apierrors.NewValidationError("No input provided"), http.StatusBadRequest)
		return
	}
	if req.PromptType == "" {
		req.PromptType = h.options.DefaultPromptType
	}
	if req.Lang == "" {
		req.Lang = h.options.DefaultLang
	}
	if !prompt.ValidType(req.PromptType) {
		apierrors.HandleError(w, r, apierrors.NewValidationError("Invalid prompt_type: "+req.PromptType), http.StatusBadRequest)
		return
	}

	ctx = logger.WithModel(ctx, req.Model)
	if !h.requireActive(ctx, w, r, req.Model) {
		return
	}

	audit := &database.ExtractionLog{
		RequestID:  logger.RequestIDFromContext(ctx),
		Model:      req.Model,
		PromptType: req.PromptType,
		Lang:       req.Lang,
		Input:      req.Input,
	}
	finish := func(statusCode int, errMessage string) {
		audit.StatusCode = statusCode
		audit.ErrorMessage = errMessage
		audit.DurationMs = time.Since(start).Milliseconds()
		h.Audit.Record(ctx, audit)
	}

	rendered, err := h.Prompts.Build(req.PromptType, req.Variables, map[string]string{
		prompt.VarInput:      req.Input,
		prompt.VarPromptType: req.PromptType,
		prompt.VarToday:      h.now().Format("2006-01-02"),
		prompt.VarLang:       req.Lang,
	})
	if err != nil {
		logger.Error(logger.WithStage(ctx, logger.LogStages.PromptBuild), "Failed to build prompt", err,
			"prompt_type", req.PromptType,
		)
		monitoring.RecordExtraction(req.PromptType, monitoring.OutcomeError)
		finish(http.StatusInternalServerError, err.Error())
		apierrors.HandleError(w, r, apierrors.NewInternalError("Failed to build prompt: "+err.Error()), http.StatusInternalServerError)
		return
	}

	messages := make([]upstream.Message, 0, 2)
	if strings.TrimSpace(rendered.System) != "" {
		messages = append(messages, upstream.Message{Role: "system", Content: rendered.System})
	}
	messages = append(messages, upstream.Message{Role: "user", Content: rendered.Prompt})

	completion, err := h.Upstream.Complete(ctx, req.Model, messages)
	if err != nil {
		statusCode, apiErr := completionError(err)
		monitoring.RecordExtraction(req.PromptType, monitoring.OutcomeError)
		finish(statusCode, apiErr.Message)
		apierrors.HandleError(w, r, apiErr, statusCode)
		return
	}

	if !completion.HasContent() {
		message := "No content in response"
		if completion.ProviderError != "" {
			message = "Upstream error: " + completion.ProviderError
		}
		monitoring.RecordExtraction(req.PromptType, monitoring.OutcomeError)
		finish(http.StatusBadGateway, message)
		apierrors.HandleError(w, r, apierrors.NewExternalError(message).WithRaw(completion.Raw), http.StatusBadGateway)
		return
	}

	output := extract.JSON(completion.Content)
	outcome := monitoring.OutcomeParsed
	if extract.IsFallback(output) {
		outcome = monitoring.OutcomeFallback
		logger.Warn(logger.WithStage(ctx, logger.LogStages.Fallback), "Model reply was not JSON, returning raw text",
			"prompt_type", req.PromptType,
			"content_length", len(completion.Content),
		)
	}
	monitoring.RecordExtraction(req.PromptType, outcome)

	audit.Output = output
	audit.RawContent = completion.Content
	audit.Parsed = outcome == monitoring.OutcomeParsed
	finish(http.StatusOK, "")

	logger.Info(logger.WithStage(ctx, logger.LogStages.Extraction), "Extraction completed",
		"prompt_type", req.PromptType,
		"lang", req.Lang,
		"outcome", outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	writeJSON(ctx, w, http.StatusOK, ExtractResponse{
		Model:      req.Model,
		PromptType: req.PromptType,
		Input:      req.Input,
		Lang:       req.Lang,
		Output:     output,
		Raw:        completion.Raw,
	})
}

// CompleteHandler forwards a chat message list to the upstream model
// @Summary      Relay a chat completion
// @Description  Forwards messages to an active model. A provider error inside a JSON reply is returned as output "Error: <message>" with status 200.
// @Tags         complete
// @Accept       json
// @Produce      json
// @Param        request  body      CompleteRequest          true  "Completion request"
// @Success      200      {object}  CompleteResponse         "Model output and raw upstream reply"
// @Failure      400      {object}  errors.ErrorResponse     "Invalid body or inactive model"
// @Failure      500      {object}  errors.ErrorResponse     "Upstream credential missing"
// @Failure      502      {object}  errors.ErrorResponse     "Upstream unreachable or not JSON"
// @Failure      504      {object}  errors.ErrorResponse     "Upstream timed out"
// @Router       /api/complete [post]
func (h *APIHandlers) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithStage(logger.WithComponent(r.Context(), logger.ComponentNames.Handler), logger.LogStages.RequestValidated)

	var req CompleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, errEmptyBody) {
			apierrors.HandleError(w, r, apierrors.NewValidationError("No request body provided"), http.StatusBadRequest)
			return
		}
		apierrors.HandleError(w, r, invalidBody(err), http.StatusBadRequest)
		return
	}
	if err := validator.Struct(req); err != nil {
		apierrors.HandleError(w, r, apierrors.NewValidationError(err.Error()), http.StatusBadRequest)
		return
	}

	ctx = logger.WithModel(ctx, req.Model)
	if !h.requireActive(ctx, w, r, req.Model) {
		return
	}

	completion, err := h.Upstream.Complete(ctx, req.Model, req.Messages)
	if err != nil {
		statusCode, apiErr := completionError(err)
		apierrors.HandleError(w, r, apiErr, statusCode)
		return
	}

	writeJSON(ctx, w, http.StatusOK, CompleteResponse{
		Model:  req.Model,
		Output: completionOutput(completion),
		Raw:    rawOrNull(completion.Raw),
	})
}

// completionOutput picks what /api/complete reports as output
func completionOutput(c *upstream.Completion) string {
	switch {
	case c.HasContent():
		return c.Content
	case c.ProviderError != "":
		return "Error: " + c.ProviderError
	default:
		return noContentOutput
	}
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
