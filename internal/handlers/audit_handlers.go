package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/majidyz63/ai-extractor/internal/errors"
	"github.com/majidyz63/ai-extractor/internal/logger"
	"github.com/majidyz63/ai-extractor/internal/prompt"
)

const (
	defaultExtractionsLimit = 20
	maxExtractionsLimit     = 100
)

// PromptTypesHandler lists the prompt types that can be requested
// @Summary      List prompt types
// @Tags         prompts
// @Produce      json
// @Success      200  {object}  PromptTypesResponse   "Available prompt types"
// @Failure      500  {object}  errors.ErrorResponse  "Template directory unreadable"
// @Router       /api/prompts [get]
func (h *APIHandlers) PromptTypesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithComponent(r.Context(), logger.ComponentNames.PromptEngine)

	types, err := h.Prompts.List()
	if err != nil {
		apierrors.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(ctx, w, http.StatusOK, PromptTypesResponse{PromptTypes: types})
}

// PromptTemplateHandler shows one template and the variables it uses
// @Summary      Describe a prompt type
// @Tags         prompts
// @Produce      json
// @Param        type  path      string                  true  "Prompt type"
// @Success      200   {object}  PromptTemplateResponse  "Template"
// @Failure      400   {object}  errors.ErrorResponse    "Invalid prompt type"
// @Failure      500   {object}  errors.ErrorResponse    "Template unreadable"
// @Router       /api/prompts/{type} [get]
func (h *APIHandlers) PromptTemplateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithComponent(r.Context(), logger.ComponentNames.PromptEngine)

	tpl, err := h.Prompts.Load(r.PathValue("type"))
	if err != nil {
		if errors.Is(err, prompt.ErrInvalidPromptType) {
			apierrors.HandleError(w, r, apierrors.NewValidationError(err.Error()), http.StatusBadRequest)
			return
		}
		apierrors.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, PromptTemplateResponse{
		Name:        tpl.Name,
		Description: tpl.Description,
		Variables:   prompt.Variables(tpl),
		System:      tpl.System,
		Prompt:      tpl.Prompt,
	})
}

// ExtractionsHandler lists recent extraction audit records
// @Summary      Recent extractions
// @Description  Newest first. Only available when MONGODB_URI is configured.
// @Tags         audit
// @Produce      json
// @Param        limit  query     int                   false  "Maximum records (1-100, default 20)"
// @Success      200    {object}  ExtractionsResponse   "Audit records"
// @Failure      400    {object}  errors.ErrorResponse  "Invalid limit"
// @Failure      503    {object}  errors.ErrorResponse  "Audit log disabled"
// @Router       /api/extractions [get]
func (h *APIHandlers) ExtractionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithComponent(r.Context(), logger.ComponentNames.Database)

	if !h.Audit.Enabled() {
		apierrors.HandleError(w, r, apierrors.NewUnavailableError("Extraction audit log is disabled"), http.StatusServiceUnavailable)
		return
	}

	limit := int64(defaultExtractionsLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > maxExtractionsLimit {
			apierrors.HandleError(w, r, apierrors.NewValidationError("limit must be an integer between 1 and 100"), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.Audit.Recent(ctx, limit)
	if err != nil {
		apierrors.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(ctx, w, http.StatusOK, ExtractionsResponse{Extractions: records})
}

// ExtractionHandler returns the audit record for one request id
// @Summary      Extraction by request id
// @Tags         audit
// @Produce      json
// @Param        request_id  path      string                  true  "X-Request-ID of the extraction"
// @Success      200         {object}  database.ExtractionLog  "Audit record"
// @Failure      404         {object}  errors.ErrorResponse    "No record"
// @Failure      503         {object}  errors.ErrorResponse    "Audit log disabled"
// @Router       /api/extractions/{request_id} [get]
func (h *APIHandlers) ExtractionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithComponent(r.Context(), logger.ComponentNames.Database)

	if !h.Audit.Enabled() {
		apierrors.HandleError(w, r, apierrors.NewUnavailableError("Extraction audit log is disabled"), http.StatusServiceUnavailable)
		return
	}

	requestID := r.PathValue("request_id")
	record, err := h.Audit.Get(ctx, requestID)
	if err != nil {
		apierrors.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	if record == nil {
		apierrors.HandleError(w, r, apierrors.NewNotFoundError("No extraction recorded for request "+requestID), http.StatusNotFound)
		return
	}
	writeJSON(ctx, w, http.StatusOK, record)
}
