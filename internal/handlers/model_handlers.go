package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	apierrors "github.com/majidyz63/ai-extractor/internal/errors"
	"github.com/majidyz63/ai-extractor/internal/logger"
	"github.com/majidyz63/ai-extractor/internal/registry"
	"github.com/majidyz63/ai-extractor/internal/utils"
)

// ActiveModelsHandler lists active model identifiers
// @Summary      List active models
// @Description  Returns a bare JSON array of the model identifiers currently marked active
// @Tags         models
// @Produce      json
// @Success      200  {array}   string                "Active model identifiers"
// @Failure      500  {object}  errors.ErrorResponse  "Registry unreadable"
// @Router       /api/active-models [get]
func (h *APIHandlers) ActiveModelsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithStage(logger.WithComponent(r.Context(), logger.ComponentNames.Registry), logger.LogStages.RegistryRead)

	active, err := h.Registry.Active()
	if err != nil {
		apierrors.HandleError(w, r, fmt.Errorf("failed to read model registry: %w", err), http.StatusInternalServerError)
		return
	}
	writeJSON(ctx, w, http.StatusOK, active)
}

// ListModelsHandler lists every registered model with its flag
// @Summary      List registered models
// @Tags         models
// @Produce      json
// @Success      200  {object}  ModelsResponse        "Registered models"
// @Failure      500  {object}  errors.ErrorResponse  "Registry unreadable"
// @Router       /api/models [get]
func (h *APIHandlers) ListModelsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithStage(logger.WithComponent(r.Context(), logger.ComponentNames.Registry), logger.LogStages.RegistryRead)

	entries, err := h.Registry.List()
	if err != nil {
		apierrors.HandleError(w, r, fmt.Errorf("failed to read model registry: %w", err), http.StatusInternalServerError)
		return
	}
	writeJSON(ctx, w, http.StatusOK, ModelsResponse{Models: entries})
}

// AddModelHandler registers a model or overwrites its flag
// @Summary      Add or update a model
// @Description  Accepts a form (model, active checkbox) or JSON {model, active}. JSON active defaults to true.
// @Tags         models
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request  body      AddModelRequest       false  "JSON body"
// @Param        model    formData  string                false  "Model identifier"
// @Param        active   formData  string                false  "Present to mark active"
// @Success      200      {object}  ModelStatusResponse   "Model added/updated"
// @Failure      400      {object}  errors.ErrorResponse  "Missing model"
// @Router       /add [post]
// @Router       /api/models [post]
func (h *APIHandlers) AddModelHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithStage(logger.WithComponent(r.Context(), logger.ComponentNames.Registry), logger.LogStages.RegistryWrite)

	model, active, err := parseAddRequest(w, r)
	if err != nil {
		apierrors.HandleError(w, r, err, http.StatusBadRequest)
		return
	}

	entry, err := h.Registry.Add(model, active)
	if err != nil {
		if errors.Is(err, registry.ErrEmptyModel) {
			apierrors.HandleError(w, r, apierrors.NewValidationError("No model provided"), http.StatusBadRequest)
			return
		}
		apierrors.HandleError(w, r, fmt.Errorf("failed to save model registry: %w", err), http.StatusInternalServerError)
		return
	}

	logger.Info(ctx, "Model added/updated", "registry_model", entry.Model, "active", entry.Active)
	writeJSON(ctx, w, http.StatusOK, ModelStatusResponse{
		Status: "Model added/updated",
		Model:  entry.Model,
		Active: &entry.Active,
	})
}

// parseAddRequest reads model and active from a JSON or form body
func parseAddRequest(w http.ResponseWriter, r *http.Request) (string, bool, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(utils.HeaderContentType))
	if mediaType == utils.ContentTypeJSON {
		var req AddModelRequest
		if err := decodeJSON(w, r, &req); err != nil {
			if errors.Is(err, errEmptyBody) {
				return "", false, apierrors.NewValidationError("No model provided")
			}
			return "", false, invalidBody(err)
		}
		active := true
		if req.Active != nil {
			active = *req.Active
		}
		return req.Model, active, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return "", false, apierrors.NewValidationError("Invalid form body: " + err.Error())
	}
	// An HTML checkbox is either absent or sent with any value
	_, present := r.Form["active"]
	return r.FormValue("model"), present && !isFalse(r.FormValue("active")), nil
}

func isFalse(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "false", "0", "off", "no":
		return true
	}
	return false
}

// ToggleModelHandler flips a model's active flag
// @Summary      Toggle a model
// @Tags         models
// @Produce      json
// @Param        model  query     string                true  "Model identifier"
// @Success      200    {object}  ModelStatusResponse   "New state"
// @Failure      400    {object}  errors.ErrorResponse  "Missing model"
// @Failure      404    {object}  errors.ErrorResponse  "Model not registered"
// @Router       /toggle [get]
// @Router       /toggle [post]
func (h *APIHandlers) ToggleModelHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithStage(logger.WithComponent(r.Context(), logger.ComponentNames.Registry), logger.LogStages.RegistryWrite)

	model := strings.TrimSpace(r.FormValue("model"))
	if model == "" {
		apierrors.HandleError(w, r, apierrors.NewValidationError("No model provided"), http.StatusBadRequest)
		return
	}

	entry, err := h.Registry.Toggle(model)
	if err != nil {
		handleRegistryError(w, r, model, err)
		return
	}

	logger.Info(ctx, "Model toggled", "registry_model", entry.Model, "active", entry.Active)
	writeJSON(ctx, w, http.StatusOK, ModelStatusResponse{
		Status: "toggled",
		Model:  entry.Model,
		Active: &entry.Active,
	})
}

// DeleteModelHandler removes a model from the registry
// @Summary      Delete a model
// @Tags         models
// @Produce      json
// @Param        model  query     string                true  "Model identifier"
// @Success      200    {object}  ModelStatusResponse   "Deleted"
// @Failure      400    {object}  errors.ErrorResponse  "Missing model"
// @Failure      404    {object}  errors.ErrorResponse  "Model not registered"
// @Router       /delete [get]
// @Router       /delete [post]
func (h *APIHandlers) DeleteModelHandler(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithStage(logger.WithComponent(r.Context(), logger.ComponentNames.Registry), logger.LogStages.RegistryWrite)

	model := strings.TrimSpace(r.FormValue("model"))
	if model == "" {
		apierrors.HandleError(w, r, apierrors.NewValidationError("No model provided"), http.StatusBadRequest)
		return
	}

	if err := h.Registry.Delete(model); err != nil {
		handleRegistryError(w, r, model, err)
		return
	}

	logger.Info(ctx, "Model deleted", "registry_model", model)
	writeJSON(ctx, w, http.StatusOK, ModelStatusResponse{Status: "deleted", Model: model})
}

func handleRegistryError(w http.ResponseWriter, r *http.Request, model string, err error) {
	if errors.Is(err, registry.ErrModelNotFound) {
		apierrors.HandleError(w, r, apierrors.NewNotFoundError("Model not found: "+model), http.StatusNotFound)
		return
	}
	apierrors.HandleError(w, r, fmt.Errorf("failed to update model registry: %w", err), http.StatusInternalServerError)
}
