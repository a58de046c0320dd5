package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/majidyz63/ai-extractor/internal/logger"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation_error"
	ErrorTypeNotFound      ErrorType = "not_found_error"
	ErrorTypeInternal      ErrorType = "internal_error"
	ErrorTypeExternal      ErrorType = "external_error"
	ErrorTypeConfiguration ErrorType = "configuration_error"
	ErrorTypeUnavailable   ErrorType = "unavailable_error"
)

// APIError represents a structured API error
type APIError struct {
	Type    ErrorType
	Message string
	// Raw carries the upstream payload, when there is one worth showing the caller
	Raw json.RawMessage
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ErrorResponse is the JSON error envelope returned to callers
type ErrorResponse struct {
	Error string          `json:"error" example:"No input provided"`
	Type  ErrorType       `json:"type,omitempty" example:"validation_error"`
	Raw   json.RawMessage `json:"raw,omitempty" swaggertype:"object"`
}

// NewAPIError creates a new APIError
func NewAPIError(errorType ErrorType, message string) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
	}
}

// WithRaw attaches the raw upstream payload
func (e *APIError) WithRaw(raw json.RawMessage) *APIError {
	e.Raw = raw
	return e
}

// HandleError writes a standardized error response to the HTTP response writer
func HandleError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		apiError = inferErrorType(err, statusCode)
	}

	response := ErrorResponse{
		Error: apiError.Message,
		Type:  apiError.Type,
		Raw:   apiError.Raw,
	}

	ctx := logger.WithComponent(r.Context(), logger.ComponentNames.ErrorHandler)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	jsonBytes, jsonErr := json.Marshal(response)
	if jsonErr != nil {
		logger.Error(ctx, "Error marshaling error response", jsonErr)
		jsonBytes = []byte(`{"error":"Internal server error","type":"internal_error"}`)
	}
	if _, writeErr := w.Write(jsonBytes); writeErr != nil {
		logger.Error(ctx, "Failed to write error response", writeErr)
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error(ctx, "API error", err,
			"response_status_code", statusCode,
			"error_type", string(apiError.Type),
		)
		return
	}
	logger.Warn(ctx, "API error",
		"response_status_code", statusCode,
		"error_type", string(apiError.Type),
		"error_message", apiError.Message,
	)
}

// inferErrorType maps a plain error onto an APIError based on the status code
func inferErrorType(err error, statusCode int) *APIError {
	message := err.Error()

	switch statusCode {
	case http.StatusBadRequest:
		return NewAPIError(ErrorTypeValidation, message)
	case http.StatusNotFound:
		return NewAPIError(ErrorTypeNotFound, message)
	case http.StatusBadGateway, http.StatusGatewayTimeout:
		return NewAPIError(ErrorTypeExternal, message)
	case http.StatusServiceUnavailable:
		return NewAPIError(ErrorTypeUnavailable, message)
	default:
		return NewAPIError(ErrorTypeInternal, message)
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *APIError {
	return NewAPIError(ErrorTypeValidation, message)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *APIError {
	return NewAPIError(ErrorTypeNotFound, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, message)
}

// NewExternalError creates an upstream service error
func NewExternalError(message string) *APIError {
	return NewAPIError(ErrorTypeExternal, message)
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(message string) *APIError {
	return NewAPIError(ErrorTypeConfiguration, message)
}

// NewUnavailableError creates an error for a disabled optional feature
func NewUnavailableError(message string) *APIError {
	return NewAPIError(ErrorTypeUnavailable, message)
}
