package handlers

import (
	"encoding/json"

	"github.com/majidyz63/ai-extractor/internal/database"
	"github.com/majidyz63/ai-extractor/internal/registry"
	"github.com/majidyz63/ai-extractor/internal/upstream"
)

// ExtractRequest is the body of POST /api/extract
type ExtractRequest struct {
	Model      string `json:"model" example:"mistral/mistral-7b-instruct:free"`
	Input      string `json:"input" example:"Lunch with Sara next Friday at noon"`
	PromptType string `json:"prompt_type,omitempty" example:"calendar_event"`
	Lang       string `json:"lang,omitempty" example:"en-US"`
	// Variables fill extra {{name}} placeholders and override built-in ones
	Variables map[string]string `json:"variables,omitempty"`
}

// ExtractResponse is the result of a successful extraction
type ExtractResponse struct {
	Model      string `json:"model" example:"mistral/mistral-7b-instruct:free"`
	PromptType string `json:"prompt_type" example:"calendar_event"`
	Input      string `json:"input" example:"Lunch with Sara next Friday at noon"`
	Lang       string `json:"lang" example:"en-US"`
	// Output is the parsed JSON value, or {"raw_text": ...} when the reply was not JSON
	Output any             `json:"output" swaggertype:"object"`
	Raw    json.RawMessage `json:"raw" swaggertype:"object"`
}

// CompleteRequest is the body of POST /api/complete
type CompleteRequest struct {
	Model    string             `json:"model" validate:"required" example:"mistral/mistral-7b-instruct:free"`
	Messages []upstream.Message `json:"messages" validate:"required,min=1,dive"`
}

// CompleteResponse relays the upstream reply
type CompleteResponse struct {
	Model  string          `json:"model" example:"mistral/mistral-7b-instruct:free"`
	Output string          `json:"output" example:"{\"title\":\"Lunch with Sara\"}"`
	Raw    json.RawMessage `json:"raw" swaggertype:"object"`
}

// AddModelRequest is the JSON form of a registry add. Active defaults to true.
type AddModelRequest struct {
	Model  string `json:"model" example:"mistral/mistral-7b-instruct:free"`
	Active *bool  `json:"active,omitempty" example:"true"`
}

// ModelStatusResponse acknowledges a registry change
type ModelStatusResponse struct {
	Status string `json:"status" example:"toggled"`
	Model  string `json:"model" example:"mistral/mistral-7b-instruct:free"`
	Active *bool  `json:"active,omitempty" example:"false"`
}

// ModelsResponse lists every registered model
type ModelsResponse struct {
	Models []registry.Entry `json:"models"`
}

// PromptTypesResponse lists the available prompt types
type PromptTypesResponse struct {
	PromptTypes []string `json:"prompt_types" example:"calendar_event,contact"`
}

// PromptTemplateResponse describes one prompt template
type PromptTemplateResponse struct {
	Name        string   `json:"name" example:"calendar_event"`
	Description string   `json:"description,omitempty" example:"Built-in structured extraction prompt"`
	Variables   []string `json:"variables" example:"input,prompt_type,today"`
	System      string   `json:"system,omitempty"`
	Prompt      string   `json:"prompt"`
}

// ExtractionsResponse lists recent audit records
type ExtractionsResponse struct {
	Extractions []*database.ExtractionLog `json:"extractions"`
}

// HealthResponse represents the structured health check response
type HealthResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp string                 `json:"timestamp" example:"2025-01-01T00:00:00Z"`
	Services  map[string]string      `json:"services"`
	Details   map[string]interface{} `json:"details"`
}
