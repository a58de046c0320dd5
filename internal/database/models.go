package database

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExtractionLog records one /api/extract call
type ExtractionLog struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`

	RequestID  string `bson:"request_id" json:"request_id"`
	Model      string `bson:"model" json:"model"`
	PromptType string `bson:"prompt_type" json:"prompt_type"`
	Lang       string `bson:"lang" json:"lang"`
	Input      string `bson:"input" json:"input"`

	// Output is the parsed object, or the raw_text fallback
	Output     any    `bson:"output,omitempty" json:"output,omitempty" swaggertype:"object"`
	RawContent string `bson:"raw_content,omitempty" json:"raw_content,omitempty"`
	Parsed     bool   `bson:"parsed" json:"parsed"`

	StatusCode   int    `bson:"status_code" json:"status_code"`
	ErrorMessage string `bson:"error_message,omitempty" json:"error_message,omitempty"`
	DurationMs   int64  `bson:"duration_ms" json:"duration_ms"`

	Environment string    `bson:"environment,omitempty" json:"environment,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
