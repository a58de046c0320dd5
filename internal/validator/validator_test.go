package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type request struct {
	Model    string    `json:"model" validate:"required"`
	Messages []message `json:"messages" validate:"required,min=1,dive"`
	Internal string    `json:"-"`
}

func TestStructValid(t *testing.T) {
	req := request{
		Model:    "openai/gpt-4o-mini",
		Messages: []message{{Role: "user", Content: "hello"}},
	}

	assert.NoError(t, Struct(req))
}

func TestStructRequiredUsesJSONNames(t *testing.T) {
	err := Struct(request{})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "Field 'model' is required")
	assert.Contains(t, err.Error(), "Field 'messages' is required")
}

func TestStructMinItems(t *testing.T) {
	err := Struct(request{Model: "m", Messages: []message{}})
	require.Error(t, err)

	assert.Equal(t, "Field 'messages' must have at least 1 items", err.Error())
}

func TestStructNestedFields(t *testing.T) {
	err := Struct(request{
		Model:    "m",
		Messages: []message{{Role: "robot", Content: "x"}},
	})
	require.Error(t, err)

	assert.Equal(t, "Field 'messages[0].role' must be one of: system user assistant", err.Error())
}

func TestStructNonStruct(t *testing.T) {
	err := Struct("not a struct")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
