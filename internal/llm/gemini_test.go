package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveModel(tt.input, geminiModels), tt.input)
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":         map[string]any{"type": "integer"},
						"question":   map[string]any{"type": "string"},
						"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"uniqueItems": true,
						},
					},
					"required": []any{"id", "question", "difficulty"},
				},
			},
		},
		"required": []any{"questions"},
	}

	schema := buildGeminiSchema(def)

	assert.EqualValues(t, "OBJECT", schema.Type)
	assert.Equal(t, []string{"questions"}, schema.Required)

	questions := schema.Properties["questions"]
	require.NotNil(t, questions)
	assert.EqualValues(t, "ARRAY", questions.Type)

	item := questions.Items
	require.NotNil(t, item)
	assert.Len(t, item.Properties, 4)
	assert.EqualValues(t, "INTEGER", item.Properties["id"].Type)
	assert.Equal(t, []string{"easy", "medium", "hard"}, item.Properties["difficulty"].Enum)
	assert.EqualValues(t, "STRING", item.Properties["options"].Items.Type)
	assert.Len(t, item.Required, 3)
}

func TestBuildGeminiSchema_NullableAndUnknownKeywords(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"answer": map[string]any{"type": []any{"string", "null"}},
			"count":  map[string]any{"type": "integer"},
		},
	})

	answer := schema.Properties["answer"]
	require.NotNil(t, answer)
	assert.EqualValues(t, "STRING", answer.Type)
	require.NotNil(t, answer.Nullable)
	assert.True(t, *answer.Nullable)
	assert.Nil(t, schema.Properties["count"].Nullable)
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig(Request{System: "sys", MaxTokens: 64, Temperature: 0.5, Schema: testSchema()})

	assert.EqualValues(t, 64, cfg.MaxOutputTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.5, *cfg.Temperature, 1e-6)
	assert.Equal(t, "sys", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.NotNil(t, cfg.ResponseSchema)

	plain := geminiConfig(Request{MaxTokens: 64})
	assert.Nil(t, plain.Temperature)
	assert.Nil(t, plain.SystemInstruction)
	assert.Nil(t, plain.ResponseSchema)
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), GeminiConfig{})
	assert.Error(t, err)
}
