package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateJSON_Valid(t *testing.T) {
	parsed, err := ValidateJSON(testSchema(), json.RawMessage(`{"name":"Alice","age":10,"grade":"A"}`))
	require.NoError(t, err)
	obj, ok := parsed.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", obj["name"])
}

func TestValidateJSON_ValidWithoutOptional(t *testing.T) {
	_, err := ValidateJSON(testSchema(), json.RawMessage(`{"name":"Bob","age":8}`))
	require.NoError(t, err)
}

func TestValidateJSON_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"name":"Charlie"}`},
		{"wrong type", `{"name":"Dave","age":"ten"}`},
		{"invalid enum", `{"name":"Eve","age":9,"grade":"D"}`},
		{"array root", `[{"name":"Eve","age":9}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJSON(testSchema(), json.RawMessage(tt.raw))
			var sv *ErrSchemaViolation
			require.ErrorAs(t, err, &sv)
			assert.Equal(t, "test-object", sv.Schema)
			assert.Equal(t, tt.raw, string(sv.Content))

			var mj *ErrMalformedJSON
			assert.NotErrorAs(t, err, &mj)
		})
	}
}

func TestValidateJSON_Malformed(t *testing.T) {
	for _, raw := range []string{`{not json}`, ``, `   `, `{"name":"Alice",`} {
		_, err := ValidateJSON(testSchema(), json.RawMessage(raw))
		var mj *ErrMalformedJSON
		require.ErrorAs(t, err, &mj, "input %q", raw)

		var sv *ErrSchemaViolation
		assert.NotErrorAs(t, err, &sv)
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	_, err := ValidateJSON(nil, json.RawMessage(`{"anything":"goes"}`))
	require.NoError(t, err)

	_, err = ValidateJSON(nil, json.RawMessage(`nope`))
	var mj *ErrMalformedJSON
	assert.ErrorAs(t, err, &mj)
}

func TestValidateJSON_CodeFence(t *testing.T) {
	raw := json.RawMessage("```json\n{\"name\":\"Alice\",\"age\":10}\n```")
	_, err := ValidateJSON(testSchema(), raw)
	require.NoError(t, err)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```\n[1,2]\n```", `[1,2]`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```json", ``},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(StripCodeFence([]byte(tt.in))), tt.in)
	}
}

func TestValidateJSON_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"items": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"label": map[string]any{"type": "string"},
						},
						"required": []any{"label"},
					},
				},
			},
			"required": []any{"items"},
		},
	}

	_, err := ValidateJSON(schema, json.RawMessage(`{"items":[{"label":"x"},{"label":"y"}]}`))
	require.NoError(t, err)

	_, err = ValidateJSON(schema, json.RawMessage(`{"items":[{"label":"x"},{}]}`))
	var sv *ErrSchemaViolation
	assert.ErrorAs(t, err, &sv)
}
