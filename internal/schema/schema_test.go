package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var person = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":  map[string]any{"type": "string"},
		"age":   map[string]any{"type": "integer", "minimum": 0},
		"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
	},
	"required": []any{"name", "age"},
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Alice","age":10,"grade":"A"}`, false},
		{"optional omitted", `{"name":"Bob","age":8}`, false},
		{"missing required", `{"name":"Charlie"}`, true},
		{"wrong type", `{"name":"Dave","age":"ten"}`, true},
		{"bad enum", `{"name":"Eve","age":9,"grade":"Z"}`, true},
		{"negative", `{"name":"Fay","age":-1}`, true},
		{"malformed", `{"name":`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("person", person, []byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCompile_Cached(t *testing.T) {
	a, err := Compile("cached-person", person)
	require.NoError(t, err)
	b, err := Compile("cached-person", person)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestCompile_InvalidDefinition(t *testing.T) {
	_, err := Compile("broken", map[string]any{"type": 12})
	assert.Error(t, err)
}
