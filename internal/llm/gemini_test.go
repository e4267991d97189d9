package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{"type": "string", "maxLength": 300},
			"confidence":  map[string]any{"type": "number"},
			"mistake":     map[string]any{"type": "string", "enum": []any{"sign", "constant", "arithmetic"}},
			"steps": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(s.Properties))
	}
	if s.Properties["confidence"].Type != genai.TypeNumber {
		t.Errorf("confidence: got %s", s.Properties["confidence"].Type)
	}
	if got := s.Properties["mistake"].Enum; len(got) != 3 || got[0] != "sign" {
		t.Errorf("mistake enum: got %v", got)
	}
	if s.Properties["steps"].Items == nil || s.Properties["steps"].Items.Type != genai.TypeString {
		t.Errorf("steps items not converted")
	}
	if len(s.Required) != 1 || s.Required[0] != "explanation" {
		t.Errorf("required: got %v", s.Required)
	}
}
