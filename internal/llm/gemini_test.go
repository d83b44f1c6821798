package llm

import (
	"testing"
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
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"correctAnswerIndex": map[string]any{"type": "integer"},
			"difficulty":         map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
		},
		"required": []any{"question", "options", "correctAnswerIndex"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["question"].Type != "STRING" {
		t.Fatalf("expected STRING for question, got %s", schema.Properties["question"].Type)
	}
	if schema.Properties["correctAnswerIndex"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for correctAnswerIndex, got %s", schema.Properties["correctAnswerIndex"].Type)
	}
	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["difficulty"].Enum))
	}
	options := schema.Properties["options"]
	if options.Type != "ARRAY" {
		t.Fatalf("expected ARRAY for options, got %s", options.Type)
	}
	if options.Items.Type != "STRING" {
		t.Fatalf("expected STRING for options items, got %s", options.Items.Type)
	}
	if options.MinItems == nil || *options.MinItems != 4 {
		t.Fatalf("expected minItems 4, got %v", options.MinItems)
	}
	if options.MaxItems == nil || *options.MaxItems != 4 {
		t.Fatalf("expected maxItems 4, got %v", options.MaxItems)
	}
	if len(schema.Required) != 3 {
		t.Fatalf("expected 3 required fields, got %d", len(schema.Required))
	}
}
