package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func explanationTestSchema() *Schema {
	return &Schema{
		Name:        "test-explanation",
		Description: "A sub-topic explanation with an optional illustration prompt",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"explanation": map[string]any{"type": "string", "minLength": 1},
				"imagePrompt": map[string]any{"type": "string"},
			},
			"required": []string{"explanation"},
		},
	}
}

func TestConform(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain object", `{"explanation":"Cells divide."}`, `{"explanation":"Cells divide."}`, false},
		{"with image prompt", `{"explanation":"x","imagePrompt":"a cell"}`, `{"explanation":"x","imagePrompt":"a cell"}`, false},
		{"json fence", "```json\n{\"explanation\":\"x\"}\n```", `{"explanation":"x"}`, false},
		{"bare fence", "```\n{\"explanation\":\"x\"}\n```", `{"explanation":"x"}`, false},
		{"surrounding prose", "Sure! Here it is:\n{\"explanation\":\"x\"}\nHope it helps.", `{"explanation":"x"}`, false},
		{"missing required", `{"imagePrompt":"a cell"}`, "", true},
		{"empty explanation", `{"explanation":""}`, "", true},
		{"wrong type", `{"explanation":42}`, "", true},
		{"prose only", `I cannot help with that.`, "", true},
		{"empty", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conform(explanationTestSchema(), json.RawMessage(tt.raw))
			if tt.wantErr {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("want *ErrInvalidResponse, got %v", err)
				}
				if string(invErr.Content) != tt.raw {
					t.Fatalf("error content = %q, want the original reply %q", invErr.Content, tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("conform: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("conform() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConformNilSchemaPassesThrough(t *testing.T) {
	raw := json.RawMessage("```json\n{}\n```")
	got, err := conform(nil, raw)
	if err != nil {
		t.Fatalf("conform(nil): %v", err)
	}
	if string(got) != string(raw) {
		t.Fatalf("content changed: %q", got)
	}
}

func TestConformQuizItems(t *testing.T) {
	schema := &Schema{
		Name:        "test-quiz",
		Description: "Review quiz",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question":           map[string]any{"type": "string"},
							"options":            map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"correctAnswerIndex": map[string]any{"type": "integer"},
						},
						"required": []string{"question", "options", "correctAnswerIndex"},
					},
				},
			},
			"required": []string{"questions"},
		},
	}

	ok := `{"questions":[{"question":"Q1","options":["a","b","c","d"],"correctAnswerIndex":1}]}`
	if _, err := conform(schema, json.RawMessage(ok)); err != nil {
		t.Fatalf("valid quiz rejected: %v", err)
	}

	bad := `{"questions":[{"question":"Q1","options":"a,b,c,d","correctAnswerIndex":1}]}`
	if _, err := conform(schema, json.RawMessage(bad)); err == nil {
		t.Fatal("expected error for options given as a string")
	}
}

func TestUnwrapJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  \n{\"a\":{\"b\":2}}\n ", `{"a":{"b":2}}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"no braces", "no braces"},
		{"} backwards {", "} backwards {"},
	}
	for _, tt := range tests {
		if got := string(unwrapJSON([]byte(tt.in))); got != tt.want {
			t.Fatalf("unwrapJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
