package quiz

import "github.com/abhisek/studybuddy/internal/llm"

// QuizSchema defines the JSON schema for the review quiz. Option counts and
// answer indices are checked after parsing so that one malformed item does
// not discard the whole quiz.
var QuizSchema = &llm.Schema{
	Name:        "review-quiz",
	Description: "Multiple-choice review questions covering a study plan",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly four answer options",
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option (0-3)",
						},
					},
					"required":             []any{"question", "options", "correctAnswerIndex"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"quiz"},
		"additionalProperties": false,
	},
}
