package session

import "github.com/abhisek/studybuddy/internal/llm"

// PlanSchema defines the JSON schema for study plan generation.
var PlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "An ordered list of 5-7 sub-topics that make up a study plan",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"plan": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Sub-topic titles in learning order",
			},
		},
		"required":             []any{"plan"},
		"additionalProperties": false,
	},
}

// ExplanationSchema defines the JSON schema for a sub-topic explanation.
var ExplanationSchema = &llm.Schema{
	Name:        "topic-explanation",
	Description: "A beginner-friendly explanation of a sub-topic with an illustration prompt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Markdown explanation of the sub-topic",
			},
			"imagePrompt": map[string]any{
				"type":        "string",
				"description": "Prompt for a minimalist, symbolic illustration without any text",
			},
		},
		"required":             []any{"explanation", "imagePrompt"},
		"additionalProperties": false,
	},
}
