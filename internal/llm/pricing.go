package llm

import "strings"

// ModelCost holds pricing for a model. Text prices are USD per 1 million
// tokens; image models are billed per generated image.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
	PerImage      float64
}

// Cost calculates the total USD cost for calls with the given token counts.
func (c ModelCost) Cost(calls, inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000 +
		float64(calls)*c.PerImage
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// OpenRouter IDs ("google/gemini-2.5-flash") resolve to the vendor model.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	if _, name, ok := strings.Cut(modelID, "/"); ok {
		if c, ok := modelCosts[name]; ok {
			return &c
		}
	}
	return nil
}

// modelCosts covers the chat and image models reachable from the default
// configuration and their common alternates.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-5-haiku-20241022":  {InputPerMTok: 0.8, OutputPerMTok: 4},
	"claude-3-5-haiku-latest":    {InputPerMTok: 0.8, OutputPerMTok: 4},
	"claude-haiku-4-5":           {InputPerMTok: 1, OutputPerMTok: 5},
	"claude-haiku-4-5-20251001":  {InputPerMTok: 1, OutputPerMTok: 5},
	"claude-sonnet-4-5":          {InputPerMTok: 3, OutputPerMTok: 15},
	"claude-sonnet-4-5-20250929": {InputPerMTok: 3, OutputPerMTok: 15},

	// OpenAI
	"gpt-4.1":      {InputPerMTok: 2, OutputPerMTok: 8},
	"gpt-4.1-mini": {InputPerMTok: 0.4, OutputPerMTok: 1.6},
	"gpt-4.1-nano": {InputPerMTok: 0.1, OutputPerMTok: 0.4},
	"gpt-4o":       {InputPerMTok: 2.5, OutputPerMTok: 10},
	"gpt-4o-mini":  {InputPerMTok: 0.15, OutputPerMTok: 0.6},
	"gpt-5-mini":   {InputPerMTok: 0.25, OutputPerMTok: 2},
	"gpt-5-nano":   {InputPerMTok: 0.05, OutputPerMTok: 0.4},
	"dall-e-2":     {PerImage: 0.02},
	"dall-e-3":     {PerImage: 0.04},

	// Google
	"gemini-2.0-flash":        {InputPerMTok: 0.1, OutputPerMTok: 0.4},
	"gemini-2.0-flash-lite":   {InputPerMTok: 0.075, OutputPerMTok: 0.3},
	"gemini-2.5-flash":        {InputPerMTok: 0.3, OutputPerMTok: 2.5},
	"gemini-2.5-flash-lite":   {InputPerMTok: 0.1, OutputPerMTok: 0.4},
	"gemini-2.5-pro":          {InputPerMTok: 1.25, OutputPerMTok: 10},
	"gemini-flash-latest":     {InputPerMTok: 0.3, OutputPerMTok: 2.5},
	"imagen-3.0-generate-002": {PerImage: 0.03},
	"imagen-4.0-generate-001": {PerImage: 0.04},
}
