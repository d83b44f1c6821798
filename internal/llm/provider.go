package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for generative backends.
// Consumers call Generate for single results, Stream for incremental text
// and GenerateImage for illustrations.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the complete response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Stream sends a prompt and delivers the reply as text increments, in
	// arrival order, to fn. Returning an error from fn aborts the stream.
	// The returned Response carries the concatenated text.
	Stream(ctx context.Context, req Request, fn StreamFunc) (*Response, error)

	// GenerateImage renders a single image for the prompt. A nil Image with
	// a nil error means the backend produced no usable image.
	GenerateImage(ctx context.Context, req ImageRequest) (*Image, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// StreamFunc receives one text increment of a streamed reply.
type StreamFunc func(delta string) error

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Study prompts are single-turn,
	// so this usually contains one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is the raw text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// the validator). Kebab-case, e.g. "study-plan".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. Otherwise it holds the
	// raw text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text returns the content as plain text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ImageRequest describes an illustration to render.
type ImageRequest struct {
	Prompt string

	// AspectRatio such as "1:1". Providers that take pixel sizes map it.
	AspectRatio string

	// MIMEType of the desired output, e.g. "image/jpeg".
	MIMEType string
}

// Image is a rendered illustration.
type Image struct {
	MIMEType string
	Data     []byte
}
