package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage

	// Chunks, when set, are delivered one by one by Stream. Otherwise
	// Stream delivers Content as a single chunk.
	Chunks []string

	// AfterChunk, when set, runs after the i-th chunk has been delivered.
	AfterChunk func(i int)

	// Image is returned by GenerateImage. Nil means "no image produced".
	Image *Image

	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order across Generate, Stream and
// GenerateImage, and records all requests.
type MockProvider struct {
	mu         sync.Mutex
	responses  []MockResponse
	Calls      []Request
	ImageCalls []ImageRequest
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	resp, err := m.next()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// Stream delivers the next canned response through fn.
func (m *MockProvider) Stream(_ context.Context, req Request, fn StreamFunc) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	resp, err := m.next()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}

	chunks := resp.Chunks
	if chunks == nil {
		chunks = []string{string(resp.Content)}
	}
	for i, c := range chunks {
		if err := fn(c); err != nil {
			return nil, err
		}
		if resp.AfterChunk != nil {
			resp.AfterChunk(i)
		}
	}

	return &Response{
		Content:    json.RawMessage(strings.Join(chunks, "")),
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// GenerateImage returns the next canned response's Image.
func (m *MockProvider) GenerateImage(_ context.Context, req ImageRequest) (*Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ImageCalls = append(m.ImageCalls, req)
	resp, err := m.next()
	if err != nil {
		return nil, err
	}
	return resp.Image, nil
}

// next pops the queue. Callers hold m.mu.
func (m *MockProvider) next() (MockResponse, error) {
	if len(m.responses) == 0 {
		return MockResponse{}, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return MockResponse{}, resp.Err
	}
	return resp, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate and Stream calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Requests returns a copy of the recorded Generate and Stream requests.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.Calls))
	copy(out, m.Calls)
	return out
}

// Pending returns the number of canned responses not yet consumed.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}
