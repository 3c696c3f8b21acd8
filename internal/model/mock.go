package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockClient is a scripted Client for tests and --provider=mock operation.
// Responses are consumed in order; when the script runs out, the client
// echoes a canned line derived from the prompt.
type MockClient struct {
	mu        sync.Mutex
	model     string
	responses []mockResponse
	calls     []string
}

type mockResponse struct {
	text string
	err  error
}

// NewMockClient creates a mock client with no scripted responses.
func NewMockClient(model string) *MockClient {
	if model == "" {
		model = "mock-model"
	}
	return &MockClient{model: model}
}

// EnqueueResponse scripts the next successful Generate result.
func (c *MockClient) EnqueueResponse(text string) *MockClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, mockResponse{text: text})
	return c
}

// EnqueueError scripts the next Generate call to fail.
func (c *MockClient) EnqueueError(err error) *MockClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, mockResponse{err: err})
	return c
}

// Generate implements Client.Generate.
func (c *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, prompt)

	if len(c.responses) > 0 {
		next := c.responses[0]
		c.responses = c.responses[1:]
		if next.err != nil {
			return "", next.err
		}
		return next.text, nil
	}

	first := prompt
	if idx := strings.IndexByte(first, '\n'); idx >= 0 {
		first = first[:idx]
	}
	return fmt.Sprintf("mock response to: %s", first), nil
}

// Calls returns the prompts seen so far, in order.
func (c *MockClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// CallCount returns the number of Generate invocations.
func (c *MockClient) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// Name implements Client.Name.
func (c *MockClient) Name() string {
	return "mock"
}

// Model implements Client.Model.
func (c *MockClient) Model() string {
	return c.model
}
