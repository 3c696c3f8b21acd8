package model

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient implements Client using the Anthropic Claude API.
type AnthropicClient struct {
	client anthropic.Client
	config Config
}

// NewAnthropicClient creates an Anthropic-backed client. The API key is read
// from the ANTHROPIC_API_KEY environment variable.
func NewAnthropicClient(cfg Config) (*AnthropicClient, error) {
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return nil, fmt.Errorf("missing ANTHROPIC_API_KEY environment variable")
	}

	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY"))),
		config: cfg,
	}, nil
}

// Generate implements Client.Generate for Anthropic.
func (c *AnthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := callContext(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.client.Messages.New(callCtx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var parts []string
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("anthropic returned an empty response")
	}
	return text, nil
}

// Name implements Client.Name.
func (c *AnthropicClient) Name() string {
	return "anthropic"
}

// Model implements Client.Model.
func (c *AnthropicClient) Model() string {
	return c.config.Model
}
