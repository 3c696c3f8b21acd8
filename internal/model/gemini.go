package model

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Client using the Gemini API.
type GeminiClient struct {
	client *genai.Client
	config Config
}

// NewGeminiClient creates a Gemini-backed client. The API key is read from
// GEMINI_API_KEY (or GOOGLE_API_KEY as a fallback).
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY or GOOGLE_API_KEY environment variable")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: cfg}, nil
}

// Generate implements Client.Generate for Gemini.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := callContext(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(callCtx, c.config.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

// Name implements Client.Name.
func (c *GeminiClient) Name() string {
	return "gemini"
}

// Model implements Client.Model.
func (c *GeminiClient) Model() string {
	return c.config.Model
}
