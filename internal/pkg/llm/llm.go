// Package llm wraps the eino ChatModel behind a prompt-in, text-out client.
// API keys belong to individual users, so a ChatModel is built per call
// rather than at startup.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"lull/internal/config"
)

// TextGenerator generates free text from a prompt using the caller's API key
type TextGenerator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// Client eino-backed text generator
type Client struct {
	cfg *config.AIConfig
}

// NewClient creates a text-generation client
func NewClient(cfg *config.AIConfig) *Client {
	return &Client{cfg: cfg}
}

// Generate runs a single prompt through the configured chat model
func (c *Client) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	chatModel, err := newChatModel(ctx, c.cfg, apiKey)
	if err != nil {
		return "", fmt.Errorf("failed to create chat model: %w", err)
	}

	messages := []*schema.Message{
		schema.UserMessage(prompt),
	}

	response, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if response.Content == "" {
		return "", fmt.Errorf("empty response from chat model")
	}

	return response.Content, nil
}
