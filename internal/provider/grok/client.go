// Package grok provides the completion client for the xAI API using the
// OpenAI SDK (the endpoint is chat-completions compatible). It implements
// the domain.CompletionClient interface: one system instruction plus one
// user message in, a single text completion out, bounded by a fixed timeout
// with no retries.
package grok

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/martin/internal/observability"
)

// Client implements domain.CompletionClient for the xAI API.
type Client struct {
	client openai.Client
	model  string
	config Config
}

// NewClient creates a new Grok completion client.
func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, errors.New("Grok API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0), // degrade to local analysis instead of retrying
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  config.Model,
		config: config,
	}, nil
}

// Complete submits the instruction pair and returns the completion text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling Grok API", observability.String("model", c.model))

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}

	if c.config.Temperature > 0 {
		params.Temperature = openai.Float(c.config.Temperature)
	}

	if c.config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.config.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("Grok API call failed", observability.Error(err))
		return "", fmt.Errorf("Grok API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("Grok API returned no choices")
	}

	logger.Debug("Grok API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)

	return resp.Choices[0].Message.Content, nil
}

// Name returns the client identifier.
func (c *Client) Name() string {
	return "grok"
}
