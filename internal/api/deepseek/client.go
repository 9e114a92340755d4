package deepseek

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// systemPrompt pins the model to a single-object JSON reply so the analyzer
// can extract a score without free-text parsing.
const systemPrompt = `You are a financial and trading expert. Based on the content of this text, evaluate its sentiment and immediate impact on market prices.
Output your result in JSON format as {'positive': x} or {'negative': x}, where:
- x represents the score that can be in between 0 to 1.
Output only the JSON object.`

// Client wraps an OpenAI-compatible chat completion API. The agent endpoint
// and model name come from configuration, so any compatible provider works.
type Client struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates a sentiment scoring client against baseURL. An empty
// baseURL falls back to the default OpenAI endpoint.
func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: log.With().Str("component", "deepseek_client").Logger(),
	}
}

// ScoreSentiment asks the model to judge a post's likely market impact and
// returns the raw completion text.
func (c *Client) ScoreSentiment(ctx context.Context, text string) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: text,
				},
			},
		},
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("Chat completion error")
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn().Msg("Model returned empty choices")
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
