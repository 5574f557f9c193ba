package ai

import (
	"context"
	"errors"

	appcfg "github.com/basedcaster/core/internal/config"
	openaiclient "github.com/openai/openai-go/v2"
	jetapi "go.jetify.com/ai/api"
)

// ErrDisabled is reported when no AI API key is configured.
var ErrDisabled = errors.New("AI provider api key is empty")

// Generator produces raw model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Client talks to the configured provider. OpenAI-compatible providers
// (Gemini's OpenAI endpoint included) go through chat completions so JSON
// response mode is available; Anthropic goes through the jetify model.
type Client struct {
	cfg   appcfg.AIConfig
	chat  *openaiclient.Client
	model jetapi.LanguageModel
}

// NewClient builds a client for cfg. It returns ErrDisabled when cfg has no API key.
func NewClient(cfg appcfg.AIConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	c := &Client{cfg: cfg}
	if isAnthropicProviderType(cfg.Provider) {
		c.model = buildAnthropicModel(cfg)
		return c, nil
	}
	c.chat = buildChatClient(cfg)
	return c, nil
}

// Provider returns the normalized provider type.
func (c *Client) Provider() string { return c.cfg.Provider }

// Model returns the model id requests are sent to.
func (c *Client) Model() string { return c.cfg.Model }

// SupportsJSONMode reports whether requests can ask for a JSON-only response.
func (c *Client) SupportsJSONMode() bool { return c.chat != nil }

// Generate sends a single-turn prompt and returns the model's text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if timeout := c.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if c.chat != nil {
		return c.generateChat(ctx, req)
	}
	return c.generateText(ctx, req)
}
