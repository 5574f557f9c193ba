package ai

import (
	"context"
	"errors"
	neturl "net/url"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	appcfg "github.com/basedcaster/core/internal/config"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	openaishared "github.com/openai/openai-go/v2/shared"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
)

const (
	geminiOpenAIBaseURL    = "https://generativelanguage.googleapis.com/v1beta/openai/"
	defaultMaxOutputTokens = 1024
)

// ErrEmptyResponse is reported when the model answers with no text.
var ErrEmptyResponse = errors.New("empty response from AI")

func isAnthropicProviderType(raw string) bool {
	return normalizeProviderType(raw) == appcfg.ProviderAnthropic
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

func buildChatClient(cfg appcfg.AIConfig) *openaiclient.Client {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(cfg.APIKey),
		openaioption.WithMaxRetries(0),
	}
	if baseURL := chatBaseURL(cfg); baseURL != "" {
		opts = append(opts, openaioption.WithBaseURL(baseURL))
	}
	client := openaiclient.NewClient(opts...)
	return &client
}

func chatBaseURL(cfg appcfg.AIConfig) string {
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		return normalizeOpenAIBaseURL(endpoint)
	}
	if normalizeProviderType(cfg.Provider) == appcfg.ProviderGemini {
		return geminiOpenAIBaseURL
	}
	return ""
}

func (c *Client) generateChat(ctx context.Context, req Request) (string, error) {
	messages := make([]openaiclient.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openaiclient.SystemMessage(req.System))
	}
	messages = append(messages, openaiclient.UserMessage(req.Prompt))

	params := openaiclient.ChatCompletionNewParams{
		Model:    openaiclient.ChatModel(c.cfg.Model),
		Messages: messages,
	}
	if req.MaxOutputTokens > 0 {
		params.MaxTokens = openaiclient.Int(int64(req.MaxOutputTokens))
	}
	if req.JSONMode {
		params.ResponseFormat = openaiclient.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openaishared.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := c.chat.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := completion.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func buildAnthropicModel(cfg appcfg.AIConfig) jetapi.LanguageModel {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(cfg.APIKey),
		anthropicoption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	client := anthropicclient.NewClient(opts...)
	return jetanthropic.NewLanguageModel(cfg.Model, jetanthropic.WithClient(client))
}

func (c *Client) generateText(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxOutputTokens
	}
	resp, err := jetai.GenerateText(
		ctx,
		buildAIPromptMessages(req.System, req.Prompt),
		jetai.WithModel(c.model),
		jetai.WithMaxOutputTokens(maxTokens),
	)
	if err != nil {
		return "", err
	}
	return extractTextFromAIResponse(resp)
}

func buildAIPromptMessages(systemPrompt, prompt string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: systemPrompt})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)})
	return messages
}

func extractTextFromAIResponse(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// normalizeOpenAIBaseURL makes sure an OpenAI-compatible endpoint ends in /v1.
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") && !strings.HasSuffix(path, "/openai") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
