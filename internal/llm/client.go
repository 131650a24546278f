package llm

import (
	"context"
	"log/slog"

	"github.com/sashabaranov/go-openai"

	"github.com/repotour/repotour/internal/config"
	apperrors "github.com/repotour/repotour/internal/errors"
)

// Provider represents the LLM provider
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Client provides a provider-switching completion interface over Gemini
// and OpenAI. Credentials come in explicitly through config; the client
// never reads the process environment itself.
type Client struct {
	provider     Provider
	geminiClient *GeminiClient
	openaiClient *openai.Client
	openaiModel  string
	logger       *slog.Logger
}

// NewClient creates an LLM client for the configured provider. A missing
// API key is a KindLLMAuth error, surfaced before any completion call.
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	logger := slog.Default().With("component", "llm")

	provider := Provider(cfg.Provider)
	if provider == "" {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderGemini:
		if cfg.GeminiKey == "" {
			return nil, apperrors.New(apperrors.KindLLMAuth,
				"Gemini API key not configured (set GEMINI_API_KEY or run 'rtour configure')")
		}
		gc, err := NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.KindExternal, "failed to initialize gemini client")
		}
		logger.Info("llm client initialized", "provider", provider, "model", cfg.GeminiModel)
		return &Client{provider: ProviderGemini, geminiClient: gc, logger: logger}, nil

	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, apperrors.New(apperrors.KindLLMAuth,
				"OpenAI API key not configured (set OPENAI_API_KEY or run 'rtour configure')")
		}
		model := cfg.OpenAIModel
		if model == "" {
			model = "gpt-4o-mini"
		}
		logger.Info("llm client initialized", "provider", provider, "model", model)
		return &Client{
			provider:     ProviderOpenAI,
			openaiClient: openai.NewClient(cfg.OpenAIKey),
			openaiModel:  model,
			logger:       logger,
		}, nil

	default:
		return nil, apperrors.Newf(apperrors.KindConfig, "unknown llm provider %q", cfg.Provider)
	}
}

// CompleteJSON sends a prompt and returns the provider's text response,
// requested in JSON mode. Single request/response, no streaming, no retry.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	switch c.provider {
	case ProviderGemini:
		resp, err := c.geminiClient.CompleteJSON(ctx, systemPrompt, userPrompt)
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.KindExternal, "gemini completion failed")
		}
		return resp, nil
	case ProviderOpenAI:
		return c.completeOpenAIJSON(ctx, systemPrompt, userPrompt)
	default:
		return "", apperrors.New(apperrors.KindConfig, "no llm provider configured")
	}
}

func (c *Client) completeOpenAIJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.openaiModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
		MaxTokens:   4000,
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindExternal, "openai completion failed")
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.KindExternal, "openai returned no choices")
	}

	response := resp.Choices[0].Message.Content
	c.logger.Debug("openai completion",
		"model", c.openaiModel,
		"prompt_length", len(userPrompt),
		"response_length", len(response),
		"tokens_used", resp.Usage.TotalTokens,
	)

	return response, nil
}
