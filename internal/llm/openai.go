package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"moodwell/internal/logging"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *logging.Logger
}

// OpenAIConfig configures an OpenAIClient
type OpenAIConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client // nil uses the SDK default
}

// NewOpenAIClient creates a client. SDK retries are disabled: a failed call
// is reported once and the caller degrades to its fallback.
func NewOpenAIClient(cfg OpenAIConfig, logger *logging.Logger) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	client := openai.NewClient(opts...)

	return &OpenAIClient{
		client: &client,
		model:  cfg.Model,
		logger: logger,
	}
}

// Complete sends req and returns the first choice's content
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	logger := c.logger.WithFields(logging.Fields{
		"provider":      c.Name(),
		"model":         c.model,
		"message_count": len(req.Messages),
	})
	logger.Debug("starting completion request")

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, c.params(req))
	latency := time.Since(start).Milliseconds()

	if err != nil {
		apiErr := &APIError{Err: err}
		var sdkErr *openai.Error
		if errors.As(err, &sdkErr) {
			apiErr.StatusCode = sdkErr.StatusCode
		}
		logger.WithFields(logging.Fields{
			"status":     apiErr.StatusCode,
			"error":      err.Error(),
			"latency_ms": latency,
		}).Error("completion request failed")
		return "", apiErr
	}

	if len(resp.Choices) == 0 {
		logger.WithContext("latency_ms", latency).Error("completion returned no choices")
		return "", &APIError{Err: errors.New("no choices in response")}
	}

	content := resp.Choices[0].Message.Content
	logger.WithFields(logging.Fields{
		"latency_ms":      latency,
		"response_length": len(content),
	}).Debug("completion request completed")

	return content, nil
}

func (c *OpenAIClient) params(req Request) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.Messages {
		if m.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.Schema.Name,
					Schema:      req.Schema.Definition,
					Strict:      openai.Bool(true),
					Description: openai.String(req.Schema.Description),
				},
			},
		}
	}
	return params
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "openai-compatible"
}
