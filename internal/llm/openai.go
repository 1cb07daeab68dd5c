// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/pdiddy/reag/pkg/types"
)

// OpenAIModel calls the Chat Completions API through the official SDK. It
// also serves OpenAI-compatible endpoints via BaseURL.
type OpenAIModel struct {
	client    openai.Client
	maxTokens int64
}

// NewOpenAIModel builds a client from cfg. A negative MaxRetries disables
// SDK retries.
func NewOpenAIModel(cfg types.ProviderConfig) *OpenAIModel {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(retries(cfg.MaxRetries)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &OpenAIModel{
		client:    openai.NewClient(opts...),
		maxTokens: maxTokens(cfg.MaxTokens),
	}
}

// Invoke sends req as a single non-streaming chat completion. Only chat mode
// is supported.
func (o *OpenAIModel) Invoke(ctx context.Context, req Request) (Response, error) {
	if req.Selector.Model == "" {
		return nil, errors.New("openai: model is required")
	}
	if err := chatOnly("openai", req.Selector.Mode); err != nil {
		return nil, err
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(req.Selector.Model),
		Messages:            msgs,
		MaxCompletionTokens: openai.Int(o.maxTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("openai: no choices returned")
	}

	return StructuredResponse{Message: Message{
		Role:    RoleAssistant,
		Content: completion.Choices[0].Message.Content,
	}}, nil
}
