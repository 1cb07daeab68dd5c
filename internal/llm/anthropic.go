// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/reag/pkg/types"
)

// AnthropicModel calls the Claude Messages API through the official SDK.
type AnthropicModel struct {
	client    anthropic.Client
	maxTokens int64
}

// NewAnthropicModel builds a client from cfg. A negative MaxRetries disables
// SDK retries.
func NewAnthropicModel(cfg types.ProviderConfig) *AnthropicModel {
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
	return &AnthropicModel{
		client:    anthropic.NewClient(opts...),
		maxTokens: maxTokens(cfg.MaxTokens),
	}
}

// Invoke sends req as a single Messages call. Extended thinking blocks are
// folded into the text as a <think> block. Only chat mode is supported.
func (a *AnthropicModel) Invoke(ctx context.Context, req Request) (Response, error) {
	if req.Selector.Model == "" {
		return nil, errors.New("anthropic: model is required")
	}
	if err := chatOnly("anthropic", req.Selector.Mode); err != nil {
		return nil, err
	}

	system, conversation := req.system()
	msgs := make([]anthropic.MessageParam, 0, len(conversation))
	for _, m := range conversation {
		switch m.Role {
		case RoleAssistant:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Selector.Model),
		MaxTokens: a.maxTokens,
		Messages:  msgs,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var thinking, text strings.Builder
	for _, block := range msg.Content {
		switch block.Type {
		case "thinking":
			thinking.WriteString(block.Thinking)
		case "text":
			text.WriteString(block.Text)
		}
	}
	return StructuredResponse{Message: Message{
		Role:    RoleAssistant,
		Content: withThinking(thinking.String(), text.String()),
	}}, nil
}
