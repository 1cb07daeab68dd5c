// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/reag/internal/httputil"
	"github.com/pdiddy/reag/pkg/types"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaModel calls a local Ollama server. Chat mode uses /api/chat and
// yields a StructuredResponse; completion mode uses /api/generate and yields
// a PlainResponse.
type OllamaModel struct {
	baseURL    string
	client     *http.Client
	maxRetries int
}

// NewOllamaModel builds a client from cfg. BaseURL defaults to the local
// Ollama port.
func NewOllamaModel(cfg types.ProviderConfig) *OllamaModel {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &OllamaModel{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
	}
}

type ollamaChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaChatResponse struct {
	Message struct {
		Role     string `json:"role"`
		Content  string `json:"content"`
		Thinking string `json:"thinking"`
	} `json:"message"`
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Thinking string `json:"thinking"`
}

// Invoke sends req in the mode named by its selector (default chat).
func (o *OllamaModel) Invoke(ctx context.Context, req Request) (Response, error) {
	if req.Selector.Model == "" {
		return nil, errors.New("ollama: model is required")
	}

	switch strings.ToLower(req.Selector.Mode) {
	case "", types.ModeChat:
		var out ollamaChatResponse
		body := ollamaChatRequest{Model: req.Selector.Model, Messages: req.Messages}
		if err := o.post(ctx, "/api/chat", body, &out); err != nil {
			return nil, err
		}
		return StructuredResponse{Message: Message{
			Role:    RoleAssistant,
			Content: withThinking(out.Message.Thinking, out.Message.Content),
		}}, nil

	case types.ModeCompletion:
		system, rest := req.system()
		prompt := make([]string, 0, len(rest))
		for _, m := range rest {
			prompt = append(prompt, m.Content)
		}
		var out ollamaGenerateResponse
		body := ollamaGenerateRequest{Model: req.Selector.Model, System: system, Prompt: strings.Join(prompt, "\n\n")}
		if err := o.post(ctx, "/api/generate", body, &out); err != nil {
			return nil, err
		}
		return PlainResponse(withThinking(out.Thinking, out.Response)), nil

	default:
		return nil, fmt.Errorf("ollama: unsupported mode %q", req.Selector.Mode)
	}
}

func (o *OllamaModel) post(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("ollama: marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("ollama: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, o.client, req, o.maxRetries)
	if err != nil {
		return fmt.Errorf("ollama: calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("ollama: %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ollama: decoding response: %w", err)
	}
	return nil
}
