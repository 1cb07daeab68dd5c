// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the narrow interface to language model providers. A Model
// takes a system+user prompt and returns the response synchronously; auth,
// retries, and transport belong to each provider client.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/reag/pkg/types"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrUnknownProvider is returned when a request names a provider that has
// no registered Model.
var ErrUnknownProvider = errors.New("unknown model provider")

// Message is one prompt or response message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one non-streaming model call.
type Request struct {
	Selector types.ModelSelector
	Messages []Message
}

// system returns the concatenated system messages and the remaining
// conversation, for providers that take the system prompt separately.
func (r Request) system() (string, []Message) {
	var sys []string
	var rest []Message
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			sys = append(sys, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(sys, "\n"), rest
}

// Response is the result of a model call. It is either a StructuredResponse
// carrying a message or a PlainResponse carrying bare text.
type Response interface {
	isResponse()
}

// StructuredResponse is a response-with-message, as returned by chat APIs.
type StructuredResponse struct {
	Message Message
}

// PlainResponse is bare completion text.
type PlainResponse string

func (StructuredResponse) isResponse() {}
func (PlainResponse) isResponse()      {}

// Text returns the textual content of r.
func Text(r Response) string {
	switch v := r.(type) {
	case StructuredResponse:
		return v.Message.Content
	case *StructuredResponse:
		if v == nil {
			return ""
		}
		return v.Message.Content
	case PlainResponse:
		return string(v)
	default:
		return ""
	}
}

// Model is a language model collaborator.
type Model interface {
	Invoke(ctx context.Context, req Request) (Response, error)
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func(ctx context.Context, req Request) (Response, error)

// Invoke calls f.
func (f ModelFunc) Invoke(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Router dispatches requests to the Model registered for the selector's
// provider. Provider names are case-insensitive.
type Router struct {
	mu     sync.RWMutex
	models map[string]Model
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{models: make(map[string]Model)}
}

// Register binds provider to m, replacing any previous binding.
func (r *Router) Register(provider string, m Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[strings.ToLower(provider)] = m
}

// Providers returns the registered provider names in sorted order.
func (r *Router) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke forwards req to the provider named in req.Selector.
func (r *Router) Invoke(ctx context.Context, req Request) (Response, error) {
	provider := strings.ToLower(req.Selector.Provider)
	r.mu.RLock()
	m, ok := r.models[provider]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnknownProvider, req.Selector.Provider, strings.Join(r.Providers(), ", "))
	}
	return m.Invoke(ctx, req)
}

// withThinking prefixes text with a <think> block when the provider returned
// its reasoning separately from the answer.
func withThinking(thinking, text string) string {
	if strings.TrimSpace(thinking) == "" {
		return text
	}
	return "<think>" + thinking + "</think>" + text
}

// chatOnly rejects selector modes other than chat for providers that only
// expose a chat API. An empty mode means chat.
func chatOnly(provider, mode string) error {
	if mode != "" && mode != types.ModeChat {
		return fmt.Errorf("%s: unsupported mode %q (only %q)", provider, mode, types.ModeChat)
	}
	return nil
}

func retries(n int) int {
	switch {
	case n < 0:
		return 0
	case n == 0:
		return 2
	default:
		return n
	}
}

func maxTokens(n int64) int64 {
	if n <= 0 {
		return 4096
	}
	return n
}
