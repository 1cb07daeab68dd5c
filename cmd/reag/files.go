// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/reag/internal/acquire"
	"github.com/pdiddy/reag/internal/container"
	"github.com/pdiddy/reag/internal/convert"
	"github.com/pdiddy/reag/internal/llm"
	"github.com/pdiddy/reag/pkg/types"
)

// providerNames are the model providers the CLI registers.
var providerNames = []string{"anthropic", "ollama", "openai"}

// acquireInputs reads or downloads every input. Failed inputs are logged and
// skipped; it errors only when inputs were given and none could be acquired.
func acquireInputs(ctx context.Context, a *acquire.Acquirer, inputs []string) ([]types.File, error) {
	res := a.AcquireAll(ctx, inputs)
	if res.HasFailures() && len(res.Files) == 0 {
		return nil, fmt.Errorf("no input could be read: %w", errors.Join(res.Errors...))
	}
	return res.Files, nil
}

// newConverter builds the converter for the configured backend.
func newConverter(ctx context.Context, c types.ConversionConfig) (convert.Converter, error) {
	switch c.Backend {
	case types.BackendLocal, "":
		lc, err := convert.NewLocalConverter(c.Binary)
		if err != nil {
			return nil, err
		}
		return lc, nil
	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		mc, err := convert.NewMarkitdownConverter(ctx, rt, c.Image)
		if err != nil {
			return nil, err
		}
		return mc, nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q (want local or container)", c.Backend)
	}
}

// newRouter registers one model client per known provider.
func newRouter(providers map[string]types.ProviderConfig) *llm.Router {
	r := llm.NewRouter()
	r.Register("anthropic", llm.NewAnthropicModel(providers["anthropic"]))
	r.Register("openai", llm.NewOpenAIModel(providers["openai"]))
	r.Register("ollama", llm.NewOllamaModel(providers["ollama"]))
	return r
}

// checkSelector rejects selectors the router cannot serve before any file
// is converted.
func checkSelector(r *llm.Router, sel types.ModelSelector) error {
	if sel.Model == "" {
		return errors.New("provide a model with --model")
	}
	for _, p := range r.Providers() {
		if p == sel.Provider {
			return nil
		}
	}
	return fmt.Errorf("%w %q (registered: %v)", llm.ErrUnknownProvider, sel.Provider, r.Providers())
}
