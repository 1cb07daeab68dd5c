// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads provider credentials from a directory of plain-text
// files. Each file is one secret: the filename is the key and the trimmed
// contents are the value. Keys missing from the directory fall back to the
// matching environment variable (anthropic-api-key reads ANTHROPIC_API_KEY).
//
// Recognized keys follow the pattern <provider>-api-key and
// <provider>-base-url, e.g. anthropic-api-key, openai-api-key,
// ollama-base-url.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/reag/pkg/types"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty set. Unreadable files are logged and skipped.
func Load(dir string, logger *zap.Logger) (Secrets, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Get returns the secret for key, or the value of its environment variable
// when the directory had none.
func (s Secrets) Get(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return strings.TrimSpace(os.Getenv(EnvName(key)))
}

// EnvName converts a key file name to its environment variable name.
func EnvName(key string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
}

// Apply fills the empty APIKey and BaseURL of each named provider from the
// secrets. Explicit configuration wins. providers is not modified.
func (s Secrets) Apply(providers map[string]types.ProviderConfig, names ...string) map[string]types.ProviderConfig {
	out := make(map[string]types.ProviderConfig, len(providers)+len(names))
	for name, cfg := range providers {
		out[strings.ToLower(name)] = cfg
	}
	for _, name := range names {
		name = strings.ToLower(name)
		if _, ok := out[name]; !ok {
			out[name] = types.ProviderConfig{}
		}
	}
	for name, cfg := range out {
		if cfg.APIKey == "" {
			cfg.APIKey = s.Get(name + "-api-key")
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = s.Get(name + "-base-url")
		}
		out[name] = cfg
	}
	return out
}
