// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reag/internal/acquire"
	"github.com/pdiddy/reag/internal/llm"
	"github.com/pdiddy/reag/pkg/types"
)

func TestAcquireInputs(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "report.pdf")
	noext := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(noext, []byte("hello"), 0o644))
	a := acquire.New(types.AcquisitionConfig{}, nil)

	files, err := acquireInputs(context.Background(), a, []string{pdf, filepath.Join(dir, "gone.txt"), noext})
	require.NoError(t, err)
	assert.Equal(t, []types.File{
		{Blob: []byte("%PDF"), Filename: "report.pdf", Extension: ".pdf"},
		{Blob: []byte("hello"), Filename: "README", Extension: ""},
	}, files)
}

func TestAcquireInputs_AllFail(t *testing.T) {
	a := acquire.New(types.AcquisitionConfig{}, nil)
	_, err := acquireInputs(context.Background(), a, []string{filepath.Join(t.TempDir(), "nope.txt")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.txt")
}

func TestAcquireInputs_None(t *testing.T) {
	files, err := acquireInputs(context.Background(), acquire.New(types.AcquisitionConfig{}, nil), nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestNewConverter(t *testing.T) {
	_, err := newConverter(context.Background(), types.ConversionConfig{Backend: "grobid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown conversion backend")

	_, err = newConverter(context.Background(), types.ConversionConfig{
		Backend: types.BackendLocal,
		Binary:  "reag-test-no-such-binary",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestNewRouter(t *testing.T) {
	r := newRouter(map[string]types.ProviderConfig{})
	assert.Equal(t, providerNames, r.Providers())
}

func TestCheckSelector(t *testing.T) {
	r := newRouter(map[string]types.ProviderConfig{})

	assert.NoError(t, checkSelector(r, types.ModelSelector{Provider: "ollama", Model: "llama3"}))

	err := checkSelector(r, types.ModelSelector{Provider: "ollama"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--model")

	err = checkSelector(r, types.ModelSelector{Provider: "mistral", Model: "m"})
	assert.ErrorIs(t, err, llm.ErrUnknownProvider)
}
