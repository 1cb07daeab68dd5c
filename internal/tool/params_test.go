// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reag/pkg/types"
)

func TestDecodeParams(t *testing.T) {
	in := map[string]any{
		"query": "What is the capital of France?",
		"model": map[string]any{
			"provider": "anthropic",
			"model":    "claude-sonnet-4-5",
			"mode":     "chat",
		},
		"files": []any{
			map[string]any{"filename": "a.md", "extension": ".md", "blob": []byte("# A")},
			map[string]any{"filename": "b.txt", "blob": "plain text"},
		},
	}

	p, err := DecodeParams(in)
	require.NoError(t, err)

	assert.Equal(t, "What is the capital of France?", p.Query)
	assert.Equal(t, types.ModelSelector{Provider: "anthropic", Model: "claude-sonnet-4-5", Mode: "chat"}, p.Model)
	require.Len(t, p.Files, 2)
	assert.Equal(t, types.File{Filename: "a.md", Extension: ".md", Blob: []byte("# A")}, p.Files[0])
	assert.Equal(t, []byte("plain text"), p.Files[1].Blob)
	assert.Empty(t, p.Files[1].Extension)
}

func TestDecodeParams_Empty(t *testing.T) {
	p, err := DecodeParams(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, p.Files)
	assert.ErrorIs(t, p.Validate(), ErrEmptyInput)
}

func TestDecodeParams_BadShape(t *testing.T) {
	_, err := DecodeParams(map[string]any{"files": "not-a-list"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding parameters")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		wantErr string
	}{
		{name: "ok", p: Params{Files: []types.File{{Filename: "a"}}, Query: "q"}},
		{name: "no files", p: Params{Query: "q"}, wantErr: "no files"},
		{name: "blank query", p: Params{Files: []types.File{{Filename: "a"}}, Query: " "}, wantErr: "query is empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrEmptyInput)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
