// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

var sample = []Message{
	TextMessage("converting x.pdf: unsupported format"),
	VariableMessage(ResultsVariable, []map[string]string{{"content": "Paris"}}),
	JSONMessage(map[string]int{"relevant": 1}),
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, slices.Values(sample)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"type":"text","text":"converting x.pdf: unsupported format"}`, lines[0])
	assert.JSONEq(t, `{"type":"variable","variable_name":"query_results","variable_value":[{"content":"Paris"}]}`, lines[1])
	assert.JSONEq(t, `{"type":"json","json_object":{"relevant":1}}`, lines[2])
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, slices.Values(sample)))

	dec := yaml.NewDecoder(&buf)
	var kinds []string
	for {
		var doc map[string]any
		if err := dec.Decode(&doc); err != nil {
			break
		}
		kinds = append(kinds, doc["type"].(string))
	}
	assert.Equal(t, []string{"text", "variable", "json"}, kinds)
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, slices.Values(sample)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "converting x.pdf: unsupported format\n"))
	assert.Contains(t, out, "query_results = [\n")
	assert.Contains(t, out, `"content": "Paris"`)
	assert.Contains(t, out, `"relevant": 1`)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", slices.Values(sample))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
