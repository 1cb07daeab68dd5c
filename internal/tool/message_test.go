// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/reag/internal/query"
)

func TestMessage_JSON(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "text",
			msg:  TextMessage("hello"),
			want: `{"type":"text","text":"hello"}`,
		},
		{
			name: "json",
			msg:  JSONMessage(map[string]int{"n": 1}),
			want: `{"type":"json","json_object":{"n":1}}`,
		},
		{
			name: "variable",
			msg:  VariableMessage("query_results", []string{"a"}),
			want: `{"type":"variable","variable_name":"query_results","variable_value":["a"]}`,
		},
		{
			name: "empty variable value is kept",
			msg:  VariableMessage(ResultsVariable, query.Aggregate(nil)),
			want: `{"type":"variable","variable_name":"query_results","variable_value":[]}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))
		})
	}
}

func TestMessage_YAML(t *testing.T) {
	b, err := yaml.Marshal(VariableMessage("answer", map[string]string{"content": "Paris"}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, "variable", got["type"])
	assert.Equal(t, "answer", got["variable_name"])
	assert.Equal(t, map[string]any{"content": "Paris"}, got["variable_value"])
}
