// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/reag/internal/llm"
	"github.com/pdiddy/reag/pkg/types"
)

var testReq = types.QueryRequest{
	Query: "What is the capital of France?",
	Model: types.ModelSelector{Provider: "ollama", Model: "deepseek-r1:7b", Mode: types.ModeChat},
}

func reply(text string) llm.Model {
	return llm.ModelFunc(func(context.Context, llm.Request) (llm.Response, error) {
		return llm.StructuredResponse{Message: llm.Message{Role: llm.RoleAssistant, Content: text}}, nil
	})
}

func TestBuildPrompt(t *testing.T) {
	doc := types.Document{Name: "france.md", Content: "Paris is the capital of France."}
	msgs, err := buildPrompt(doc, testReq.Query)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "# Available source")
	assert.Contains(t, msgs[0].Content, "Document Name: france.md")
	assert.Contains(t, msgs[0].Content, "Document Content: Paris is the capital of France.")
	assert.Contains(t, msgs[0].Content, `"isIrrelevant"`)

	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Equal(t, testReq.Query, msgs[1].Content)
}

func TestDispatch_PassesPromptAndSelector(t *testing.T) {
	var got llm.Request
	model := llm.ModelFunc(func(_ context.Context, req llm.Request) (llm.Response, error) {
		got = req
		return llm.PlainResponse(`{"content":"Paris","isIrrelevant":false}`), nil
	})
	doc := types.Document{Name: "a.md", Content: "Paris."}

	v, ok := NewDispatcher(model, nil).Dispatch(context.Background(), doc, testReq)
	require.True(t, ok)

	assert.Equal(t, testReq.Model, got.Selector)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, testReq.Query, got.Messages[1].Content)
	assert.Equal(t, types.Verdict{Content: "Paris", Document: doc}, v)
}

func TestDispatch_Verdicts(t *testing.T) {
	doc := types.Document{Name: "a.md", Content: "text"}
	tests := []struct {
		name string
		raw  string
		want types.Verdict
	}{
		{
			name: "structured with reasoning",
			raw:  `<think>The document names Paris.</think>{"content":"Paris","isIrrelevant":false}`,
			want: types.Verdict{Content: "Paris", Reasoning: "The document names Paris.", Document: doc},
		},
		{
			name: "irrelevant",
			raw:  `{"content":"","isIrrelevant":true}`,
			want: types.Verdict{IsIrrelevant: true, Document: doc},
		},
		{
			name: "markdown fallback",
			raw:  "**Answer:** Paris\nisIrrelevant: false",
			want: types.Verdict{Content: "Paris", Document: doc},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := NewDispatcher(reply(tc.raw), nil).Dispatch(context.Background(), doc, testReq)
			require.True(t, ok)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestDispatch_ModelErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	model := llm.ModelFunc(func(context.Context, llm.Request) (llm.Response, error) {
		return nil, errors.New("connection refused")
	})

	v, ok := NewDispatcher(model, zap.New(core)).Dispatch(context.Background(), types.Document{Name: "a.md"}, testReq)
	assert.False(t, ok)
	assert.Equal(t, types.Verdict{}, v)

	entries := logs.FilterMessage("dispatch failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "a.md", entries[0].ContextMap()["document"])
	assert.Contains(t, entries[0].ContextMap()["error"], "connection refused")
}

func TestDispatch_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	model := llm.ModelFunc(func(context.Context, llm.Request) (llm.Response, error) {
		panic("boom")
	})

	_, ok := NewDispatcher(model, zap.New(core)).Dispatch(context.Background(), types.Document{Name: "a.md"}, testReq)
	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterMessage("dispatch failed").Len())
}

func TestDispatch_LogsRawOutputAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	raw := `{"content":"Paris","isIrrelevant":false}`

	_, ok := NewDispatcher(reply(raw), zap.New(core)).Dispatch(context.Background(), types.Document{Name: "a.md"}, testReq)
	require.True(t, ok)

	entries := logs.FilterMessage("raw model output").All()
	require.Len(t, entries, 1)
	assert.Equal(t, raw, entries[0].ContextMap()["output"])
}

func TestDispatch_RecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	failing := llm.ModelFunc(func(context.Context, llm.Request) (llm.Response, error) {
		return nil, errors.New("rate limited")
	})

	ok := NewDispatcher(reply(`{"content":"x"}`), nil).WithTracer(tp.Tracer("test"))
	bad := NewDispatcher(failing, nil).WithTracer(tp.Tracer("test"))

	_, good := ok.Dispatch(context.Background(), types.Document{Name: "good.md"}, testReq)
	_, failed := bad.Dispatch(context.Background(), types.Document{Name: "bad.md"}, testReq)
	require.True(t, good)
	require.False(t, failed)

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "reag.dispatch", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Contains(t, spans[1].Status().Description, "rate limited")
}
