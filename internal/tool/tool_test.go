// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"context"
	"errors"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/pdiddy/reag/internal/llm"
	"github.com/pdiddy/reag/internal/query"
	"github.com/pdiddy/reag/pkg/types"
)

// upperConverter upper-cases the file it is given. Files whose content is
// "fail" produce an error and files whose content is "empty" produce no text.
type upperConverter struct{}

func (upperConverter) Convert(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	switch string(data) {
	case "fail":
		return "", errors.New("unsupported format")
	case "empty":
		return "", nil
	}
	return strings.ToUpper(string(data)), nil
}

// parisModel finds documents mentioning PARIS relevant.
var parisModel = llm.ModelFunc(func(_ context.Context, req llm.Request) (llm.Response, error) {
	if strings.Contains(req.Messages[0].Content, "PARIS") {
		return llm.PlainResponse(`<think>mentions the city</think>{"content":"Paris","isIrrelevant":false}`), nil
	}
	return llm.PlainResponse(`{"content":"","isIrrelevant":true}`), nil
})

func file(name, content string) types.File {
	return types.File{Filename: name, Extension: ".txt", Blob: []byte(content)}
}

func newReagTool() *ReagTool {
	o := query.NewOrchestrator(query.NewDispatcher(parisModel, nil), types.QueryConfig{MaxConcurrency: 4}, nil)
	return NewReagTool(upperConverter{}, o, nil)
}

func collect(seq iter.Seq[Message]) []Message {
	return slices.Collect(seq)
}
