// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/reag/internal/convert"
	"github.com/pdiddy/reag/pkg/types"
)

// Texts emitted by MarkitdownTool.
const (
	NoFilesText   = "No files provided"
	NoneConverted = "No files were successfully processed"
)

var separator = strings.Repeat("=", 50)

// MarkitdownTool converts the supplied files to markdown without querying.
type MarkitdownTool struct {
	converter convert.Converter
	logger    *zap.Logger
}

// NewMarkitdownTool returns a MarkitdownTool. A nil logger discards logs.
func NewMarkitdownTool(c convert.Converter, logger *zap.Logger) *MarkitdownTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkitdownTool{converter: c, logger: logger}
}

// Invoke converts files. It yields one text message per failed file and then
// the converted text: a single document as is, several under numbered
// headers.
func (t *MarkitdownTool) Invoke(ctx context.Context, files []types.File) iter.Seq[Message] {
	return func(yield func(Message) bool) {
		if len(files) == 0 {
			yield(TextMessage(NoFilesText))
			return
		}

		docs, errs := convert.ConvertAll(ctx, t.converter, files)
		for _, err := range errs {
			t.logger.Warn("conversion failed", zap.Error(err))
			if !yield(TextMessage(err.Error())) {
				return
			}
		}

		switch len(docs) {
		case 0:
			yield(TextMessage(NoneConverted))
		case 1:
			yield(TextMessage(docs[0].Content))
		default:
			yield(TextMessage(combine(docs)))
		}
	}
}

func combine(docs []types.Document) string {
	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "\n%s\nFile %d: %s\n%s\n\n", separator, i+1, doc.Name, separator)
		b.WriteString(doc.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}
