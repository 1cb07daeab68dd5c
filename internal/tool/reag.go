// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pdiddy/reag/internal/convert"
	"github.com/pdiddy/reag/internal/query"
	"github.com/pdiddy/reag/internal/telemetry"
	"github.com/pdiddy/reag/pkg/types"
)

// ResultsVariable is the variable name the relevant records are bound to.
const ResultsVariable = "query_results"

// NoResultsText is emitted when no document was relevant.
const NoResultsText = "No relevant results found"

// Summary is the closing JSON message of a ReagTool run.
type Summary struct {
	RunID              string      `json:"run_id" yaml:"run_id"`
	Files              int         `json:"files" yaml:"files"`
	Converted          int         `json:"converted" yaml:"converted"`
	ConversionFailures int         `json:"conversion_failures" yaml:"conversion_failures"`
	Query              query.Stats `json:"query" yaml:"query"`
}

// ReagTool converts the supplied files and asks the model about each one.
type ReagTool struct {
	converter    convert.Converter
	orchestrator *query.Orchestrator
	logger       *zap.Logger
	tracer       trace.Tracer
}

// NewReagTool returns a ReagTool. A nil logger discards logs.
func NewReagTool(c convert.Converter, o *query.Orchestrator, logger *zap.Logger) *ReagTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReagTool{converter: c, orchestrator: o, logger: logger, tracer: telemetry.Tracer()}
}

// Invoke runs one query invocation. Messages, in order: one text message per
// file that failed to convert, the ResultsVariable binding (possibly empty),
// NoResultsText when nothing was relevant, and a Summary.
//
// Empty input yields a single informational text message.
func (t *ReagTool) Invoke(ctx context.Context, p Params) iter.Seq[Message] {
	return func(yield func(Message) bool) {
		if err := p.Validate(); err != nil {
			t.logger.Info("nothing to query", zap.Error(err))
			yield(TextMessage(err.Error()))
			return
		}

		runID := uuid.NewString()
		log := t.logger.With(zap.String("run_id", runID))
		ctx, span := t.tracer.Start(ctx, "reag.invoke", trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("files", len(p.Files)),
		))
		defer telemetry.End(span, nil)

		docs, errs := convert.ConvertAll(ctx, t.converter, p.Files)
		for _, err := range errs {
			log.Warn("conversion failed", zap.Error(err))
			if !yield(TextMessage(err.Error())) {
				return
			}
		}
		log.Info("files converted", zap.Int("documents", len(docs)), zap.Int("failures", len(errs)))

		verdicts, stats := t.orchestrator.RunAll(ctx, docs, types.QueryRequest{Query: p.Query, Model: p.Model})
		records := query.Aggregate(verdicts)
		span.SetAttributes(attribute.Int("results", len(records)))

		if !yield(VariableMessage(ResultsVariable, records)) {
			return
		}
		if len(records) == 0 {
			if !yield(TextMessage(NoResultsText)) {
				return
			}
		}
		yield(JSONMessage(Summary{
			RunID:              runID,
			Files:              len(p.Files),
			Converted:          len(docs),
			ConversionFailures: len(errs),
			Query:              stats,
		}))
	}
}
