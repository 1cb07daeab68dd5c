// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query runs the per-document query pipeline: one model call per
// document, run concurrently, with the relevant verdicts aggregated into a
// single payload.
package query

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pdiddy/reag/internal/extract"
	"github.com/pdiddy/reag/internal/llm"
	"github.com/pdiddy/reag/internal/telemetry"
	"github.com/pdiddy/reag/pkg/types"
)

// Dispatcher asks the model about one document at a time.
type Dispatcher struct {
	model  llm.Model
	logger *zap.Logger
	tracer trace.Tracer
}

// NewDispatcher returns a Dispatcher that calls model. A nil logger
// discards logs.
func NewDispatcher(model llm.Model, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{model: model, logger: logger, tracer: telemetry.Tracer()}
}

// WithTracer returns a copy of d that records spans with tracer.
func (d *Dispatcher) WithTracer(tracer trace.Tracer) *Dispatcher {
	c := *d
	c.tracer = tracer
	return &c
}

// Dispatch queries the model about doc. It returns false when the call or
// its parsing failed; the failure is logged and goes no further.
func (d *Dispatcher) Dispatch(ctx context.Context, doc types.Document, req types.QueryRequest) (v types.Verdict, ok bool) {
	ctx, span := d.tracer.Start(ctx, "reag.dispatch", trace.WithAttributes(
		attribute.String("document.name", doc.Name),
		attribute.Int("document.length", len(doc.Content)),
		attribute.String("model.provider", req.Model.Provider),
		attribute.String("model.name", req.Model.Model),
	))
	var err error
	defer func() { telemetry.End(span, err) }()

	log := d.logger.With(zap.String("document", doc.Name))
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during dispatch: %v", r)
			log.Error("dispatch failed", zap.Error(err))
			v, ok = types.Verdict{}, false
		}
	}()

	msgs, err := buildPrompt(doc, req.Query)
	if err != nil {
		err = fmt.Errorf("rendering prompt: %w", err)
		log.Error("dispatch failed", zap.Error(err))
		return types.Verdict{}, false
	}

	resp, err := d.model.Invoke(ctx, llm.Request{Selector: req.Model, Messages: msgs})
	if err != nil {
		err = fmt.Errorf("invoking model: %w", err)
		log.Error("dispatch failed", zap.Error(err))
		return types.Verdict{}, false
	}

	raw := llm.Text(resp)
	log.Debug("raw model output", zap.String("output", raw))

	res := extract.Extract(raw)
	span.SetAttributes(
		attribute.Bool("verdict.irrelevant", res.IsIrrelevant),
		attribute.Bool("verdict.reasoning", res.Reasoning != ""),
	)

	v = types.Verdict{
		Content:      res.Content,
		Reasoning:    res.Reasoning,
		IsIrrelevant: res.IsIrrelevant,
		Document:     doc,
	}
	if !v.IsIrrelevant {
		log.Info("relevant verdict", zap.String("content", v.Content))
	}
	return v, true
}
