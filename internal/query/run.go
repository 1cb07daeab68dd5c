// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/pdiddy/reag/pkg/types"
)

// Stats summarizes one RunAll call.
type Stats struct {
	Documents  int `json:"documents" yaml:"documents"`
	Dispatched int `json:"dispatched" yaml:"dispatched"`
	Failed     int `json:"failed" yaml:"failed"`
	Irrelevant int `json:"irrelevant" yaml:"irrelevant"`
	Relevant   int `json:"relevant" yaml:"relevant"`
}

// Orchestrator fans a query out over a batch of documents.
type Orchestrator struct {
	dispatcher     *Dispatcher
	maxConcurrency int
	limiter        *rate.Limiter
	logger         *zap.Logger
}

// NewOrchestrator returns an Orchestrator using d. cfg.MaxConcurrency caps
// the pool (0 means one worker per document); cfg.RequestsPerSecond, when
// positive, throttles dispatch starts.
func NewOrchestrator(d *Dispatcher, cfg types.QueryConfig, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{dispatcher: d, maxConcurrency: cfg.MaxConcurrency, logger: logger}
	if cfg.RequestsPerSecond > 0 {
		o.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return o
}

type outcome struct {
	verdict types.Verdict
	ok      bool
}

// RunAll dispatches req once per document and returns the relevant verdicts
// in completion order. Nothing is dispatched when docs is empty or the query
// is blank.
func (o *Orchestrator) RunAll(ctx context.Context, docs []types.Document, req types.QueryRequest) ([]types.Verdict, Stats) {
	stats := Stats{Documents: len(docs)}
	if len(docs) == 0 || strings.TrimSpace(req.Query) == "" {
		return nil, stats
	}

	workers := len(docs)
	if o.maxConcurrency > 0 && o.maxConcurrency < workers {
		workers = o.maxConcurrency
	}

	var dispatched atomic.Int64
	results := make(chan outcome, len(docs))

	go func() {
		var g errgroup.Group
		g.SetLimit(workers)
		for _, doc := range docs {
			g.Go(func() error {
				if o.limiter != nil {
					if err := o.limiter.Wait(ctx); err != nil {
						o.logger.Warn("dispatch skipped", zap.String("document", doc.Name), zap.Error(err))
						results <- outcome{}
						return nil
					}
				}
				n := dispatched.Add(1)
				o.logger.Debug("dispatching", zap.String("document", doc.Name), zap.Int64("invocation", n))
				v, ok := o.dispatcher.Dispatch(ctx, doc, req)
				results <- outcome{verdict: v, ok: ok}
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	var verdicts []types.Verdict
	for r := range results {
		switch {
		case !r.ok:
			stats.Failed++
		case r.verdict.IsIrrelevant:
			stats.Irrelevant++
		default:
			stats.Relevant++
			verdicts = append(verdicts, r.verdict)
		}
	}
	stats.Dispatched = int(dispatched.Load())

	o.logger.Info("query run complete",
		zap.Int("documents", stats.Documents),
		zap.Int("dispatched", stats.Dispatched),
		zap.Int("workers", workers),
		zap.Int("relevant", stats.Relevant),
		zap.Int("irrelevant", stats.Irrelevant),
		zap.Int("failed", stats.Failed),
	)
	return verdicts, stats
}
