// Shared execution core for the front-ends.
//
// Information Hiding:
// - Delegate wiring between recorder, sink, and pipeline
// - History bookkeeping (append only after a successful run)

// Package cli provides the delivery front-ends: interactive terminal, HTTP
// server, Telegram long-poller, and the file-based test runner.
package cli

import (
	"context"
	"sync"
	"time"

	"github.com/richinex/gamal/model"
	"github.com/richinex/gamal/pipeline"
	"github.com/richinex/gamal/storage"
	"github.com/richinex/gamal/trace"
)

// Runner executes pipeline runs against a conversation. Every front-end is
// built on it; it owns the shared clients and the history store.
type Runner struct {
	pipeline *pipeline.Pipeline
	history  storage.HistoryStore

	mu         sync.Mutex
	lastStages map[string][]model.StageTiming
}

// NewRunner creates a runner over the given pipeline and history store.
func NewRunner(p *pipeline.Pipeline, history storage.HistoryStore) *Runner {
	return &Runner{
		pipeline:   p,
		history:    history,
		lastStages: make(map[string][]model.StageTiming),
	}
}

// History exposes the underlying store for reset handling.
func (r *Runner) History() storage.HistoryStore {
	return r.history
}

// Ask runs the full pipeline for one inquiry against the conversation's
// history. The stream sink may be nil. On success the history entry is
// appended; an aborted run never leaves a partial entry behind.
func (r *Runner) Ask(ctx context.Context, conversationID, inquiry string, stream func(string)) (pipeline.Context, error) {
	recorder := &trace.Recorder{}
	history, err := r.history.Load(ctx, conversationID)
	if err != nil {
		return pipeline.Context{}, err
	}

	c := pipeline.NewContext(inquiry, history, pipeline.Delegates{
		Enter:  recorder.Enter,
		Leave:  recorder.Leave,
		Stream: stream,
	})

	start := time.Now()
	c, err = r.pipeline.Run(ctx, c)
	stages := trace.Simplify(recorder.Events())
	r.mu.Lock()
	r.lastStages[conversationID] = stages
	r.mu.Unlock()
	if err != nil {
		return c, err
	}

	if err := r.history.Append(ctx, conversationID, pipeline.Entry(c, time.Since(start), stages)); err != nil {
		return c, err
	}
	return c, nil
}

// Reset clears the conversation's history.
func (r *Runner) Reset(ctx context.Context, conversationID string) error {
	return r.history.Reset(ctx, conversationID)
}

// Review renders the stage timings of the conversation's most recent run.
func (r *Runner) Review(conversationID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return trace.Format(r.lastStages[conversationID])
}
