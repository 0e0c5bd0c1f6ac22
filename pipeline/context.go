// Pipeline context and front-end delegates.
//
// Information Hiding:
// - Which hooks a front-end supplied; nil hooks are silently skipped
// - Trace-ID generation

// Package pipeline composes the Reason, Search, and Respond stages that turn
// an inquiry into a cited answer.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/richinex/gamal/model"
)

// Delegates are the optional side-effect hooks a front-end supplies. Each
// front-end sets only the subset it needs; the core never requires one.
type Delegates struct {
	// Enter is called when a stage starts.
	Enter func(stage string)
	// Leave is called when a stage completes, with its result fields.
	Leave func(stage string, fields map[string]string)
	// Stream receives answer deltas as the LLM produces them. Supplying it
	// opts the Respond stage into streaming.
	Stream func(delta string)
}

func (d Delegates) enter(stage string) {
	if d.Enter != nil {
		d.Enter(stage)
	}
}

func (d Delegates) leave(stage string, fields map[string]string) {
	if d.Leave != nil {
		d.Leave(stage, fields)
	}
}

// Context is the value threaded through the stages. Each stage returns a new
// context with more fields filled in; callers must not rely on in-place
// mutation of the one they passed.
type Context struct {
	TraceID   string
	Inquiry   string
	History   []model.HistoryEntry
	Delegates Delegates

	// Accumulated by the stages.
	Language    string
	Topic       string
	Thought     string
	Keyphrases  string
	Observation string
	References  []model.Reference
	Answer      string
}

// NewContext builds the starting context for one inquiry.
func NewContext(inquiry string, history []model.HistoryEntry, delegates Delegates) Context {
	return Context{
		TraceID:   uuid.NewString(),
		Inquiry:   inquiry,
		History:   history,
		Delegates: delegates,
	}
}

// Entry converts a finished context into an append-only history record.
func Entry(c Context, duration time.Duration, stages []model.StageTiming) model.HistoryEntry {
	return model.HistoryEntry{
		Inquiry:    c.Inquiry,
		Thought:    c.Thought,
		Keyphrases: c.Keyphrases,
		Topic:      c.Topic,
		References: c.References,
		Answer:     c.Answer,
		Duration:   duration,
		Stages:     stages,
	}
}
