// Pipeline driver: sequential left-to-right composition of the stages.

package pipeline

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/richinex/gamal/llm"
	"github.com/richinex/gamal/search"
)

// Stage transforms a context. Stages announce themselves through the context
// delegates; the driver only sequences them.
type Stage func(ctx context.Context, c Context) (Context, error)

// Pipeline holds the clients shared by the stages. It carries no per-inquiry
// state: every run threads its own Context.
type Pipeline struct {
	chat     *llm.Client
	searcher *search.Client
	log      *zap.SugaredLogger
}

// New creates a pipeline. A nil logger disables debug logging.
func New(chat *llm.Client, searcher *search.Client, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{chat: chat, searcher: searcher, log: log}
}

// Run threads the context through Reason, Search, and Respond in order. A
// stage error aborts the run; events recorded up to that point remain
// available to the front-end for post-mortem review.
func (p *Pipeline) Run(ctx context.Context, c Context) (Context, error) {
	for _, stage := range []Stage{p.Reason, p.Search, p.Respond} {
		next, err := stage(ctx, c)
		if err != nil {
			return c, err
		}
		c = next
	}
	return c, nil
}

// Search resolves the extracted keyphrases into numbered references. Empty
// keyphrases skip the request entirely.
func (p *Pipeline) Search(ctx context.Context, c Context) (Context, error) {
	c.Delegates.enter("Search")

	if strings.TrimSpace(c.Keyphrases) == "" {
		p.log.Debugw("search: no keyphrases, skipping", "trace", c.TraceID)
		c.References = nil
	} else {
		references, err := p.searcher.Search(ctx, c.Keyphrases)
		if err != nil {
			return c, err
		}
		c.References = references
	}

	c.Delegates.leave("Search", map[string]string{
		"keyphrases": c.Keyphrases,
		"references": strconv.Itoa(len(c.References)),
	})
	return c, nil
}
