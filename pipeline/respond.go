// Respond stage: synthesize a cited answer from the gathered references.

package pipeline

import (
	"context"

	"github.com/richinex/gamal/llm"
)

// Respond asks the LLM for the final answer, streaming deltas to the Stream
// delegate when one is supplied. With no references there is nothing to cite
// and nothing to ask: the answer stays empty and the pipeline still
// completes, so the history entry is appended regardless.
func (p *Pipeline) Respond(ctx context.Context, c Context) (Context, error) {
	c.Delegates.enter("Respond")

	if len(c.References) == 0 {
		p.log.Debugw("respond: no references, skipping chat", "trace", c.TraceID)
		c.Answer = ""
		c.Delegates.leave("Respond", map[string]string{"answer": ""})
		return c, nil
	}

	messages := []llm.ChatMessage{
		llm.SystemMessage(respondSystem(c.Language, c.References)),
		llm.UserMessage(c.Inquiry),
	}

	answer, err := p.chat.Chat(ctx, messages, c.Delegates.Stream)
	if err != nil {
		return c, err
	}
	c.Answer = answer

	p.log.Debugw("respond", "trace", c.TraceID, "answer", answer)

	c.Delegates.leave("Respond", map[string]string{"answer": answer})
	return c, nil
}
