// Reason stage: extract search keyphrases and metadata from the inquiry.

package pipeline

import (
	"context"

	"github.com/richinex/gamal/codec"
	"github.com/richinex/gamal/llm"
)

// historyWindow is how many prior entries inform a new Reason prompt.
const historyWindow = 3

// Reason asks the LLM to analyze the inquiry and fills language, topic,
// thought, keyphrases, and observation on the context.
//
// The final message is an assistant turn holding a partial record
// ("TOOL: Google.\nLANGUAGE: "); the model completes from inside the label
// grammar, and hint plus completion are parsed together. An empty keyphrase
// extraction is retried once with the thought carried into a deeper hint;
// if it stays empty the pipeline proceeds and Search degrades.
func (p *Pipeline) Reason(ctx context.Context, c Context) (Context, error) {
	c.Delegates.enter("Reason")

	messages := reasonMessages(c)
	completion, err := p.chat.Chat(ctx, messages, nil)
	if err != nil {
		return c, err
	}
	fields := parseCompletion(reasonHint + completion)

	if fields["keyphrases"] == "" {
		hint := "TOOL: Google.\nTHOUGHT: " + fields["thought"] + "\nKEYPHRASES: "
		messages[len(messages)-1] = llm.AssistantMessage(hint)
		completion, err = p.chat.Chat(ctx, messages, nil)
		if err != nil {
			return c, err
		}
		if retry := parseCompletion(hint + completion); retry["keyphrases"] != "" {
			fields = retry
		}
	}

	c.Language = fields["language"]
	c.Topic = fields["topic"]
	c.Thought = fields["thought"]
	c.Keyphrases = fields["keyphrases"]
	c.Observation = fields["observation"]

	p.log.Debugw("reason",
		"trace", c.TraceID,
		"language", c.Language,
		"topic", c.Topic,
		"keyphrases", c.Keyphrases)

	c.Delegates.leave("Reason", map[string]string{
		"language":    c.Language,
		"topic":       c.Topic,
		"thought":     c.Thought,
		"keyphrases":  c.Keyphrases,
		"observation": c.Observation,
	})
	return c, nil
}

// parseCompletion decodes the labelled fields, falling back to a synthetic
// topic anchor when the model forgot to close the record.
func parseCompletion(text string) map[string]string {
	fields := codec.Parse(text)
	if len(fields) == 0 {
		fields = codec.Parse(text + "\nTOPIC: general knowledge.")
	}
	return fields
}

// reasonMessages builds the few-shot prompt. The last three history entries
// are replayed as user/assistant turns, the assistant side being the
// serialized record with observation set to that entry's final answer, so
// the model is conditioned on its own past output.
func reasonMessages(c Context) []llm.ChatMessage {
	relevant := c.History
	if len(relevant) > historyWindow {
		relevant = relevant[len(relevant)-historyWindow:]
	}

	system := reasonPrompt
	if len(relevant) == 0 {
		system += reasonExample
	}

	messages := []llm.ChatMessage{llm.SystemMessage(system)}
	for _, entry := range relevant {
		messages = append(messages,
			llm.UserMessage(entry.Inquiry),
			llm.AssistantMessage(codec.Construct(map[string]string{
				"tool":        "Google.",
				"thought":     entry.Thought,
				"keyphrases":  entry.Keyphrases,
				"observation": entry.Answer,
				"topic":       entry.Topic,
			})))
	}
	messages = append(messages,
		llm.UserMessage(c.Inquiry),
		llm.AssistantMessage(reasonHint))
	return messages
}
