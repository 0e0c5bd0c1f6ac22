// Package llm provides shared data models for LLM providers.
package llm

import (
	"strings"
	"unicode"
)

// ChatMessage represents a chat message with role and content.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage creates a system message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: "assistant", Content: content}
}

// Generation parameters shared by every provider. Completions are short,
// deterministic continuations of a primed record, so the budget is small and
// the temperature is zero.
const (
	MaxTokens   = 400
	Temperature = 0
)

// StopSequences halts generation at turn boundaries. "INQUIRY: " is included
// so the model cannot hallucinate a follow-up question into its own answer.
var StopSequences = []string{"<|im_end|>", "<|end|>", "<|eot_id|>", "<|end_of_turn|>", "INQUIRY: "}

// streamAccumulator collects deltas into the final answer while forwarding
// them to the sink. Leading whitespace is trimmed from the first non-empty
// delta only; everything after passes through verbatim.
type streamAccumulator struct {
	onDelta func(string)
	answer  strings.Builder
	started bool
}

func (a *streamAccumulator) push(delta string) {
	if delta == "" {
		return
	}
	if !a.started {
		delta = strings.TrimLeftFunc(delta, unicode.IsSpace)
		if delta == "" {
			return
		}
		a.started = true
	}
	a.answer.WriteString(delta)
	if a.onDelta != nil {
		a.onDelta(delta)
	}
}

func (a *streamAccumulator) text() string {
	return a.answer.String()
}
