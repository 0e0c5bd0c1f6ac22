// Incremental decoder for the "data:" transcript of a streaming chat
// completion.
//
// Information Hiding:
// - Carry-over reassembly of frames split across network reads
// - Frame JSON shape of the chat-completions stream

// Package sse decodes server-sent-event chat transcripts incrementally.
package sse

import (
	"encoding/json"
	"strings"
)

const doneLine = "data: [DONE]"

// frame mirrors one streamed chat-completion chunk.
type frame struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Decoder is a stateful transducer: Push accepts body bytes exactly as they
// come off the wire and returns the content deltas completed by that read.
// The zero value is ready to use.
//
// A single carry-over buffer survives between reads. A "data:" line whose
// JSON payload does not parse is not an error: the frame is truncated, so the
// whole line is held back and re-joined with the next read. The same buffer
// reassembles a line whose "data: " prefix itself straddles a read boundary,
// which makes the decoder safe under arbitrary byte chunking.
type Decoder struct {
	carry string
	done  bool
}

// Done reports whether the terminating "data: [DONE]" frame has been seen.
func (d *Decoder) Done() bool {
	return d.done
}

// Push decodes one read worth of bytes and returns the textual deltas it
// completed, in transcript order. Keep-alive and role-only frames carry no
// content and are dropped.
func (d *Decoder) Push(data []byte) []string {
	var deltas []string
	for _, line := range strings.Split(string(data), "\n") {
		if d.done {
			break
		}
		line = d.carry + line
		d.carry = ""
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") { // SSE comment
			continue
		}
		if line == doneLine {
			d.done = true
			break
		}
		payload, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			// A read boundary can land inside the "data: " prefix itself;
			// hold such a fragment for the next read. Anything else (the
			// tail of a split comment, blank noise) is droppable.
			if strings.HasPrefix("data: ", line) {
				d.carry = line
			}
			continue
		}
		var f frame
		if err := json.Unmarshal([]byte(payload), &f); err != nil {
			d.carry = line
			continue
		}
		if len(f.Choices) > 0 && f.Choices[0].Delta.Content != "" {
			deltas = append(deltas, f.Choices[0].Delta.Content)
		}
	}
	return deltas
}
