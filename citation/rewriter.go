// Stream-safe rewriting of [citation:N] markers.
//
// Information Hiding:
// - Lookahead buffering that reassembles markers split across chunks
// - Dense renumbering by order of first appearance

// Package citation rewrites the [citation:N] markers streamed by the LLM
// into densely renumbered [k] references for display.
package citation

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var markerPattern = regexp.MustCompile(`\[citation:(\d)\]`)

// lookahead is three marker widths. Holding that much back guarantees a
// marker split across two chunks is reassembled before the bytes around it
// are emitted. Only single-digit citation numbers are recognized; a
// two-digit marker passes through as literal text.
const lookahead = 3 * len("[citation:x]")

// Rewriter is a stateful stream transducer. Push returns the text that is
// safe to display so far; Flush drains the tail and resets.
type Rewriter struct {
	buffer string
	refs   []string // citation digits in order of first appearance
}

// Push appends a chunk, rewrites any complete markers, and returns the
// displayable prefix of the buffer.
func (r *Rewriter) Push(chunk string) string {
	r.buffer += chunk

	for {
		loc := markerPattern.FindStringSubmatchIndex(r.buffer)
		if loc == nil {
			break
		}
		digit := r.buffer[loc[2]:loc[3]]
		index := slices.Index(r.refs, digit)
		if index < 0 {
			index = len(r.refs)
			r.refs = append(r.refs, digit)
		}
		r.buffer = r.buffer[:loc[0]] + "[" + strconv.Itoa(index+1) + "]" + r.buffer[loc[1]:]
	}

	if len(r.buffer) > lookahead {
		emit := r.buffer[:len(r.buffer)-lookahead]
		r.buffer = r.buffer[len(r.buffer)-lookahead:]
		return emit
	}
	return ""
}

// Citations returns the original citation numbers in display order: the
// number at index k was rewritten to [k+1].
func (r *Rewriter) Citations() []int {
	citations := make([]int, len(r.refs))
	for i, digit := range r.refs {
		citations[i], _ = strconv.Atoi(digit)
	}
	return citations
}

// Flush emits the remaining buffer, right-trimmed, and resets the rewriter.
func (r *Rewriter) Flush() string {
	out := strings.TrimRight(r.buffer, " \t\r\n")
	r.buffer = ""
	r.refs = nil
	return out
}
