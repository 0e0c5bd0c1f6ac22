// Answer expectation matching for the file-based test runner.
//
// Information Hiding:
// - Fence scanning for the /regex/regex/ literal syntax
// - ANSI highlighting of matched spans

// Package matcher compiles compact /regex/ expectations into a conjunction
// of case-insensitive probes.
package matcher

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	highlightStart = "\x1b[1;93m"
	highlightEnd   = "\x1b[0m"
)

// Expectation is an ordered list of regex probes. A target satisfies the
// expectation iff every probe matches at least once.
type Expectation struct {
	patterns []*regexp.Regexp
}

// Compile parses /…/ fences out of the expected string; a backslash-escaped
// slash inside a fence is honored. When no fences are present the whole
// string becomes a single probe. All probes match case-insensitively.
func Compile(expected string) (*Expectation, error) {
	bodies := scanFences(expected)
	if len(bodies) == 0 {
		bodies = []string{expected}
	}

	patterns := make([]*regexp.Regexp, 0, len(bodies))
	for _, body := range bodies {
		pattern, err := regexp.Compile("(?i)" + body)
		if err != nil {
			return nil, fmt.Errorf("bad expectation %q: %w", body, err)
		}
		patterns = append(patterns, pattern)
	}
	return &Expectation{patterns: patterns}, nil
}

// scanFences extracts the bodies of /…/ fences. `\/` never opens or closes a
// fence; inside one it stays as-is so the regex engine sees the escape.
func scanFences(expected string) []string {
	var bodies []string
	var current strings.Builder
	inFence := false

	for i := 0; i < len(expected); i++ {
		ch := expected[i]
		if ch == '\\' && i+1 < len(expected) && expected[i+1] == '/' {
			if inFence {
				current.WriteString(`\/`)
			}
			i++
			continue
		}
		if ch == '/' {
			if inFence {
				bodies = append(bodies, current.String())
				current.Reset()
			}
			inFence = !inFence
			continue
		}
		if inFence {
			current.WriteByte(ch)
		}
	}
	return bodies
}

// Match reports whether every probe matches the target.
func (e *Expectation) Match(target string) bool {
	for _, pattern := range e.patterns {
		if !pattern.MatchString(target) {
			return false
		}
	}
	return true
}

// Spans returns every matched [start, end) span across all probes.
func (e *Expectation) Spans(target string) [][2]int {
	var spans [][2]int
	for _, pattern := range e.patterns {
		for _, loc := range pattern.FindAllStringIndex(target, -1) {
			spans = append(spans, [2]int{loc[0], loc[1]})
		}
	}
	return spans
}

// Patterns returns the number of compiled probes.
func (e *Expectation) Patterns() int {
	return len(e.patterns)
}

// Highlight wraps every span in ANSI highlight codes. Spans are applied from
// the rightmost backwards so earlier indices stay valid.
func Highlight(target string, spans [][2]int) string {
	ordered := make([][2]int, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i][0] > ordered[j][0]
	})

	for _, span := range ordered {
		target = target[:span[0]] + highlightStart + target[span[0]:span[1]] + highlightEnd + target[span[1]:]
	}
	return target
}
