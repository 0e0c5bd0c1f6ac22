// Labelled-field codec for the record exchanged with the LLM.
//
// Information Hiding:
// - Marker list and serialization order
// - Last-occurrence scanning strategy for noisy completions

// Package codec serializes and parses the `MARKER: value` multi-line record
// the reasoning prompt forces the LLM to emit.
package codec

import "strings"

// Markers in serialization order. TOPIC comes last and anchors parsing.
var Markers = []string{
	"INQUIRY",
	"TOOL",
	"LANGUAGE",
	"THOUGHT",
	"KEYPHRASES",
	"OBSERVATION",
	"TOPIC",
}

// Construct emits one "MARKER: value" line per non-empty field, in marker
// order. Field names are looked up case-insensitively; absent or empty
// fields are omitted entirely.
func Construct(fields map[string]string) string {
	lower := make(map[string]string, len(fields))
	for key, value := range fields {
		lower[strings.ToLower(key)] = value
	}

	var lines []string
	for _, marker := range Markers {
		if value := lower[strings.ToLower(marker)]; value != "" {
			lines = append(lines, marker+": "+value)
		}
	}
	return strings.Join(lines, "\n")
}

// Parse extracts labelled fields from free text that may contain chatter.
//
// The last occurrence of "TOPIC:" anchors the scan; its value runs from there
// to the end of the text. Each preceding marker, walked from last to first,
// takes the first line after its own last occurrence within the prefix left
// over from the previous marker. The last-occurrence rule keeps echoes of
// few-shot examples from shadowing the actual completion: the model is primed
// mid-record and completes from there.
//
// Without the anchor the result is empty; callers re-attempt after appending
// "TOPIC: general knowledge." to the text.
func Parse(text string) map[string]string {
	fields := map[string]string{}

	anchor := Markers[len(Markers)-1]
	at := strings.LastIndex(text, anchor+":")
	if at < 0 {
		return fields
	}
	fields[strings.ToLower(anchor)] = strings.TrimSpace(text[at+len(anchor)+1:])

	prefix := text[:at]
	for i := len(Markers) - 2; i >= 0; i-- {
		marker := Markers[i]
		at = strings.LastIndex(prefix, marker+":")
		if at < 0 {
			continue
		}
		value := prefix[at+len(marker)+1:]
		if nl := strings.IndexByte(value, '\n'); nl >= 0 {
			value = value[:nl]
		}
		fields[strings.ToLower(marker)] = strings.TrimSpace(value)
		prefix = prefix[:at]
	}
	return fields
}
