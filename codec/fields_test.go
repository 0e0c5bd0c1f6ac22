package codec

import (
	"strings"
	"testing"
)

func TestConstructOrdersAndOmits(t *testing.T) {
	out := Construct(map[string]string{
		"topic":      "geography.",
		"tool":       "Google.",
		"keyphrases": "Pitch Lake Trinidad",
		"language":   "",
	})

	want := "TOOL: Google.\nKEYPHRASES: Pitch Lake Trinidad\nTOPIC: geography."
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestConstructCaseInsensitiveLookup(t *testing.T) {
	out := Construct(map[string]string{"Tool": "Google.", "TOPIC": "history."})
	want := "TOOL: Google.\nTOPIC: history."
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRoundTrip(t *testing.T) {
	fields := map[string]string{
		"tool":        "Google.",
		"language":    "French.",
		"thought":     "The inquiry concerns Pitch Lake.",
		"keyphrases":  "Pitch Lake Trinidad famous.",
		"observation": "Pitch Lake is the largest natural asphalt deposit.",
		"topic":       "geography.",
	}

	parsed := Parse(Construct(fields))
	for key, want := range fields {
		if got := parsed[key]; got != want {
			t.Errorf("%s: got %q, want %q", key, got, want)
		}
	}
}

func TestParseLastOccurrenceWins(t *testing.T) {
	parsed := Parse("TOPIC: a\nTOPIC: b")
	if got := parsed["topic"]; got != "b" {
		t.Errorf("topic: got %q, want %q", got, "b")
	}
}

func TestParseIgnoresChatter(t *testing.T) {
	text := "Sure, here is my analysis.\n" +
		"TOOL: Google.\n" +
		"LANGUAGE: English.\n" +
		"THOUGHT: Need to look up the CEO of Google.\n" +
		"KEYPHRASES: Google CEO.\n" +
		"TOPIC: business.\n" +
		"Hope this helps!"

	parsed := Parse(text)
	if got := parsed["keyphrases"]; got != "Google CEO." {
		t.Errorf("keyphrases: got %q", got)
	}
	// Trailing chatter is swallowed into the anchor value; the fields
	// before it must survive untouched.
	if got := parsed["language"]; got != "English." {
		t.Errorf("language: got %q", got)
	}
	if !strings.HasPrefix(parsed["topic"], "business.") {
		t.Errorf("topic: got %q", parsed["topic"])
	}
}

func TestParseEchoedExampleDoesNotShadow(t *testing.T) {
	text := "KEYPHRASES: echoed example.\nTOPIC: echoed.\n" +
		"KEYPHRASES: real completion.\nTOPIC: actual."

	parsed := Parse(text)
	if got := parsed["keyphrases"]; got != "real completion." {
		t.Errorf("keyphrases: got %q", got)
	}
	if got := parsed["topic"]; got != "actual." {
		t.Errorf("topic: got %q", got)
	}
}

func TestParseMissingAnchorYieldsEmpty(t *testing.T) {
	parsed := Parse("TOOL: Google.\nKEYPHRASES: something.")
	if len(parsed) != 0 {
		t.Errorf("expected empty map, got %v", parsed)
	}
}

func TestParseSyntheticAnchorRecovers(t *testing.T) {
	text := "TOOL: Google.\nLANGUAGE: English.\nKEYPHRASES: red planet."
	if len(Parse(text)) != 0 {
		t.Fatal("expected empty map before synthetic anchor")
	}

	parsed := Parse(text + "\nTOPIC: general knowledge.")
	if got := parsed["keyphrases"]; got != "red planet." {
		t.Errorf("keyphrases: got %q", got)
	}
	if got := parsed["topic"]; got != "general knowledge." {
		t.Errorf("topic: got %q", got)
	}
}

func TestParseMissingMarkersAbsent(t *testing.T) {
	parsed := Parse("KEYPHRASES: only this.\nTOPIC: general.")
	if _, ok := parsed["thought"]; ok {
		t.Error("thought should be absent")
	}
	if _, ok := parsed["language"]; ok {
		t.Error("language should be absent")
	}
}
