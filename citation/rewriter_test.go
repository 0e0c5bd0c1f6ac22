package citation

import (
	"strings"
	"testing"
)

func rewrite(chunks []string) string {
	r := &Rewriter{}
	var out strings.Builder
	for _, chunk := range chunks {
		out.WriteString(r.Push(chunk))
	}
	out.WriteString(r.Flush())
	return out.String()
}

func TestDenseRenumbering(t *testing.T) {
	got := rewrite([]string{"foo[citation:3] bar[citation:1] baz[citation:3]"})
	want := "foo[1] bar[2] baz[1]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestChunkingIdempotence(t *testing.T) {
	text := "The CEO is Sundar Pichai[citation:2]. He took over in 2015[citation:1], succeeding Larry Page[citation:2]."
	whole := rewrite([]string{text})

	for size := 1; size <= 7; size++ {
		var chunks []string
		for i := 0; i < len(text); i += size {
			end := i + size
			if end > len(text) {
				end = len(text)
			}
			chunks = append(chunks, text[i:end])
		}
		if got := rewrite(chunks); got != whole {
			t.Fatalf("chunk size %d: got %q, want %q", size, got, whole)
		}
	}
}

func TestMarkerSplitAcrossChunks(t *testing.T) {
	got := rewrite([]string{"answer[cita", "tion:4] done"})
	want := "answer[1] done"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMultiDigitPassesThrough(t *testing.T) {
	got := rewrite([]string{"see [citation:12] there"})
	if got != "see [citation:12] there" {
		t.Errorf("got %q", got)
	}
}

func TestFlushRightTrims(t *testing.T) {
	got := rewrite([]string{"short answer.  \n"})
	if got != "short answer." {
		t.Errorf("got %q", got)
	}
}

func TestLookaheadHoldsTail(t *testing.T) {
	r := &Rewriter{}
	emitted := r.Push(strings.Repeat("a", lookahead))
	if emitted != "" {
		t.Errorf("nothing should be emitted at exactly the lookahead size, got %q", emitted)
	}
	emitted = r.Push("b")
	if emitted != "a" {
		t.Errorf("got %q, want %q", emitted, "a")
	}
}

func TestCitations(t *testing.T) {
	r := &Rewriter{}
	r.Push("x[citation:3]y[citation:1]z[citation:3]")
	got := r.Citations()
	if len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Errorf("citations: got %v, want [3 1]", got)
	}
}
