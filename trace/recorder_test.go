package trace

import (
	"strings"
	"testing"

	"github.com/richinex/gamal/model"
)

func TestSimplifyPairsByIndex(t *testing.T) {
	events := []model.StageEvent{
		{Name: "Reason", Timestamp: 1000},
		{Name: "Reason", Timestamp: 1250, Fields: map[string]string{"keyphrases": "x"}},
		{Name: "Search", Timestamp: 1250},
		{Name: "Search", Timestamp: 1400},
	}

	timings := Simplify(events)
	if len(timings) != 2 {
		t.Fatalf("timings: got %d, want 2", len(timings))
	}
	if timings[0].Name != "Reason" || timings[0].Duration.Milliseconds() != 250 {
		t.Errorf("first timing: %+v", timings[0])
	}
	if timings[0].Fields["keyphrases"] != "x" {
		t.Errorf("leave fields not carried: %+v", timings[0].Fields)
	}
	if timings[1].Name != "Search" || timings[1].Duration.Milliseconds() != 150 {
		t.Errorf("second timing: %+v", timings[1])
	}
}

func TestSimplifyDropsUnpairedEnter(t *testing.T) {
	events := []model.StageEvent{
		{Name: "Reason", Timestamp: 1},
		{Name: "Reason", Timestamp: 2},
		{Name: "Search", Timestamp: 3}, // aborted mid-stage
	}
	if got := Simplify(events); len(got) != 1 {
		t.Errorf("timings: got %d, want 1", len(got))
	}
}

func TestRecorderRoundTrip(t *testing.T) {
	rec := &Recorder{}
	rec.Enter("Reason")
	rec.Leave("Reason", map[string]string{"topic": "geography."})

	events := rec.Events()
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	timings := Simplify(events)
	if len(timings) != 1 || timings[0].Duration < 0 {
		t.Errorf("timings: %+v", timings)
	}

	rec.Reset()
	if len(rec.Events()) != 0 {
		t.Error("Reset must discard events")
	}
}

func TestFormat(t *testing.T) {
	out := Format([]model.StageTiming{
		{Name: "Reason", Fields: map[string]string{"topic": "geography.", "language": "French."}},
	})
	if !strings.Contains(out, "Reason took 0 ms") {
		t.Errorf("missing header: %q", out)
	}
	// Keys are sorted for stable output.
	if strings.Index(out, "language") > strings.Index(out, "topic") {
		t.Errorf("fields not sorted: %q", out)
	}
}
