// Stage-event recording and review.
//
// Information Hiding:
// - Event pairing strategy (adjacent index, not name)
// - Timestamp source

// Package trace records pipeline stage events and renders them for review.
package trace

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/richinex/gamal/model"
)

// Recorder accumulates enter/leave events for one or more pipeline runs.
// The zero value is ready to use.
type Recorder struct {
	mu     sync.Mutex
	events []model.StageEvent
}

// Enter records the start of a stage.
func (r *Recorder) Enter(name string) {
	r.append(name, nil)
}

// Leave records the successful end of a stage with its result fields.
func (r *Recorder) Leave(name string, fields map[string]string) {
	r.append(name, fields)
}

func (r *Recorder) append(name string, fields map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, model.StageEvent{
		Name:      name,
		Timestamp: time.Now().UnixMilli(),
		Fields:    fields,
	})
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []model.StageEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]model.StageEvent, len(r.events))
	copy(events, r.events)
	return events
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Simplify pairs events by adjacent index: event 2i is an enter, event 2i+1
// the matching leave. A trailing unpaired enter (an aborted run) is dropped.
func Simplify(events []model.StageEvent) []model.StageTiming {
	var timings []model.StageTiming
	for i := 0; i+1 < len(events); i += 2 {
		enter, leave := events[i], events[i+1]
		timings = append(timings, model.StageTiming{
			Name:     leave.Name,
			Duration: time.Duration(leave.Timestamp-enter.Timestamp) * time.Millisecond,
			Fields:   leave.Fields,
		})
	}
	return timings
}

// Format pretty-prints completed stages: name, duration, and the fields
// attached to the leave event, keys sorted for stable output.
func Format(timings []model.StageTiming) string {
	var b strings.Builder
	for _, timing := range timings {
		fmt.Fprintf(&b, "%s took %d ms\n", timing.Name, timing.Duration.Milliseconds())
		keys := make([]string, 0, len(timing.Fields))
		for key := range timing.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", key, timing.Fields[key])
		}
	}
	return b.String()
}

// Review renders the recorded events of a run for display.
func Review(events []model.StageEvent) string {
	return Format(Simplify(events))
}
