package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/richinex/gamal/llm"
	"github.com/richinex/gamal/pipeline"
	"github.com/richinex/gamal/search"
	"github.com/richinex/gamal/storage"
)

// scriptedProvider replays canned completions in order.
type scriptedProvider struct {
	replies []string
	err     error
}

func (s *scriptedProvider) Name() string  { return "scripted" }
func (s *scriptedProvider) Model() string { return "scripted-model" }

func (s *scriptedProvider) next() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func (s *scriptedProvider) Chat(ctx context.Context, messages []llm.ChatMessage) (string, error) {
	return s.next()
}

func (s *scriptedProvider) StreamChat(ctx context.Context, messages []llm.ChatMessage, onDelta func(string)) (string, error) {
	reply, err := s.next()
	if err == nil && onDelta != nil && reply != "" {
		onDelta(reply)
	}
	return reply, err
}

const oneHitReply = `{"hits":[{"title":"Google","url":"https://example.com","description":"Sundar Pichai is CEO.","snippets":[]}]}`

// newTestRunner wires a runner around a scripted LLM and a stubbed search
// endpoint.
func newTestRunner(t *testing.T, provider *scriptedProvider, searchHandler http.HandlerFunc) *Runner {
	t.Helper()
	if searchHandler == nil {
		searchHandler = func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, oneHitReply)
		}
	}
	server := httptest.NewServer(searchHandler)
	t.Cleanup(server.Close)

	searcher := search.NewClient("test-key", nil, search.WithBaseURL(server.URL))
	p := pipeline.New(llm.NewClient(provider, true, nil), searcher, nil)
	return NewRunner(p, storage.NewInMemoryHistory())
}

const reasonReply = "English.\nTHOUGHT: Looking it up.\nKEYPHRASES: Google CEO.\nTOPIC: business."

func TestAskAppendsHistory(t *testing.T) {
	provider := &scriptedProvider{replies: []string{
		reasonReply,
		"Sundar Pichai [citation:1].",
	}}
	runner := newTestRunner(t, provider, nil)
	ctx := context.Background()

	result, err := runner.Ask(ctx, "conv", "Who is the CEO of Google?", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Answer != "Sundar Pichai [citation:1]." {
		t.Errorf("answer: got %q", result.Answer)
	}

	history, _ := runner.History().Load(ctx, "conv")
	if len(history) != 1 {
		t.Fatalf("history: got %d entries", len(history))
	}
	entry := history[0]
	if entry.Inquiry != "Who is the CEO of Google?" || entry.Answer != result.Answer {
		t.Errorf("entry: %+v", entry)
	}
	if len(entry.Stages) != 3 {
		t.Errorf("stages: got %d, want 3", len(entry.Stages))
	}
	if len(entry.References) != 1 {
		t.Errorf("references: got %d, want 1", len(entry.References))
	}
}

func TestAskFailureLeavesHistoryUntouched(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("llm down")}
	runner := newTestRunner(t, provider, nil)
	ctx := context.Background()

	if _, err := runner.Ask(ctx, "conv", "q", nil); err == nil {
		t.Fatal("expected error")
	}
	history, _ := runner.History().Load(ctx, "conv")
	if len(history) != 0 {
		t.Errorf("aborted run must not append history, got %d entries", len(history))
	}
}

func TestAskEmptyHitsStillAppends(t *testing.T) {
	provider := &scriptedProvider{replies: []string{reasonReply}}
	runner := newTestRunner(t, provider, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"hits":[]}`)
	})
	ctx := context.Background()

	result, err := runner.Ask(ctx, "conv", "anything", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Answer != "" {
		t.Errorf("answer: got %q, want empty", result.Answer)
	}

	history, _ := runner.History().Load(ctx, "conv")
	if len(history) != 1 {
		t.Fatalf("history: got %d entries, want 1", len(history))
	}
	if len(history[0].References) != 0 {
		t.Errorf("references: %+v", history[0].References)
	}
}

func TestReviewAfterRun(t *testing.T) {
	provider := &scriptedProvider{replies: []string{reasonReply, "answer [citation:1]."}}
	runner := newTestRunner(t, provider, nil)
	ctx := context.Background()

	if runner.Review("conv") != "" {
		t.Error("review before any run should be empty")
	}
	if _, err := runner.Ask(ctx, "conv", "q", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	review := runner.Review("conv")
	for _, stage := range []string{"Reason", "Search", "Respond"} {
		if !strings.Contains(review, stage) {
			t.Errorf("review missing %s: %q", stage, review)
		}
	}
}
