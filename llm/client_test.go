package llm

import (
	"context"
	"testing"
)

// fakeProvider records which path was taken.
type fakeProvider struct {
	reply    string
	chatted  bool
	streamed bool
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	f.chatted = true
	return f.reply, nil
}

func (f *fakeProvider) StreamChat(ctx context.Context, messages []ChatMessage, onDelta func(string)) (string, error) {
	f.streamed = true
	if onDelta != nil {
		onDelta(f.reply)
	}
	return f.reply, nil
}

func TestClientStreamsWithSink(t *testing.T) {
	fake := &fakeProvider{reply: "answer"}
	client := NewClient(fake, true, nil)

	var got string
	reply, err := client.Chat(context.Background(), []ChatMessage{UserMessage("q")}, func(d string) { got += d })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fake.streamed || fake.chatted {
		t.Errorf("expected streaming path, streamed=%v chatted=%v", fake.streamed, fake.chatted)
	}
	if reply != "answer" || got != "answer" {
		t.Errorf("reply=%q sink=%q", reply, got)
	}
}

func TestClientNoSinkNoStream(t *testing.T) {
	fake := &fakeProvider{reply: "answer"}
	client := NewClient(fake, true, nil)

	if _, err := client.Chat(context.Background(), []ChatMessage{UserMessage("q")}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.streamed || !fake.chatted {
		t.Errorf("expected non-streaming path, streamed=%v chatted=%v", fake.streamed, fake.chatted)
	}
}

func TestClientStreamingDisabledStillInvokesSinkOnce(t *testing.T) {
	fake := &fakeProvider{reply: "answer"}
	client := NewClient(fake, false, nil)

	var calls []string
	reply, err := client.Chat(context.Background(), []ChatMessage{UserMessage("q")}, func(d string) {
		calls = append(calls, d)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.streamed {
		t.Error("streaming must be disabled by configuration")
	}
	if len(calls) != 1 || calls[0] != reply {
		t.Errorf("sink calls: got %v, want one full reply", calls)
	}
}

func TestParseProviderType(t *testing.T) {
	cases := []struct {
		in   string
		want ProviderType
	}{
		{"", ProviderOpenRouter},
		{"openrouter", ProviderOpenRouter},
		{"OpenAI", ProviderOpenAI},
		{"gpt", ProviderOpenAI},
		{"claude", ProviderAnthropic},
		{"anthropic", ProviderAnthropic},
		{"google", ProviderGemini},
		{"gemini", ProviderGemini},
	}
	for _, tc := range cases {
		got, err := ParseProviderType(tc.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseProviderType("mystery"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFirstDeltaTrimming(t *testing.T) {
	acc := &streamAccumulator{}
	acc.push("")
	acc.push("  \n\t")
	acc.push("  hello")
	acc.push("  world  ")
	if got, want := acc.text(), "hello  world  "; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
