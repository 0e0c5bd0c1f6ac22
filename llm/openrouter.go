// OpenRouter Provider implementation over the raw chat-completions wire.
//
// Information Hiding:
// - Exact request JSON (explicit zero temperature, stop list, token budget)
// - SSE transcript decoding and split-frame reassembly
// - Authorization header handling
//
// This provider is hand-rolled on net/http rather than an SDK: the request
// must carry temperature 0 explicitly and a custom stop list, and the stream
// decoder must tolerate frames split at arbitrary byte boundaries.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/richinex/gamal/internal/sse"
)

// OpenRouterProvider implements the Provider interface for OpenRouter or any
// other OpenAI-compatible chat-completions endpoint.
type OpenRouterProvider struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenRouterProvider creates a new OpenRouter provider. The API key may be
// empty; the Authorization header is then omitted.
func NewOpenRouterProvider(baseURL, apiKey, model string) *OpenRouterProvider {
	return &OpenRouterProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 3 * time.Minute,
		},
	}
}

// Name returns the provider name.
func (p *OpenRouterProvider) Name() string {
	return "openrouter"
}

// Model returns the current model.
func (p *OpenRouterProvider) Model() string {
	return p.model
}

// chatRequest is the outbound chat-completions body. Temperature has no
// omitempty tag: the zero value must reach the wire.
type chatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Model       string        `json:"model"`
	Stop        []string      `json:"stop"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

// chatResponse is the non-streaming reply body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends a non-streaming completion request.
func (p *OpenRouterProvider) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	resp, err := p.post(ctx, messages, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var reply chatResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if len(reply.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(reply.Choices[0].Message.Content), nil
}

// StreamChat streams a completion, decoding the SSE transcript incrementally
// and forwarding clean deltas to the sink.
func (p *OpenRouterProvider) StreamChat(ctx context.Context, messages []ChatMessage, onDelta func(string)) (string, error) {
	resp, err := p.post(ctx, messages, true)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	acc := &streamAccumulator{onDelta: onDelta}
	decoder := &sse.Decoder{}
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			for _, delta := range decoder.Push(buf[:n]) {
				acc.push(delta)
			}
		}
		if decoder.Done() || err == io.EOF {
			return acc.text(), nil
		}
		if err != nil {
			return acc.text(), fmt.Errorf("stream read failed: %w", err)
		}
	}
}

// post issues the chat-completions request and verifies the status. On
// success the caller owns the body; on failure the body has been consumed.
func (p *OpenRouterProvider) post(ctx context.Context, messages []ChatMessage, stream bool) (*http.Response, error) {
	payload, err := json.Marshal(chatRequest{
		Messages:    messages,
		Model:       p.model,
		Stop:        StopSequences,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
		Stream:      stream,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

// Verify OpenRouterProvider implements Provider
var _ Provider = (*OpenRouterProvider)(nil)
