// Google Gemini Provider implementation using official google.golang.org/genai SDK.
//
// Information Hiding:
// - API authentication and client creation
// - Request/response format for Gemini API
// - System instruction handling via config
// - Streaming via official SDK iterator

package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	initErr error // Stores client initialization error for deferred reporting
}

// NewGeminiProvider creates a new Gemini provider.
// If client initialization fails, the error is stored and returned on first use.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return &GeminiProvider{
			model:   model,
			initErr: fmt.Errorf("failed to initialize Gemini client: %w", err),
		}
	}

	return &GeminiProvider{
		client: client,
		model:  model,
	}
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the current model.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Chat sends a non-streaming completion request.
func (p *GeminiProvider) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	if p.initErr != nil {
		return "", p.initErr
	}

	contents, config := p.convert(messages)
	response, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	return strings.TrimSpace(response.Text()), nil
}

// StreamChat streams a completion.
func (p *GeminiProvider) StreamChat(ctx context.Context, messages []ChatMessage, onDelta func(string)) (string, error) {
	if p.initErr != nil {
		return "", p.initErr
	}

	contents, config := p.convert(messages)
	acc := &streamAccumulator{onDelta: onDelta}
	for response, err := range p.client.Models.GenerateContentStream(ctx, p.model, contents, config) {
		if err != nil {
			return acc.text(), fmt.Errorf("stream error: %w", err)
		}
		acc.push(response.Text())
	}

	return acc.text(), nil
}

// convert maps chat messages to Gemini contents. The system message becomes
// the system instruction; a trailing assistant message rides along as model
// content, which Gemini continues from.
func (p *GeminiProvider) convert(messages []ChatMessage) ([]*genai.Content, *genai.GenerateContentConfig) {
	var contents []*genai.Content
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](Temperature),
		MaxOutputTokens: MaxTokens,
		StopSequences:   StopSequences,
	}

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			config.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
		case "user":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		}
	}

	return contents, config
}

// Verify GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)
