// LLMClient - wraps a provider with the streaming decision and debug logging.

package llm

import (
	"context"

	"go.uber.org/zap"
)

// Client wraps a Provider. A request streams iff the caller supplies a sink
// AND streaming has not been disabled by configuration; in the non-streaming
// case the sink is still invoked once with the full reply.
type Client struct {
	provider  Provider
	streaming bool
	log       *zap.SugaredLogger
}

// NewClient creates a new LLM client from a provider. A nil logger disables
// debug logging.
func NewClient(provider Provider, streaming bool, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{provider: provider, streaming: streaming, log: log}
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Chat sends the messages and returns the full reply text. When streaming,
// the sink receives each delta in model order; otherwise it receives the
// complete reply once.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage, sink func(string)) (string, error) {
	c.log.Debugw("chat request",
		"provider", c.provider.Name(),
		"model", c.provider.Model(),
		"stream", sink != nil && c.streaming)
	for _, msg := range messages {
		c.log.Debugf("  %s: %s", msg.Role, msg.Content)
	}

	var reply string
	var err error
	if sink != nil && c.streaming {
		reply, err = c.provider.StreamChat(ctx, messages, sink)
	} else {
		reply, err = c.provider.Chat(ctx, messages)
		if err == nil && sink != nil {
			sink(reply)
		}
	}
	if err != nil {
		c.log.Debugw("chat failed", "error", err)
		return reply, err
	}

	c.log.Debugw("chat reply", "length", len(reply))
	c.log.Debugf("  assistant: %s", reply)
	return reply, nil
}
