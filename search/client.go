// Web-search client for the you.com index.
//
// Information Hiding:
// - Endpoint, query encoding, and API-key header
// - Snippet synthesis from hit descriptions and snippet lists
// - Retry policy for transient failures

// Package search retrieves web references for a keyphrase query.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/richinex/gamal/model"
)

const (
	defaultBaseURL = "https://api.ydc-index.io/search"

	// TopK is the number of references handed to the Respond stage.
	TopK = 3

	maxAttempts  = 3
	snippetLimit = 1000
)

// Client queries the search API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint; used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a search client. A nil logger disables debug logging.
func NewClient(apiKey string, log *zap.SugaredLogger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError reports exhausted retries against the search endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("search: endpoint returned %d: %s", e.StatusCode, e.Body)
}

// CleanQuery strips the trailing period and surrounding quotes the extraction
// stage tends to leave on keyphrases.
func CleanQuery(query string) string {
	query = strings.TrimSpace(query)
	query = strings.TrimSuffix(query, ".")
	if len(query) >= 2 && strings.HasPrefix(query, `"`) && strings.HasSuffix(query, `"`) {
		query = query[1 : len(query)-1]
	}
	return query
}

// apiResponse mirrors the search API reply.
type apiResponse struct {
	Hits []struct {
		Title       string   `json:"title"`
		URL         string   `json:"url"`
		Description string   `json:"description"`
		Snippets    []string `json:"snippets"`
	} `json:"hits"`
}

// Search returns up to TopK references for the keyphrases. Transient HTTP
// failures and empty hit lists are retried up to three attempts total; after
// that, an HTTP failure is an error while persistently empty hits degrade to
// an empty reference list so the Respond stage can carry on.
func (c *Client) Search(ctx context.Context, keyphrases string) ([]model.Reference, error) {
	query := CleanQuery(keyphrases)
	c.log.Debugw("search", "query", query)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		references, err := c.fetch(ctx, query)
		if err == nil && len(references) > 0 {
			c.log.Debugw("search hits", "attempt", attempt, "references", len(references))
			return references, nil
		}
		lastErr = err
		c.log.Debugw("search retry", "attempt", attempt, "error", err)
	}

	if lastErr != nil {
		return nil, fmt.Errorf("search failed after %d attempts: %w", maxAttempts, lastErr)
	}
	// Exhausted on empty hits: not an error, the pipeline degrades.
	return nil, nil
}

func (c *Client) fetch(ctx context.Context, query string) ([]model.Reference, error) {
	endpoint := fmt.Sprintf("%s?query=%s&num_web_results=%d", c.baseURL, url.QueryEscape(query), TopK)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var reply apiResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	hits := reply.Hits
	if len(hits) > TopK {
		hits = hits[:TopK]
	}
	references := make([]model.Reference, 0, len(hits))
	for i, hit := range hits {
		joined := strings.Join(hit.Snippets, "\n")
		if len(joined) > snippetLimit {
			joined = joined[:snippetLimit]
		}
		references = append(references, model.Reference{
			Position: i + 1,
			Title:    hit.Title,
			URL:      hit.URL,
			Snippet:  hit.Description + joined,
		})
	}
	return references, nil
}
