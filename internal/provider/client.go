// Package provider is the transport client: it translates domain
// requests into third-party HTTP calls (speech-to-text, chat
// completion, video metadata lookup) and normalizes the replies.
package provider

import (
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"clipinsight/internal/credentials"
)

// Per-call request timeouts. A run's wall clock bound is the sum of
// its step timeouts; there is no per-run budget.
const (
	TranscribeTimeout = 60 * time.Second
	AnalyzeTimeout    = 30 * time.Second
	MetadataTimeout   = 15 * time.Second
)

// Model identifiers sent to the providers.
const (
	speechModel   = openai.Whisper1
	analysisModel = openai.GPT4oMini
)

// Client issues the three provider calls. Credentials are read-only
// inputs supplied at construction; there is no ambient global state.
type Client struct {
	keys credentials.Keys

	// openaiBaseURL and metadataBaseURL are overridable so tests can
	// point the client at local fake endpoints.
	openaiBaseURL   string
	metadataBaseURL string
	httpClient      *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithOpenAIBaseURL redirects speech and analysis calls.
func WithOpenAIBaseURL(url string) Option {
	return func(c *Client) { c.openaiBaseURL = url }
}

// WithMetadataBaseURL redirects metadata lookups.
func WithMetadataBaseURL(url string) Option {
	return func(c *Client) { c.metadataBaseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a transport client over the given credential
// snapshot.
func NewClient(keys credentials.Keys, opts ...Option) *Client {
	c := &Client{
		keys:       keys,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// openaiClient builds a go-openai client for the given key.
func (c *Client) openaiClient(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if c.openaiBaseURL != "" {
		cfg.BaseURL = c.openaiBaseURL
	}
	cfg.HTTPClient = c.httpClient
	return openai.NewClientWithConfig(cfg)
}
