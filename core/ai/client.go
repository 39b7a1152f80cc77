// Package ai implements the AI-assisted extractor. It sends recipe text,
// photos or cleaned page text to the Anthropic Messages API under a fixed
// JSON-only system prompt and maps the reply onto a ParsedRecipe.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipepipe/core"
)

const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-3-5-haiku-latest"
	DefaultTimeout   = 30 * time.Second
	DefaultMaxTokens = 2000

	// PlaceholderKey is the value shipped in example env files.
	PlaceholderKey = "REPLACE_WITH_YOUR_KEY"
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at another API host (tests, proxies).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// WithHTTPTimeout sets the per-request timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// Client talks to the Anthropic Messages API through the official SDK. It
// implements core.Completer.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	timeout   time.Duration
	sdk       anthropic.Client
	log       *zap.Logger
}

var _ core.Completer = (*Client)(nil)

// NewClient creates a Messages API client. A nil logger disables logging.
// Failed calls are never retried.
func NewClient(apiKey string, log *zap.Logger, opts ...ClientOption) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    strings.TrimSpace(apiKey),
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
		timeout:   DefaultTimeout,
		log:       log,
	}
	for _, o := range opts {
		o(c)
	}
	c.sdk = anthropic.NewClient(
		option.WithAPIKey(c.apiKey),
		option.WithBaseURL(c.baseURL+"/"),
		option.WithRequestTimeout(c.timeout),
		option.WithMaxRetries(0),
	)
	return c
}

// KeyConfigured reports whether key is set to something other than the
// shipped placeholder.
func KeyConfigured(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderKey
}

// Complete sends one user turn (text, optionally preceded by an image) and
// returns the text of the reply.
func (c *Client) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	if !KeyConfigured(c.apiKey) {
		return "", ErrMissingAPIKey
	}

	var blocks []anthropic.ContentBlockParamUnion
	if req.Image != nil {
		blocks = append(blocks, anthropic.NewImageBlockBase64(req.Image.MediaType, req.Image.Data))
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.Text))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	c.log.Debug("ai: messages.create", zap.String("base_url", c.baseURL), zap.String("model", c.model),
		zap.Int("chars", len(req.Text)), zap.Bool("image", req.Image != nil))

	start := time.Now()
	msg, err := c.sdk.Messages.New(ctx, params)
	if err != nil {
		var sdkErr *anthropic.Error
		if errors.As(err, &sdkErr) {
			return "", apiError(sdkErr)
		}
		return "", fmt.Errorf("ai: request failed: %w", err)
	}

	var reply strings.Builder
	for _, b := range msg.Content {
		if b.Type == "text" {
			reply.WriteString(b.Text)
		}
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("ai: empty response (no text content)")
	}

	c.log.Debug("ai: reply", zap.Int("chars", reply.Len()), zap.Duration("elapsed", time.Since(start)),
		zap.String("head", truncate(reply.String(), 120)))
	return reply.String(), nil
}

type apiErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// apiError copies the status and the error envelope of an SDK error into
// an APIError.
func apiError(e *anthropic.Error) *APIError {
	out := &APIError{StatusCode: e.StatusCode}
	raw := e.RawJSON()
	var eb apiErrorBody
	if json.Unmarshal([]byte(raw), &eb) == nil {
		out.Type = eb.Error.Type
		out.Message = eb.Error.Message
	}
	if out.Message == "" {
		out.Message = truncate(raw, 200)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
