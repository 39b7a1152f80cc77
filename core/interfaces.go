// Package core defines the shared recipe types and the pipeline interfaces
// for RecipePipe. Each stage of the import pipeline is a clean, testable
// interface; concrete stages live in the sub-packages.
package core

import "context"

// FetchResult holds the decoded HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
	Charset    string
}

// FetchOptions tweaks a single fetch (extra cookies, headers).
type FetchOptions struct {
	Cookie  string
	Headers map[string]string
}

// Fetcher retrieves a page and returns it decoded to UTF-8.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts FetchOptions) (*FetchResult, error)
}

// Extractor reduces raw HTML to the plain text worth sending to a model.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts an HTML fragment into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a parsed recipe into a final output format.
type Renderer interface {
	Render(recipe ParsedRecipe) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// ImageBlock is an inline base64 image attached to a completion request.
type ImageBlock struct {
	MediaType string
	Data      string
}

// CompletionRequest is one single-turn call to the AI service.
type CompletionRequest struct {
	System string
	Text   string
	Image  *ImageBlock
}

// Completer sends a single-turn completion to the AI service and returns
// the raw text of the reply.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
