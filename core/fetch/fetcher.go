// Package fetch implements the Fetcher interface.
// It performs bounded HTTP GET requests that look like a regular browser
// and returns the page decoded to UTF-8.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/gaurav-prasanna/recipepipe/core"
)

const (
	// DefaultTimeout bounds every outbound page fetch.
	DefaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	acceptLanguage   = "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7"
	maxBodyBytes     = 8 << 20
)

// StatusError is returned when the site answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// TimeoutError is returned when the fetch exceeded its time bound.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetching %s: timed out: %v", e.URL, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout overrides the per-fetch time bound.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) { f.timeout = d }
}

// WithClient replaces the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *HTTPFetcher) { f.log = l }
}

// New creates an HTTPFetcher with a 10-second bound.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:  &http.Client{},
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, opts core.FetchOptions) (*core.FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", acceptLanguage)
	if opts.Cookie != "" {
		req.Header.Set("Cookie", opts.Cookie)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			f.log.Debug("fetch timed out", zap.String("url", url), zap.Duration("after", time.Since(start)))
			return nil, &TimeoutError{URL: url, Err: err}
		}
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &TimeoutError{URL: url, Err: err}
		}
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	html, cs := Decode(body, resp.Header.Get("Content-Type"))
	f.log.Debug("fetched page",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.String("charset", cs),
		zap.Duration("took", time.Since(start)),
	)

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       html,
		Charset:    cs,
	}, nil
}

var metaCharsetRegex = regexp.MustCompile(`(?i)<meta[^>]+charset=["']?([^"'\s;>]+)`)

// Decode turns a page body into UTF-8. A charset declared in a <meta> tag
// wins over the Content-Type header; undecodable input is kept as UTF-8.
func Decode(body []byte, contentType string) (string, string) {
	head := body
	if len(head) > 4096 {
		head = head[:4096]
	}
	if m := metaCharsetRegex.FindSubmatch(head); m != nil {
		name := strings.ToLower(string(m[1]))
		if name == "utf-8" || name == "utf8" {
			return string(body), "utf-8"
		}
		if enc, err := htmlindex.Get(name); err == nil {
			if out, err := enc.NewDecoder().Bytes(body); err == nil {
				return string(out), name
			}
		}
	}

	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body), "utf-8"
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return string(body), "utf-8"
	}
	_, name, _ := charset.DetermineEncoding(body, contentType)
	return string(out), name
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
