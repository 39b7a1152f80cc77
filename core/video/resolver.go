// Package video implements the video-description resolver. A recipe is
// looked for in a video's title, description and captions first, then in
// the recipe pages the description links to.
package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/ai"
	"github.com/gaurav-prasanna/recipepipe/core/chunk"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
	"github.com/gaurav-prasanna/recipepipe/core/jsonld"
	"github.com/gaurav-prasanna/recipepipe/core/textparse"
	"github.com/gaurav-prasanna/recipepipe/crawl"
)

const (
	DefaultWatchURL      = "https://www.youtube.com/watch"
	DefaultCaptionBudget = 3000
)

// User-facing failures. Each one points at the text-paste fallback.
const (
	MsgInvalidVideoURL  = "Invalid video URL. Use a youtube.com/watch?v=... or youtu.be/... link."
	MsgVideoTimeout     = "The video site took too long to respond (>10s). Paste the video description in text mode instead."
	MsgVideoUnreachable = "Could not reach the video site. Paste the video description in text mode instead."
	MsgNotVideoPage     = "Could not read this video page. Paste the video description in text mode instead."
	MsgNoVideoInfo      = "Could not extract this video's information. Paste the description in text mode instead."
	MsgNoRecipeInVideo  = "Could not extract a recipe from this video: its description does not hold enough information. Paste the recipe in text mode instead."
)

// MsgVideoStatus formats the failure for a non-2xx watch page.
func MsgVideoStatus(code int) string {
	return fmt.Sprintf("The video site responded with an error (%d). Paste the video description in text mode instead.", code)
}

// Resolver turns a video URL into a recipe.
type Resolver struct {
	fetcher       core.Fetcher
	ai            *ai.Parser
	structured    *jsonld.Extractor
	captions      *chunk.Chunker
	maxCandidates int
	watchURL      string
	log           *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAI enables the AI-assisted extractor for descriptions and linked
// pages. Without it descriptions go through the heuristic text parser and
// linked pages through structured data only.
func WithAI(p *ai.Parser) Option {
	return func(r *Resolver) { r.ai = p }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithCaptionBudget bounds how many caption characters join the prompt.
func WithCaptionBudget(n int) Option {
	return func(r *Resolver) { r.captions = chunk.New(n) }
}

// WithMaxCandidates bounds how many linked pages are tried.
func WithMaxCandidates(n int) Option {
	return func(r *Resolver) { r.maxCandidates = n }
}

// WithWatchURL overrides the watch page endpoint.
func WithWatchURL(u string) Option {
	return func(r *Resolver) { r.watchURL = u }
}

// NewResolver creates a Resolver fetching pages through f.
func NewResolver(f core.Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:       f,
		captions:      chunk.New(DefaultCaptionBudget),
		maxCandidates: crawl.DefaultMaxCandidates,
		watchURL:      DefaultWatchURL,
		log:           zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	r.structured = jsonld.New(r.log)
	return r
}

// Resolve fetches the watch page for rawURL and tries, in order, the
// description (with captions) and then each linked recipe page. The first
// result carrying ingredient text wins.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) core.Result {
	id, ok := VideoID(rawURL)
	if !ok {
		return core.Failure(core.KindInvalidInput, MsgInvalidVideoURL)
	}

	page, err := r.fetcher.Fetch(ctx, r.watchURL+"?v="+id, core.FetchOptions{Cookie: ConsentCookie})
	if err != nil {
		r.log.Warn("video: watch page fetch failed", zap.String("id", id), zap.Error(err))
		return watchFailure(err)
	}
	if !IsVideoPage(page.HTML) {
		r.log.Warn("video: not a watch page (consent wall?)", zap.String("id", id))
		return core.Failure(core.KindExtraction, MsgNotVideoPage)
	}

	sig := ExtractSignals(page.HTML)
	if sig.Title == "" && sig.Description == "" {
		return core.Failure(core.KindExtraction, MsgNoVideoInfo)
	}
	r.log.Info("video: signals", zap.String("id", id), zap.String("title", sig.Title),
		zap.Int("description", len(sig.Description)), zap.Int("captions", len(sig.Captions)))

	if sig.Description != "" {
		res := r.parseDescription(ctx, sig)
		if res.HasIngredients() {
			r.log.Info("video: recipe found in description", zap.String("id", id))
			return finalize(res, rawURL, sig)
		}
		r.log.Debug("video: description holds no ingredients", zap.String("id", id), zap.String("error", res.Error))
	}

	links := crawl.DiscoverCandidates(sig.Description, r.maxCandidates)
	r.log.Debug("video: candidate links", zap.Strings("links", links.All()))
	for links.HasNext() {
		link := links.Next()
		res := r.parseLink(ctx, link)
		if res.HasIngredients() {
			r.log.Info("video: recipe found on linked page", zap.String("id", id), zap.String("link", link))
			return finalize(res, rawURL, sig)
		}
	}

	return core.Failure(core.KindExtraction, MsgNoRecipeInVideo)
}

// promptText assembles title, description and, when available, a bounded
// excerpt of the preferred caption track.
func (r *Resolver) promptText(ctx context.Context, sig Signals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Video title: %s\n\nVideo description:\n%s", sig.Title, sig.Description)
	if captions := r.captionText(ctx, sig.Captions); captions != "" {
		fmt.Fprintf(&b, "\n\nVideo captions (excerpt):\n%s", captions)
	}
	return b.String()
}

func (r *Resolver) captionText(ctx context.Context, tracks []CaptionTrack) string {
	track, ok := PreferredTrack(tracks)
	if !ok {
		return ""
	}
	res, err := r.fetcher.Fetch(ctx, track.URL, core.FetchOptions{Cookie: ConsentCookie})
	if err != nil {
		r.log.Debug("video: caption fetch failed", zap.String("lang", track.Language), zap.Error(err))
		return ""
	}
	text, err := ParseCaptions(res.HTML)
	if err != nil {
		r.log.Debug("video: caption parse failed", zap.String("lang", track.Language), zap.Error(err))
		return ""
	}
	return r.captions.Truncate(text)
}

// parseDescription sends the assembled prompt to the AI extractor, or
// feeds title and description to the heuristic parser when AI is off.
// Link lines are dropped for the heuristic parser: they are never
// ingredients and are handled by the linked-page strategy.
func (r *Resolver) parseDescription(ctx context.Context, sig Signals) core.Result {
	if r.ai != nil {
		return r.ai.ParseText(ctx, r.promptText(ctx, sig))
	}
	lines := []string{sig.Title}
	for _, l := range strings.Split(sig.Description, "\n") {
		if !strings.Contains(l, "http://") && !strings.Contains(l, "https://") {
			lines = append(lines, l)
		}
	}
	return textparse.Parse(strings.Join(lines, "\n"))
}

// parseLink fetches one linked page and runs structured data, then the AI
// page extractor when structured data is incomplete.
func (r *Resolver) parseLink(ctx context.Context, link string) core.Result {
	page, err := r.fetcher.Fetch(ctx, link, core.FetchOptions{})
	if err != nil {
		r.log.Debug("video: linked page fetch failed", zap.String("link", link), zap.Error(err))
		return fetch.Failure(err)
	}
	res := r.structured.Extract(page.HTML, link)
	if res.Complete() || r.ai == nil {
		return res
	}
	return r.ai.ParseHTML(ctx, page.HTML, link)
}

// finalize points the recipe back at the video and fills gaps from it.
func finalize(res core.Result, rawURL string, sig Signals) core.Result {
	rec := *res.Recipe
	if rec.Title == "" {
		rec.Title = sig.Title
	}
	rec.SourceType = core.SourceURL
	rec.SourceURL = rawURL
	if rec.ImageURL == "" {
		rec.ImageURL = sig.Thumbnail
	}
	return core.Success(rec)
}

func watchFailure(err error) core.Result {
	var te *fetch.TimeoutError
	if errors.As(err, &te) {
		return core.Failure(core.KindTimeout, MsgVideoTimeout)
	}
	var se *fetch.StatusError
	if errors.As(err, &se) {
		return core.Failure(core.KindHTTPStatus, MsgVideoStatus(se.StatusCode))
	}
	return core.Failure(core.KindUnreachable, MsgVideoUnreachable)
}
