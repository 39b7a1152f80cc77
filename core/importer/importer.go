// Package importer implements the import orchestrator: it validates a
// request, dispatches it by mode and runs the fallback chain for URLs.
package importer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/ai"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
	"github.com/gaurav-prasanna/recipepipe/core/jsonld"
	"github.com/gaurav-prasanna/recipepipe/core/normalize"
	"github.com/gaurav-prasanna/recipepipe/core/textparse"
	"github.com/gaurav-prasanna/recipepipe/core/video"
	"github.com/gaurav-prasanna/recipepipe/crawl"
)

// Mode selects the import entry point.
type Mode string

const (
	ModeURL   Mode = "url"
	ModeText  Mode = "text"
	ModePhoto Mode = "photo"
)

// Request is one caller-facing import call. Only the fields of the chosen
// mode are read.
type Request struct {
	Mode      Mode   `json:"mode"`
	URL       string `json:"url,omitempty"`
	Text      string `json:"text,omitempty"`
	Image     string `json:"image,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
}

// Importer dispatches import requests. It holds no per-request state and
// is safe for concurrent use.
type Importer struct {
	fetcher    core.Fetcher
	structured *jsonld.Extractor
	ai         *ai.Parser
	video      *video.Resolver
	normalizer core.Normalizer
	log        *zap.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithAI enables the AI-assisted extractor. Without it photo imports fail
// with a credential message, text imports use the heuristic parser and URL
// imports use structured data only.
func WithAI(p *ai.Parser) Option {
	return func(im *Importer) { im.ai = p }
}

// WithVideo replaces the default video resolver.
func WithVideo(r *video.Resolver) Option {
	return func(im *Importer) { im.video = r }
}

// WithNormalizer replaces the rich-text normalizer.
func WithNormalizer(n core.Normalizer) Option {
	return func(im *Importer) { im.normalizer = n }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(im *Importer) {
		if l != nil {
			im.log = l
		}
	}
}

// New creates an Importer fetching pages through f.
func New(f core.Fetcher, opts ...Option) *Importer {
	im := &Importer{
		fetcher:    f,
		normalizer: normalize.New(),
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(im)
	}
	im.structured = jsonld.New(im.log)
	if im.video == nil {
		im.video = video.NewResolver(f, video.WithAI(im.ai), video.WithLogger(im.log))
	}
	return im
}

// AIEnabled reports whether the AI-assisted extractor is wired in.
func (im *Importer) AIEnabled() bool {
	return im.ai != nil
}

// Import dispatches req by mode. It never returns an error: every failure
// is a Result with a user-facing message.
func (im *Importer) Import(ctx context.Context, req Request) core.Result {
	var res core.Result
	switch Mode(strings.ToLower(strings.TrimSpace(string(req.Mode)))) {
	case ModeURL:
		res = im.ImportURL(ctx, req.URL)
	case ModeText:
		res = im.ImportText(ctx, req.Text)
	case ModePhoto:
		res = im.ImportPhoto(ctx, req.Image, req.MediaType)
	default:
		res = core.Failure(core.KindInvalidInput, core.MsgUnknownMode)
	}
	if res.Success {
		im.log.Info("import succeeded", zap.String("mode", string(req.Mode)), zap.String("title", res.Recipe.Title))
	} else {
		im.log.Info("import failed", zap.String("mode", string(req.Mode)), zap.String("kind", string(res.Kind)), zap.String("error", res.Error))
	}
	return res
}

// ImportText parses pasted text. HTML pasted from a browser is converted
// to Markdown first. The AI extractor runs when configured and the
// heuristic parser backs it up.
func (im *Importer) ImportText(ctx context.Context, text string) core.Result {
	if strings.TrimSpace(text) == "" {
		return core.Failure(core.KindInvalidInput, core.MsgEmptyText)
	}
	if im.normalizer != nil && normalize.LooksLikeHTML(text) {
		if md, err := im.normalizer.Normalize(text); err == nil && strings.TrimSpace(md) != "" {
			text = md
		} else if err != nil {
			im.log.Debug("import: pasted HTML not normalized", zap.Error(err))
		}
	}

	var chain Chain
	if im.ai != nil {
		chain = append(chain, Strategy{
			Name: "ai-text",
			Run:  func(ctx context.Context) core.Result { return im.ai.ParseText(ctx, text) },
		})
	}
	chain = append(chain, Strategy{
		Name: "heuristic",
		Run:  func(context.Context) core.Result { return textparse.Parse(text) },
	})
	res, attempts := chain.Run(ctx)
	im.logAttempts("text", attempts)
	return res
}

// ImportPhoto sends a base64 photo to the AI extractor.
func (im *Importer) ImportPhoto(ctx context.Context, image, mediaType string) core.Result {
	if strings.TrimSpace(image) == "" {
		return core.Failure(core.KindInvalidInput, core.MsgMissingImage)
	}
	if _, ok := ai.NormalizeMediaType(mediaType); !ok {
		return core.Failure(core.KindInvalidInput, core.MsgBadMediaType)
	}
	if im.ai == nil {
		return core.Failure(core.KindAICredential, ai.MsgMissingKey)
	}
	return im.ai.ParseImage(ctx, image, mediaType)
}

// ImportURL imports a web page or a video. A page runs structured data
// first and returns it when it has both ingredients and steps; otherwise
// the AI page extractor is tried when configured, and failing that the
// incomplete structured result is returned so there is something to edit.
func (im *Importer) ImportURL(ctx context.Context, rawURL string) core.Result {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return core.Failure(core.KindInvalidInput, core.MsgMissingURL)
	}
	if !crawl.IsWebURL(rawURL) {
		return core.Failure(core.KindInvalidInput, core.MsgInvalidURL)
	}
	if video.IsVideoURL(rawURL) {
		im.log.Debug("import: video URL", zap.String("url", rawURL))
		return im.video.Resolve(ctx, rawURL)
	}

	page, err := im.fetcher.Fetch(ctx, rawURL, core.FetchOptions{})
	if err != nil {
		im.log.Warn("import: fetch failed", zap.String("url", rawURL), zap.Error(err))
		return fetch.Failure(err)
	}

	chain := Chain{{
		Name:   "structured-data",
		Run:    func(context.Context) core.Result { return im.structured.Extract(page.HTML, rawURL) },
		Accept: core.Result.Complete,
	}}
	if im.ai != nil {
		chain = append(chain, Strategy{
			Name: "ai-html",
			Run:  func(ctx context.Context) core.Result { return im.ai.ParseHTML(ctx, page.HTML, rawURL) },
		})
	}
	res, attempts := chain.Run(ctx)
	im.logAttempts("url", attempts)
	return res
}

// ParseStructured imports a page from its structured data only, without
// video handling or AI fallback.
func (im *Importer) ParseStructured(ctx context.Context, rawURL string) core.Result {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return core.Failure(core.KindInvalidInput, core.MsgMissingURL)
	}
	if !crawl.IsWebURL(rawURL) {
		return core.Failure(core.KindInvalidInput, core.MsgInvalidURL)
	}
	page, err := im.fetcher.Fetch(ctx, rawURL, core.FetchOptions{})
	if err != nil {
		im.log.Warn("import: fetch failed", zap.String("url", rawURL), zap.Error(err))
		return fetch.Failure(err)
	}
	return im.structured.Extract(page.HTML, rawURL)
}

func (im *Importer) logAttempts(mode string, attempts []Attempt) {
	for _, a := range attempts {
		im.log.Debug("import: strategy",
			zap.String("mode", mode),
			zap.String("strategy", a.Strategy),
			zap.Bool("success", a.Success),
			zap.Bool("accepted", a.Accepted),
			zap.String("kind", string(a.Kind)),
			zap.Duration("took", a.Elapsed),
		)
	}
}
