package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/extract"
)

// SystemPrompt constrains the model to a single JSON object.
const SystemPrompt = `You extract cooking recipes.
Return ONLY one valid JSON object (no markdown, no backticks, no text before or after).

The JSON object must have exactly this shape:
{
  "title": "Recipe name",
  "category": "main",
  "appliance": null,
  "ingredients_text": "One ingredient per line",
  "steps_text": "One step per line",
  "prep_time": 15,
  "cook_time": 30,
  "servings": 4,
  "difficulty": "easy"
}

Rules:
- "category" must be one of: aperitif, starter, main, side, sauce, dessert, drink, breakfast, snack, bread_pastry, preserve
- "appliance" must be null or one of: air_fryer, multi_cooker, pressure_cooker. Use "air_fryer" when the recipe mentions an air fryer. Use "multi_cooker" for Thermomix, Monsieur Cuisine, Companion, Magimix Cook Expert or any multi-function cooking robot. Use "pressure_cooker" for Cookeo or electric pressure cookers.
- "difficulty" must be one of: easy, medium, hard
- "prep_time" and "cook_time" are minutes (integer or null)
- "servings" is an integer or null
- "ingredients_text": one ingredient per line, with quantities when available
- "steps_text": one step per line, without numbering
- Keep the recipe's original language
- When information is missing use null for numbers and "main" for the category`

// Parser is the AI-assisted extractor. Each entry point returns a Result
// and never an error: failures are classified into user-facing messages.
type Parser struct {
	completer core.Completer
	extractor core.Extractor
	log       *zap.Logger
}

// NewParser wires a Completer and the page-text extractor used by
// ParseHTML. A nil extractor selects extract.New(extract.DefaultBudget).
func NewParser(c core.Completer, ex core.Extractor, log *zap.Logger) *Parser {
	if ex == nil {
		ex = extract.New(extract.DefaultBudget)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{completer: c, extractor: ex, log: log}
}

// ParseText extracts a recipe from pasted text.
func (p *Parser) ParseText(ctx context.Context, text string) core.Result {
	if strings.TrimSpace(text) == "" {
		return core.Failure(core.KindInvalidInput, core.MsgEmptyText)
	}
	req := core.CompletionRequest{
		System: SystemPrompt,
		Text:   "Extract the following recipe:\n\n" + text,
	}
	return p.run(ctx, "text", req, core.SourcePastedText, "", "Check the text and try again.")
}

// ParseImage extracts a recipe from a base64-encoded photo. mediaType may
// be "jpeg", "png", "webp" or the full "image/..." form.
func (p *Parser) ParseImage(ctx context.Context, image, mediaType string) core.Result {
	if strings.TrimSpace(image) == "" {
		return core.Failure(core.KindInvalidInput, core.MsgMissingImage)
	}
	mt, ok := NormalizeMediaType(mediaType)
	if !ok {
		return core.Failure(core.KindInvalidInput, core.MsgBadMediaType)
	}
	req := core.CompletionRequest{
		System: SystemPrompt,
		Text:   "Extract the recipe visible in this image. The text may be handwritten or printed: read it carefully.",
		Image:  &core.ImageBlock{MediaType: mt, Data: strings.TrimSpace(image)},
	}
	return p.run(ctx, "image", req, core.SourcePhoto, "", "Try a sharper photo or fill in the recipe manually.")
}

// ParseHTML extracts a recipe from a fetched page. The page is reduced to
// bounded plain text before it is sent.
func (p *Parser) ParseHTML(ctx context.Context, page, sourceURL string) core.Result {
	text, err := p.extractor.Extract(page)
	if err != nil || strings.TrimSpace(text) == "" {
		p.log.Debug("ai: no page text to send", zap.String("url", sourceURL), zap.Error(err))
		return core.Failure(core.KindExtraction, core.MsgNoRecipeOnPage)
	}
	req := core.CompletionRequest{
		System: SystemPrompt,
		Text:   fmt.Sprintf("Extract the recipe from this web page content (URL: %s):\n\n%s", sourceURL, text),
	}
	return p.run(ctx, "html", req, core.SourceURL, sourceURL, "The page may not contain a recipe.")
}

func (p *Parser) run(ctx context.Context, entry string, req core.CompletionRequest, source core.SourceType, sourceURL, hint string) core.Result {
	reply, err := p.completer.Complete(ctx, req)
	if err != nil {
		res := Classify(err)
		p.log.Warn("ai: completion failed", zap.String("entry", entry), zap.String("kind", string(res.Kind)), zap.Error(err))
		return res
	}
	obj, ok := ExtractJSON(reply)
	if !ok {
		p.log.Warn("ai: reply holds no JSON object", zap.String("entry", entry), zap.Int("chars", len(reply)))
		return unreadable(hint)
	}
	r := ToRecipe(obj, source, sourceURL)
	if r.Title == "" {
		p.log.Warn("ai: reply has no title", zap.String("entry", entry))
		return unreadable(hint)
	}
	p.log.Info("ai: recipe extracted", zap.String("entry", entry), zap.String("title", r.Title),
		zap.Bool("ingredients", r.HasIngredients()), zap.Bool("steps", r.HasSteps()))
	return core.Success(r)
}

// NormalizeMediaType accepts a short or full image media type and returns
// the full form for JPEG, PNG and WebP.
func NormalizeMediaType(mt string) (string, bool) {
	mt = strings.ToLower(strings.TrimSpace(mt))
	mt = strings.TrimPrefix(mt, "image/")
	switch mt {
	case "jpeg", "jpg":
		return "image/jpeg", true
	case "png":
		return "image/png", true
	case "webp":
		return "image/webp", true
	}
	return "", false
}
