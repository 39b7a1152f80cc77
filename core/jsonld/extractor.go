// Package jsonld implements the structured-data extractor.
// It finds schema.org Recipe objects embedded in a page as
// application/ld+json blocks and maps them onto a ParsedRecipe.
// It never touches the network: the page HTML is supplied by the caller.
package jsonld

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// Extractor maps embedded Recipe metadata onto ParsedRecipe values.
type Extractor struct {
	log *zap.Logger
}

// New creates an Extractor. A nil logger disables logging.
func New(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// ExtractFromHTML is a convenience wrapper around a logger-less Extractor.
func ExtractFromHTML(page, sourceURL string) core.Result {
	return New(nil).Extract(page, sourceURL)
}

// Extract returns the first Recipe with a title and some ingredient or
// step text. Without one it falls back to a title-only recipe taken from
// the first <h1> or the <title>, and fails only if no title exists at all.
func (e *Extractor) Extract(page, sourceURL string) core.Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		e.log.Debug("jsonld: unparseable HTML", zap.Error(err))
		return core.Failure(core.KindExtraction, core.MsgNoRecipeOnPage)
	}

	var found *core.ParsedRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			e.log.Debug("jsonld: skipping invalid block", zap.Int("block", i), zap.Error(err))
			return true
		}
		obj := FindRecipe(data)
		if obj == nil {
			return true
		}
		r := e.mapRecipe(obj, sourceURL)
		if r.Title != "" && (r.HasIngredients() || r.HasSteps()) {
			found = &r
			return false
		}
		return true
	})
	if found != nil {
		return core.Success(*found)
	}

	title := cleanString(doc.Find("h1").First().Text())
	if title == "" {
		title = cleanString(doc.Find("title").First().Text())
	}
	if title == "" {
		return core.Failure(core.KindExtraction, core.MsgNoRecipeOnPage)
	}
	e.log.Debug("jsonld: no usable Recipe, using heading only", zap.String("title", title))
	return core.Success(core.ParsedRecipe{
		Title:      title,
		Category:   core.CategoryMain,
		SourceType: core.SourceURL,
		SourceURL:  sourceURL,
	})
}

func (e *Extractor) mapRecipe(obj map[string]any, sourceURL string) core.ParsedRecipe {
	title := cleanString(stringOf(obj["name"]))
	if title == "" {
		title = cleanString(stringOf(obj["headline"]))
	}
	instr := DecodeInstructions(obj["recipeInstructions"])
	e.log.Debug("jsonld: recipe found", zap.String("title", title), zap.String("instructions", describe(instr)))

	return core.ParsedRecipe{
		Title:       title,
		Category:    MapCategory(stringsOf(obj["recipeCategory"])...),
		Ingredients: ingredientsText(obj["recipeIngredient"]),
		Steps:       FlattenInstructions(obj["recipeInstructions"]),
		PrepTime:    ParseDuration(stringOf(obj["prepTime"])),
		CookTime:    ParseDuration(stringOf(obj["cookTime"])),
		Servings:    Servings(obj["recipeYield"]),
		SourceType:  core.SourceURL,
		SourceURL:   sourceURL,
		ImageURL:    ImageURL(obj["image"]),
	}
}

// FindRecipe searches a decoded JSON-LD value for an object whose @type is
// (or contains) "Recipe": directly, inside @graph, or inside a root array.
func FindRecipe(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		if isRecipeType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			if r := FindRecipe(graph); r != nil {
				return r
			}
		}
		if entity, ok := v["mainEntity"]; ok {
			return FindRecipe(entity)
		}
	case []any:
		for _, item := range v {
			if r := FindRecipe(item); r != nil {
				return r
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return strings.EqualFold(v, "Recipe") || strings.EqualFold(v, "schema:Recipe")
	case []any:
		for _, x := range v {
			if isRecipeType(x) {
				return true
			}
		}
	}
	return false
}

var durationRegex = regexp.MustCompile(`(?i)^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseDuration converts an ISO-8601 duration ("PT1H30M") to minutes.
// Malformed input and zero durations both yield 0 ("undetected").
func ParseDuration(s string) int {
	m := durationRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	days := atoi(m[1])
	hours := atoi(m[2])
	minutes := atoi(m[3])
	var seconds int
	if m[4] != "" {
		if f, err := strconv.ParseFloat(m[4], 64); err == nil {
			seconds = int(f)
		}
	}
	return days*24*60 + hours*60 + minutes + seconds/60
}

var firstIntRegex = regexp.MustCompile(`\d+`)

// Servings reads recipeYield as a bare number, a string or the first
// element of an array, keeping the first integer found.
func Servings(v any) int {
	switch x := v.(type) {
	case float64:
		if x >= 1 {
			return int(x)
		}
	case string:
		if m := firstIntRegex.FindString(x); m != "" {
			return atoi(m)
		}
	case []any:
		if len(x) > 0 {
			return Servings(x[0])
		}
	}
	return 0
}

// ImageURL returns the first image URL from a string, an array of strings
// or objects, or an ImageObject.
func ImageURL(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case []any:
		for _, item := range x {
			if u := ImageURL(item); u != "" {
				return u
			}
		}
	case map[string]any:
		if u, ok := x["url"].(string); ok {
			return strings.TrimSpace(u)
		}
		if u, ok := x["contentUrl"].(string); ok {
			return strings.TrimSpace(u)
		}
	}
	return ""
}

func ingredientsText(v any) string {
	switch x := v.(type) {
	case string:
		return strings.Join(splitNonEmpty(cleanString(x)), "\n")
	case []any:
		lines := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				lines = append(lines, cleanString(s))
			}
		}
		return strings.Join(dropEmpty(lines), "\n")
	}
	return ""
}

var innerSpaceRegex = regexp.MustCompile(`[ \t\x{00a0}]+`)

// cleanString unescapes entities and tidies spacing inside one value.
func cleanString(s string) string {
	s = html.UnescapeString(s)
	s = innerSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func stringOf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		if len(x) > 0 {
			return stringOf(x[0])
		}
	}
	return ""
}

func stringsOf(v any) []string {
	switch x := v.(type) {
	case string:
		return strings.Split(x, ",")
	case []any:
		var out []string
		for _, item := range x {
			out = append(out, stringsOf(item)...)
		}
		return out
	}
	return nil
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
