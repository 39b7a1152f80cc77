// Package extract implements the Extractor interface.
// It reduces a full recipe page to the plain text worth sending to the
// AI service by:
//  1. Removing noise elements (scripts, styles, navigation, page chrome)
//  2. Dropping every remaining tag and decoding HTML entities
//  3. Collapsing whitespace and truncating to a character budget
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/recipepipe/core/chunk"
)

// DefaultBudget is the maximum number of characters kept for a prompt.
const DefaultBudget = 8000

// noiseSelectors are HTML elements removed before extraction.
// These contribute nothing to a recipe and inflate prompt size.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header", "aside",
	"iframe", "svg", "template",
}

// TextExtractor strips noise from HTML and returns bounded plain text.
type TextExtractor struct {
	chunker *chunk.Chunker
}

// New creates a TextExtractor keeping at most budget characters.
// A budget <= 0 selects DefaultBudget.
func New(budget int) *TextExtractor {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &TextExtractor{chunker: chunk.New(budget)}
}

// Extract takes raw HTML and returns cleaned, whitespace-collapsed text.
func (e *TextExtractor) Extract(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	// Remove noise elements first (operates on the whole document).
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// Separate block-level text so words from adjacent cells never merge.
	doc.Find("p, li, div, h1, h2, h3, h4, h5, h6, td, th, tr, section, article").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	text := CollapseSpace(DecodeEntities(doc.Text()))
	return e.chunker.Truncate(text), nil
}

// DecodeEntities resolves HTML entities left in text, including entities
// that were double-escaped in the source (e.g. "&amp;eacute;").
func DecodeEntities(s string) string {
	for i := 0; i < 2 && strings.Contains(s, "&"); i++ {
		next := html.UnescapeString(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

var spaceRegex = regexp.MustCompile(`\s+`)

// CollapseSpace replaces every whitespace run with one space and trims.
func CollapseSpace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}
