// Package normalize implements the Normalizer interface.
// It converts pasted rich text (HTML copied from a browser) into Markdown
// lines that the free-text parser can scan like plain text.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into Markdown, then drops list
// bullets and emphasis so each ingredient or step sits on its own bare line.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return stripListMarkup(markdown), nil
}

var (
	bulletRegex   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	emphasisRegex = regexp.MustCompile(`\*{1,3}([^*\n]+)\*{1,3}`)
	linkRegex     = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

func stripListMarkup(md string) string {
	md = bulletRegex.ReplaceAllString(md, "")
	md = emphasisRegex.ReplaceAllString(md, "$1")
	md = linkRegex.ReplaceAllString(md, "$1")
	return strings.TrimSpace(md)
}

var tagRegex = regexp.MustCompile(`(?i)<(p|div|br|li|ul|ol|h[1-6]|span|b|strong|table)\b[^>]*>`)

// LooksLikeHTML reports whether pasted text is markup rather than prose.
// It requires both a recognizable tag and a parseable document with text.
func LooksLikeHTML(s string) bool {
	if len(tagRegex.FindAllStringIndex(s, 3)) < 2 {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return false
	}
	return strings.TrimSpace(doc.Text()) != ""
}
