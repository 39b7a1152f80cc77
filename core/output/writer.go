// Package output handles file naming and writing for rendered recipes.
// Files imported from a URL are named after the URL (e.g.
// cuisine_example_fr_tarte.md); others after their title (tarte_aux_pommes.md).
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gaurav-prasanna/recipepipe/core"
)

const maxNameLen = 80

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data for recipe under a name derived from its source and
// returns the path written.
func (w *Writer) Write(recipe core.ParsedRecipe, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, Filename(recipe)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename returns the base name (without extension) for recipe.
func Filename(recipe core.ParsedRecipe) string {
	var name string
	if recipe.SourceURL != "" {
		name = filenameFromURL(recipe.SourceURL)
	}
	if strings.Trim(name, "_") == "" {
		name = sanitize(recipe.Title)
	}
	name = strings.Trim(name, "_")
	if name == "" {
		return "recipe"
	}
	if len(name) > maxNameLen {
		name = strings.TrimRight(name[:maxNameLen], "_")
	}
	return name
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://www.example.com/recettes/tarte → example_com_recettes_tarte
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(strings.TrimPrefix(parsed.Hostname(), "www."))}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(strings.TrimSuffix(seg, filepath.Ext(seg))))
		}
	}
	if v := parsed.Query().Get("v"); v != "" {
		parts = append(parts, sanitize(v))
	}
	return strings.Join(parts, "_")
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// sanitize folds accents ("crêpes" -> "crepes"), lowercases and replaces
// every other non-alphanumeric run with one underscore.
func sanitize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	underscore := false
	for _, ch := range strings.ToLower(folded) {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
			underscore = false
		} else if !underscore {
			b.WriteRune('_')
			underscore = true
		}
	}
	return b.String()
}
