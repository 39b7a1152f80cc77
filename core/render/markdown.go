package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// MarkdownRenderer writes a recipe as a Markdown document.
type MarkdownRenderer struct {
	opts options
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(opts ...Option) *MarkdownRenderer {
	return &MarkdownRenderer{opts: newOptions(opts)}
}

// Render formats the recipe with its facts, ingredient list and numbered
// steps.
func (r *MarkdownRenderer) Render(recipe core.ParsedRecipe) ([]byte, error) {
	mult, servings := r.opts.multiplier(recipe)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title(recipe))

	if t := tags(recipe); len(t) > 0 {
		fmt.Fprintf(&b, "_%s_\n\n", strings.Join(t, " · "))
	}

	if f := facts(recipe, servings); len(f) > 0 {
		fmt.Fprintf(&b, "%s\n\n", strings.Join(f, " | "))
	}
	if recipe.ImageURL != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", title(recipe), recipe.ImageURL)
	}

	if lines := ingredientLines(recipe, mult); len(lines) > 0 {
		b.WriteString("## Ingredients\n\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
		b.WriteString("\n")
	}
	if steps := recipe.StepLines(); len(steps) > 0 {
		b.WriteString("## Steps\n\n")
		for i, s := range steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
		b.WriteString("\n")
	}
	if recipe.SourceURL != "" {
		fmt.Fprintf(&b, "Source: %s\n", recipe.SourceURL)
	}
	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
