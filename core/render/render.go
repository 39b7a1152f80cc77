// Package render provides output renderers for parsed recipes: Markdown,
// JSON and a PDF recipe card. Every renderer can scale ingredient
// quantities to a target serving count.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/quantity"
)

// Option configures a renderer.
type Option func(*options)

type options struct {
	servings int
}

// WithServings scales ingredient quantities from the recipe's own serving
// count to n. It has no effect when the recipe's count is unknown.
func WithServings(n int) Option {
	return func(o *options) { o.servings = n }
}

func newOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// multiplier returns the scaling factor and the serving count to display.
func (o options) multiplier(r core.ParsedRecipe) (float64, int) {
	m := quantity.Multiplier(r.Servings, o.servings)
	if m == 1 {
		return 1, r.Servings
	}
	return m, o.servings
}

// ingredientLines returns the ingredient lines scaled by mult. Lines are
// kept verbatim when no scaling is needed.
func ingredientLines(r core.ParsedRecipe, mult float64) []string {
	lines := r.IngredientLines()
	if mult == 1 {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = quantity.Render(quantity.Ingredient{Name: l}, mult)
	}
	return out
}

// facts lists the non-empty recipe facts in display order.
func facts(r core.ParsedRecipe, servings int) []string {
	var out []string
	if r.PrepTime > 0 {
		out = append(out, "Prep: "+minutes(r.PrepTime))
	}
	if r.CookTime > 0 {
		out = append(out, "Cook: "+minutes(r.CookTime))
	}
	if servings > 0 {
		out = append(out, fmt.Sprintf("Serves: %d", servings))
	}
	if r.Difficulty != "" {
		out = append(out, "Difficulty: "+string(r.Difficulty))
	}
	return out
}

func minutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%02d", m/60, m%60)
}

func tags(r core.ParsedRecipe) []string {
	var out []string
	for _, v := range []string{string(r.Category), string(r.Appliance)} {
		if v != "" {
			out = append(out, label(v))
		}
	}
	return out
}

// label turns an enum wire value such as "bread_pastry" into "bread pastry".
func label(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

func title(r core.ParsedRecipe) string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return core.DefaultTitle
}
