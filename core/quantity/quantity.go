// Package quantity parses, scales and formats ingredient quantities for
// display. It runs at render time on already imported recipes.
package quantity

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// Ingredient is a stored ingredient. Quantity is nil when the whole
// description sits in Name.
type Ingredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// Parsed is a quantity peeled off the front of a free-form ingredient.
type Parsed struct {
	Quantity float64
	Unit     string
	Text     string
}

// A unit must be followed by whitespace so "3 gousses" is not read as
// 3 g of "ousses".
var inlineRegex = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?(?:\s*/\s*\d+)?)\s*` +
	`(?:(kg|g|mg|ml|cl|dl|l|cs|cc|c\.\s?à\s?s\.|c\.\s?à\s?c\.|tbsp|tsp|oz|lb|cups?|` +
	`cuill[eè]res?\s+à\s+(?:soupe|café)|tablespoons?|teaspoons?|pinc[ée]es?|sachets?)(?:\s+|$))?` +
	`(?:(?:de|of)\s+|d['’])?([^\d\s].*)$`)

// Format scales q by multiplier, rounds to one decimal and drops a
// trailing ".0".
func Format(q, multiplier float64) string {
	r := math.Round(q*multiplier*10) / 10
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// ParseInline peels a leading quantity ("300", "1,5", "1/2") and an
// optional unit off name. It reports false when name does not start with
// a usable quantity.
func ParseInline(name string) (Parsed, bool) {
	m := inlineRegex.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return Parsed{}, false
	}
	q, ok := parseNumber(m[1])
	if !ok {
		return Parsed{}, false
	}
	text := strings.TrimSpace(m[3])
	if text == "" {
		return Parsed{}, false
	}
	return Parsed{Quantity: q, Unit: strings.TrimSpace(m[2]), Text: text}, true
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.ReplaceAll(raw, ",", ".")
	if num, den, found := strings.Cut(raw, "/"); found {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	q, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return q, true
}

// Render formats an ingredient scaled by multiplier. Structured quantities
// are used as stored; otherwise the quantity is parsed out of Name. An
// ingredient without a quantity renders verbatim.
func Render(in Ingredient, multiplier float64) string {
	if in.Quantity != nil {
		parts := []string{Format(*in.Quantity, multiplier)}
		if in.Unit != "" {
			parts = append(parts, in.Unit)
		}
		parts = append(parts, in.Name)
		s := strings.Join(parts, " ")
		if in.Note != "" {
			s += " (" + in.Note + ")"
		}
		return s
	}
	p, ok := ParseInline(in.Name)
	if !ok {
		return in.Name
	}
	if p.Unit != "" {
		return Format(p.Quantity, multiplier) + " " + p.Unit + " " + p.Text
	}
	return Format(p.Quantity, multiplier) + " " + p.Text
}

// ParseLines turns newline-joined ingredient text into ingredients with
// the quantity split out where one was recognized.
func ParseLines(text string) []Ingredient {
	r := core.ParsedRecipe{Ingredients: text}
	lines := r.IngredientLines()
	out := make([]Ingredient, 0, len(lines))
	for _, l := range lines {
		p, ok := ParseInline(l)
		if !ok {
			out = append(out, Ingredient{Name: l})
			continue
		}
		q := p.Quantity
		out = append(out, Ingredient{Name: p.Text, Quantity: &q, Unit: p.Unit})
	}
	return out
}

// Multiplier returns target/base, or 1 when either count is unknown.
func Multiplier(base, target int) float64 {
	if base <= 0 || target <= 0 {
		return 1
	}
	return float64(target) / float64(base)
}
