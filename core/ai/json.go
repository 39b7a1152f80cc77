package ai

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
)

var fenceRegex = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// ExtractJSON recovers one JSON object from a model reply. It tries the
// whole reply, then the first fenced code block, then the span from the
// first '{' to the last '}'.
func ExtractJSON(reply string) (map[string]any, bool) {
	if obj, ok := parseObject(strings.TrimSpace(reply)); ok {
		return obj, true
	}
	if m := fenceRegex.FindStringSubmatch(reply); m != nil {
		if obj, ok := parseObject(strings.TrimSpace(m[1])); ok {
			return obj, true
		}
	}
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start >= 0 && end > start {
		if obj, ok := parseObject(reply[start : end+1]); ok {
			return obj, true
		}
	}
	return nil, false
}

func parseObject(s string) (map[string]any, bool) {
	if s == "" {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// ToRecipe coerces a decoded reply into a ParsedRecipe. Enumerated fields
// outside their enumeration are dropped (category falls back to main),
// numbers may arrive as JSON numbers or numeric strings, and list fields
// may arrive as arrays.
func ToRecipe(obj map[string]any, source core.SourceType, sourceURL string) core.ParsedRecipe {
	r := core.ParsedRecipe{
		Title:       strings.TrimSpace(str(obj["title"])),
		Category:    core.CategoryMain,
		Ingredients: lines(obj["ingredients_text"]),
		Steps:       lines(obj["steps_text"]),
		PrepTime:    positiveInt(obj["prep_time"]),
		CookTime:    positiveInt(obj["cook_time"]),
		Servings:    positiveInt(obj["servings"]),
		SourceType:  source,
		SourceURL:   sourceURL,
	}
	if c := core.Category(enumValue(obj["category"])); c.Valid() {
		r.Category = c
	}
	if a := core.Appliance(enumValue(obj["appliance"])); a.Valid() {
		r.Appliance = a
	}
	if d := core.Difficulty(enumValue(obj["difficulty"])); d.Valid() {
		r.Difficulty = d
	}
	return r
}

func enumValue(v any) string {
	s, _ := v.(string)
	return strings.ToLower(strings.TrimSpace(s))
}

func str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}

func lines(v any) string {
	switch x := v.(type) {
	case string:
		return core.JoinLines(strings.Split(x, "\n"))
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, str(item))
		}
		return core.JoinLines(out)
	}
	return ""
}

func positiveInt(v any) int {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if f < 1 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return int(math.Round(f))
}
