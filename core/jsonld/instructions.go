package jsonld

import (
	"fmt"
	"strings"
)

// Instructions is the decoded shape of a recipeInstructions value.
// Every variant flattens to newline-joined step text.
type Instructions interface {
	flatten() []string
}

type (
	// instructionText is a single free-text block.
	instructionText string
	// instructionList is an array of plain step strings.
	instructionList []string
	// instructionSteps is an array whose items are steps or sections.
	instructionSteps []Instructions
	// instructionStep is a HowToStep-like object carrying text.
	instructionStep string
	// instructionSection is a HowToSection with nested steps.
	instructionSection struct {
		Name  string
		Items instructionSteps
	}
	// instructionNone is a value carrying no usable text.
	instructionNone struct{}
)

func (t instructionText) flatten() []string {
	return splitNonEmpty(string(t))
}

func (l instructionList) flatten() []string {
	var out []string
	for _, s := range l {
		out = append(out, splitNonEmpty(s)...)
	}
	return out
}

func (s instructionSteps) flatten() []string {
	var out []string
	for _, it := range s {
		out = append(out, it.flatten()...)
	}
	return out
}

func (s instructionStep) flatten() []string {
	return splitNonEmpty(string(s))
}

func (s instructionSection) flatten() []string {
	return s.Items.flatten()
}

func (instructionNone) flatten() []string { return nil }

// DecodeInstructions classifies a raw JSON value into one Instructions variant.
func DecodeInstructions(v any) Instructions {
	switch x := v.(type) {
	case nil:
		return instructionNone{}
	case string:
		return instructionText(x)
	case []any:
		if allStrings(x) {
			l := make(instructionList, 0, len(x))
			for _, s := range x {
				l = append(l, s.(string))
			}
			return l
		}
		steps := make(instructionSteps, 0, len(x))
		for _, item := range x {
			steps = append(steps, DecodeInstructions(item))
		}
		return steps
	case map[string]any:
		if items, ok := x["itemListElement"]; ok {
			name, _ := x["name"].(string)
			nested := DecodeInstructions(items)
			sec := instructionSection{Name: name}
			switch n := nested.(type) {
			case instructionSteps:
				sec.Items = n
			default:
				sec.Items = instructionSteps{n}
			}
			return sec
		}
		if text, ok := x["text"].(string); ok {
			return instructionStep(text)
		}
		if name, ok := x["name"].(string); ok {
			return instructionStep(name)
		}
		return instructionNone{}
	default:
		return instructionNone{}
	}
}

// FlattenInstructions turns any supported recipeInstructions value into
// newline-joined step text, unescaping entities on the way.
func FlattenInstructions(v any) string {
	lines := DecodeInstructions(v).flatten()
	for i, l := range lines {
		lines[i] = cleanString(l)
	}
	return strings.Join(dropEmpty(lines), "\n")
}

// describe names the variant, for debug logging.
func describe(in Instructions) string {
	switch v := in.(type) {
	case instructionText:
		return "text"
	case instructionList:
		return fmt.Sprintf("list(%d)", len(v))
	case instructionSteps:
		return fmt.Sprintf("steps(%d)", len(v))
	case instructionStep:
		return "step"
	case instructionSection:
		return fmt.Sprintf("section(%q)", v.Name)
	case instructionNone:
		return "none"
	default:
		panic(fmt.Sprintf("jsonld: unhandled instructions variant %T", in))
	}
}

func allStrings(xs []any) bool {
	if len(xs) == 0 {
		return false
	}
	for _, x := range xs {
		if _, ok := x.(string); !ok {
			return false
		}
	}
	return true
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func dropEmpty(xs []string) []string {
	out := xs[:0]
	for _, x := range xs {
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}
