package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/quantity"
)

// recipeDocument is the JSON output: the recipe as imported plus a
// display view with structured and, when requested, scaled ingredients.
type recipeDocument struct {
	Recipe  core.ParsedRecipe `json:"recipe"`
	Display recipeDisplay     `json:"display"`
}

type recipeDisplay struct {
	Servings    int                   `json:"servings,omitempty"`
	Multiplier  float64               `json:"multiplier"`
	Ingredients []string              `json:"ingredients"`
	Parsed      []quantity.Ingredient `json:"parsed_ingredients"`
	Steps       []string              `json:"steps"`
}

// JSONRenderer produces the recipe as indented JSON.
type JSONRenderer struct {
	opts options
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(opts ...Option) *JSONRenderer {
	return &JSONRenderer{opts: newOptions(opts)}
}

// Render marshals the recipe and its display view.
func (r *JSONRenderer) Render(recipe core.ParsedRecipe) ([]byte, error) {
	mult, servings := r.opts.multiplier(recipe)
	doc := recipeDocument{
		Recipe: recipe,
		Display: recipeDisplay{
			Servings:    servings,
			Multiplier:  mult,
			Ingredients: nonNil(ingredientLines(recipe, mult)),
			Parsed:      quantity.ParseLines(recipe.Ingredients),
			Steps:       nonNil(recipe.StepLines()),
		},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
