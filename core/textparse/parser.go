// Package textparse implements the free-text heuristic parser: a single
// top-to-bottom scan over pasted recipe text that splits it into a title,
// ingredient lines and step lines using French and English markers.
package textparse

import (
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
)

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionSteps
)

// Parse splits pasted text into a recipe. It fails only on blank input.
// Category is always main: the parser never infers one.
func Parse(text string) core.Result {
	if strings.TrimSpace(text) == "" {
		return core.Failure(core.KindInvalidInput, core.MsgEmptyText)
	}

	var (
		title       string
		titleFound  bool
		current     = sectionNone
		ingredients []string
		steps       []string
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if !titleFound {
			if t, ok := IsTitleMarker(line); ok {
				title, titleFound = t, true
				continue
			}
			if current == sectionNone && !IsIngredientMarker(line) && !IsStepMarker(line) && !IsMetadataLine(line) {
				title, titleFound = StripHeading(line), true
				continue
			}
		}

		switch {
		case IsIngredientMarker(line):
			current = sectionIngredients
			continue
		case IsStepMarker(line):
			current = sectionSteps
			continue
		case IsMetadataLine(line):
			continue
		}

		switch current {
		case sectionIngredients:
			ingredients = append(ingredients, line)
		case sectionSteps:
			steps = append(steps, StripNumbering(line))
		default:
			switch {
			case IsNumberedStep(line):
				steps = append(steps, StripNumbering(line))
			case LooksLikeIngredient(line):
				ingredients = append(ingredients, line)
			default:
				steps = append(steps, line)
			}
		}
	}

	if title == "" {
		title = core.DefaultTitle
	}
	prep, cook := DetectTimes(text)
	return core.Success(core.ParsedRecipe{
		Title:       title,
		Category:    core.CategoryMain,
		Ingredients: core.JoinLines(ingredients),
		Steps:       core.JoinLines(steps),
		PrepTime:    prep,
		CookTime:    cook,
		Servings:    DetectServings(text),
		SourceType:  core.SourcePastedText,
	})
}
