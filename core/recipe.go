package core

import "strings"

// Category is one of the fixed recipe categories.
type Category string

const (
	CategoryAperitif    Category = "aperitif"
	CategoryStarter     Category = "starter"
	CategoryMain        Category = "main"
	CategorySide        Category = "side"
	CategorySauce       Category = "sauce"
	CategoryDessert     Category = "dessert"
	CategoryDrink       Category = "drink"
	CategoryBreakfast   Category = "breakfast"
	CategorySnack       Category = "snack"
	CategoryBreadPastry Category = "bread_pastry"
	CategoryPreserve    Category = "preserve"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryAperitif, CategoryStarter, CategoryMain, CategorySide,
	CategorySauce, CategoryDessert, CategoryDrink, CategoryBreakfast,
	CategorySnack, CategoryBreadPastry, CategoryPreserve,
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Appliance is an optional cooking appliance. The zero value means none.
type Appliance string

const (
	ApplianceAirFryer       Appliance = "air_fryer"
	ApplianceMultiCooker    Appliance = "multi_cooker"
	AppliancePressureCooker Appliance = "pressure_cooker"
)

// Valid reports whether a is a known appliance. The empty value is not.
func (a Appliance) Valid() bool {
	switch a {
	case ApplianceAirFryer, ApplianceMultiCooker, AppliancePressureCooker:
		return true
	}
	return false
}

// Difficulty is an optional difficulty rating. The zero value means unknown.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// SourceType tags where a parsed recipe came from.
type SourceType string

const (
	SourceURL        SourceType = "url"
	SourcePastedText SourceType = "pasted_text"
	SourcePhoto      SourceType = "photo"
)

// DefaultTitle is used when no title could be detected in pasted text.
const DefaultTitle = "Imported recipe"

// ParsedRecipe is the normalized output of every extractor.
//
// Ingredients and Steps are newline-joined lines. Integer fields use 0 for
// "undetected"; string enums use "".
type ParsedRecipe struct {
	Title       string     `json:"title"`
	Category    Category   `json:"category"`
	Appliance   Appliance  `json:"appliance,omitempty"`
	Ingredients string     `json:"ingredients_text"`
	Steps       string     `json:"steps_text"`
	PrepTime    int        `json:"prep_time,omitempty"`
	CookTime    int        `json:"cook_time,omitempty"`
	Servings    int        `json:"servings,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	SourceType  SourceType `json:"source_type"`
	SourceURL   string     `json:"source_url,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
}

// HasIngredients reports whether any ingredient text was extracted.
func (r ParsedRecipe) HasIngredients() bool {
	return strings.TrimSpace(r.Ingredients) != ""
}

// HasSteps reports whether any step text was extracted.
func (r ParsedRecipe) HasSteps() bool {
	return strings.TrimSpace(r.Steps) != ""
}

// Complete reports whether both ingredients and steps are populated.
func (r ParsedRecipe) Complete() bool {
	return r.HasIngredients() && r.HasSteps()
}

// IngredientLines splits Ingredients into its non-empty lines.
func (r ParsedRecipe) IngredientLines() []string { return splitLines(r.Ingredients) }

// StepLines splits Steps into its non-empty lines.
func (r ParsedRecipe) StepLines() []string { return splitLines(r.Steps) }

// JoinLines trims each line, drops empty ones and joins the rest with "\n".
func JoinLines(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
