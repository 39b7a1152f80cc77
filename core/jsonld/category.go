package jsonld

import (
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
)

type synonym struct {
	key      string
	category core.Category
}

// categorySynonyms maps French and English category labels to categories.
// Order matters for the substring pass: the first hit wins.
var categorySynonyms = []synonym{
	{"apéritif", core.CategoryAperitif},
	{"apéro", core.CategoryAperitif},
	{"aperitif", core.CategoryAperitif},
	{"apero", core.CategoryAperitif},
	{"amuse-bouche", core.CategoryAperitif},
	{"entrée", core.CategoryStarter},
	{"entree", core.CategoryStarter},
	{"plat principal", core.CategoryMain},
	{"plat", core.CategoryMain},
	{"accompagnement", core.CategorySide},
	{"sauce", core.CategorySauce},
	{"dessert", core.CategoryDessert},
	{"boisson", core.CategoryDrink},
	{"cocktail", core.CategoryDrink},
	{"petit-déjeuner", core.CategoryBreakfast},
	{"petit déjeuner", core.CategoryBreakfast},
	{"brunch", core.CategoryBreakfast},
	{"goûter", core.CategorySnack},
	{"gouter", core.CategorySnack},
	{"viennoiserie", core.CategoryBreadPastry},
	{"pain", core.CategoryBreadPastry},
	{"conserve", core.CategoryPreserve},
	{"confiture", core.CategoryPreserve},
	{"appetizer", core.CategoryAperitif},
	{"starter", core.CategoryStarter},
	{"main course", core.CategoryMain},
	{"main dish", core.CategoryMain},
	{"side dish", core.CategorySide},
	{"side", core.CategorySide},
	{"breakfast", core.CategoryBreakfast},
	{"snack", core.CategorySnack},
	{"drink", core.CategoryDrink},
	{"beverage", core.CategoryDrink},
	{"bread", core.CategoryBreadPastry},
	{"pastry", core.CategoryBreadPastry},
	{"preserve", core.CategoryPreserve},
	{"jam", core.CategoryPreserve},
}

// MapCategory matches raw category labels against the synonym table:
// an exact case-insensitive pass per label, then a substring pass.
// Unknown or empty labels yield CategoryMain.
func MapCategory(raw ...string) core.Category {
	for _, label := range raw {
		norm := strings.ToLower(strings.TrimSpace(label))
		if norm == "" {
			continue
		}
		for _, s := range categorySynonyms {
			if norm == s.key {
				return s.category
			}
		}
		for _, s := range categorySynonyms {
			if strings.Contains(norm, s.key) || (len(norm) >= 4 && strings.Contains(s.key, norm)) {
				return s.category
			}
		}
	}
	return core.CategoryMain
}
