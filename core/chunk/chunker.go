// Package chunk bounds text sent to the AI service.
// Budgets are counted in runes so accented text is never cut mid-character.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// Chunker truncates text to a fixed rune budget.
type Chunker struct {
	Budget int // maximum number of runes per chunk
}

// New creates a Chunker with the given budget.
// Defaults to 8000 if budget <= 0.
func New(budget int) *Chunker {
	if budget <= 0 {
		budget = 8000
	}
	return &Chunker{Budget: budget}
}

// Truncate returns the first chunk of text: at most Budget runes, cut at the
// last whitespace when one exists in the second half of the window.
func (c *Chunker) Truncate(text string) string {
	if utf8.RuneCountInString(text) <= c.Budget {
		return text
	}
	runes := []rune(text)
	cut := runes[:c.Budget]
	for i := len(cut) - 1; i > c.Budget/2; i-- {
		if cut[i] == ' ' || cut[i] == '\n' || cut[i] == '\t' {
			return strings.TrimSpace(string(cut[:i]))
		}
	}
	return string(cut)
}
