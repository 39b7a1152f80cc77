package textparse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section marker tables. Each entry is matched against one trimmed line,
// optionally prefixed by up to three markdown heading symbols.
var ingredientMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^#{0,3}\s*ingr[ée]dients?\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*liste\s+des\s+ingr[ée]dients?\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*il\s+(?:vous\s+)?faut\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*you(?:'ll|\s+will)\s+need\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*(?:pour|for)\s+\d+\s+(?:personnes?|parts?|portions?|people|persons?|servings?)\s*:?$`),
}

var stepMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^#{0,3}\s*pr[ée]paration\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*[ée]tapes?\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*instructions?\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*recette\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*r[ée]alisation\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*proc[ée]dure\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*mode\s+op[ée]ratoire\s*:?$`),
	regexp.MustCompile(`(?i)^#{0,3}\s*(?:method|directions|steps?)\s*:?$`),
}

var titleMarker = regexp.MustCompile(`(?i)^#{0,3}\s*(?:recette|recipe|titre|title)\s*:\s*(\S.*)$`)

// English labels need a colon or "time" so that a step such as
// "Cook 5 minutes" is not read as metadata.
var metadataLine = regexp.MustCompile(`(?i)^(?:` +
	`(?:(?:temps\s+(?:de\s+)?)?(?:pr[ée]paration|cuisson|repos)|` +
	`(?:prep(?:aration)?|cook(?:ing)?|total)\s+time|serves|servings?|portions?|yield)[ \t]*:?|` +
	`(?:pr[ée]p|cook(?:ing)?|total)[ \t]*:` +
	`)[ \t]*\d`)

var (
	ingredientStart = regexp.MustCompile(`(?i)^(?:[\d½¼¾⅓⅔⅛⅜⅝⅞]|(?:une?|quelques?|un\s+peu|an?|some)\s)`)
	actionVerb      = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:faire|mettre|ajouter|m[ée]langer|couper|cuire|verser|battre|make|put|add|mix|cut|cook|pour|beat)(?:$|[^\p{L}])`)
	numberedStep    = regexp.MustCompile(`^\d+[.)]`)
	headingPrefix   = regexp.MustCompile(`^#+\s*`)
)

// shortLine is the length under which a verb-free line counts as an ingredient.
const shortLine = 60

// IsTitleMarker reports whether line carries an explicit "Recipe:" or
// "Title:" marker, and returns the text after it.
func IsTitleMarker(line string) (string, bool) {
	m := titleMarker.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// IsIngredientMarker reports whether line opens the ingredients section.
func IsIngredientMarker(line string) bool {
	return matchesAny(strings.TrimSpace(line), ingredientMarkers)
}

// IsStepMarker reports whether line opens the steps section.
func IsStepMarker(line string) bool {
	return matchesAny(strings.TrimSpace(line), stepMarkers)
}

// IsMetadataLine reports whether line states a time or serving count
// ("Prep: 20 min", "Cuisson : 1h", "Serves 4").
func IsMetadataLine(line string) bool {
	return metadataLine.MatchString(strings.TrimSpace(line))
}

// IsNumberedStep reports whether line starts with "N." or "N)". A decimal
// such as "1.5 kg" is not a step number.
func IsNumberedStep(line string) bool {
	line = strings.TrimSpace(line)
	loc := numberedStep.FindStringIndex(line)
	if loc == nil {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line[loc[1]:])
	return !unicode.IsDigit(r)
}

// StripNumbering removes a leading step number and the space after it.
func StripNumbering(line string) string {
	line = strings.TrimSpace(line)
	if !IsNumberedStep(line) {
		return line
	}
	loc := numberedStep.FindStringIndex(line)
	return strings.TrimSpace(line[loc[1]:])
}

// LooksLikeIngredient applies the unsectioned-line heuristic: a leading
// quantity or article, or a short line without a cooking verb.
func LooksLikeIngredient(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || IsMetadataLine(line) {
		return false
	}
	if ingredientStart.MatchString(line) {
		return true
	}
	return utf8.RuneCountInString(line) < shortLine && !actionVerb.MatchString(line)
}

// StripHeading removes leading markdown heading symbols.
func StripHeading(line string) string {
	return strings.TrimSpace(headingPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
}

var servingsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:pour|for)\s+(\d+)\s+(?:personnes?|parts?|portions?|people|persons?|servings?)`),
	regexp.MustCompile(`(?i)\bserves\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?i)\b(?:servings?|portions?)\s*:\s*(\d+)`),
}

// DetectServings scans the whole text for a serving count. 0 means none.
func DetectServings(text string) int {
	for _, re := range servingsPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}

// Time labels follow the metadata rule. The hour token must not run into
// a word ("2 handfuls").
const (
	prepLabel = `(?:pr[ée]paration[ \t]*:?|pr[ée]p(?:aration)?\s+time[ \t]*:?|pr[ée]p[ \t]*:)`
	cookLabel = `(?:cuisson[ \t]*:?|cook(?:ing)?\s+time[ \t]*:?|cook(?:ing)?[ \t]*:)`
	minutes   = `[ \t]*(\d+)[ \t]*(?:min|mn|minutes?)\b`
	hours     = `[ \t]*(\d+)[ \t]*h(?:ours?|rs?|eures?)?(?:[ \t]*(\d+)(?:[ \t]*(?:min|mn|minutes?))?)?(?:[^\p{L}\d]|$)`
)

var (
	prepMinutes = regexp.MustCompile(`(?i)` + prepLabel + minutes)
	cookMinutes = regexp.MustCompile(`(?i)` + cookLabel + minutes)
	prepHours   = regexp.MustCompile(`(?i)` + prepLabel + hours)
	cookHours   = regexp.MustCompile(`(?i)` + cookLabel + hours)
)

// DetectTimes scans the whole text for preparation and cooking minutes.
// The hour form ("1h30") wins over the minute form for the same field.
func DetectTimes(text string) (prep, cook int) {
	return detectTime(text, prepMinutes, prepHours), detectTime(text, cookMinutes, cookHours)
}

func detectTime(text string, minuteForm, hourForm *regexp.Regexp) int {
	var total int
	if m := minuteForm.FindStringSubmatch(text); m != nil {
		total, _ = strconv.Atoi(m[1])
	}
	if m := hourForm.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		total = h*60 + mins
	}
	return total
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
