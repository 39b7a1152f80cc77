// Package crawl discovers outbound recipe links in free text such as a
// video description, keeping link selection separate from the import
// pipeline that fetches them.
package crawl

import (
	"regexp"
	"strings"
)

// DefaultMaxCandidates bounds how many linked pages one import may try.
const DefaultMaxCandidates = 5

var linkRegex = regexp.MustCompile(`https?://[^\s"'<>()\[\]]+`)

// ExtractLinks returns every http(s) URL found in text, in order of
// appearance, with trailing sentence punctuation removed.
func ExtractLinks(text string) []string {
	matches := linkRegex.FindAllString(text, -1)
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, ".,;:!?")
		if m != "" {
			links = append(links, m)
		}
	}
	return links
}

// DiscoverCandidates queues at most limit distinct links from text that
// could point at a recipe page: denied hosts and static assets are
// skipped. A limit <= 0 selects DefaultMaxCandidates.
func DiscoverCandidates(text string, limit int) *Queue {
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}
	queue := NewQueue(limit)
	for _, link := range ExtractLinks(text) {
		if !IsWebURL(link) || IsDenied(link) || IsStaticAsset(link) {
			continue
		}
		queue.Add(NormalizeURL(link))
	}
	return queue
}
