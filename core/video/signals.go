package video

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ConsentCookie pre-accepts the regional consent wall so the watch page is
// served directly.
const ConsentCookie = "SOCS=CAISNQgDEitib3FfaWRlbnRpdHlmcm9udGVuZHVpc2VydmVyXzIwMjMwODE1LjA3X3AxGgJmciACGgYIgJneBhAC"

var videoHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

var idRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsVideoURL reports whether rawURL points at the supported video host.
func IsVideoURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return videoHosts[strings.ToLower(u.Hostname())]
}

// VideoID resolves the video identifier from a watch link, a short link,
// or a /shorts/, /embed/ or /live/ path.
func VideoID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !videoHosts[strings.ToLower(u.Hostname())] {
		return "", false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch {
	case strings.EqualFold(u.Hostname(), "youtu.be"):
		id = segments[0]
	case segments[0] == "watch":
		id = u.Query().Get("v")
	case len(segments) >= 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live"):
		id = segments[1]
	}
	if !idRegex.MatchString(id) {
		return "", false
	}
	return id, true
}

// IsVideoPage reports whether page looks like a real watch page rather
// than a consent wall or error page.
func IsVideoPage(page string) bool {
	return strings.Contains(page, "ytInitialPlayerResponse") || strings.Contains(page, `"shortDescription"`)
}

// CaptionTrack is one caption URL tagged with its language.
type CaptionTrack struct {
	Language string `json:"languageCode"`
	URL      string `json:"baseUrl"`
}

// Signals are the fields read from a watch page's initialization data.
type Signals struct {
	Title       string
	Description string
	Thumbnail   string
	Captions    []CaptionTrack
}

type thumbnail struct {
	URL   string `json:"url"`
	Width int    `json:"width"`
}

type videoDetails struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Thumbnail        struct {
		Thumbnails []thumbnail `json:"thumbnails"`
	} `json:"thumbnail"`
}

// ExtractSignals reads title, description, thumbnail and caption tracks
// from the JSON embedded in a watch page. Escapes are resolved by the JSON
// decoder. Missing pieces are left empty.
func ExtractSignals(page string) Signals {
	var sig Signals

	var details videoDetails
	if decodeAfter(page, `"videoDetails":`, &details) {
		sig.Title = details.Title
		sig.Description = details.ShortDescription
		sig.Thumbnail = bestThumbnail(details.Thumbnail.Thumbnails)
	}
	if sig.Title == "" {
		sig.Title = metaTitle(page)
	}
	if sig.Description == "" {
		decodeAfter(page, `"shortDescription":`, &sig.Description)
	}
	if sig.Thumbnail == "" {
		var thumbs []thumbnail
		if decodeAfter(page, `"thumbnail":{"thumbnails":`, &thumbs) {
			sig.Thumbnail = bestThumbnail(thumbs)
		}
	}

	var tracks []CaptionTrack
	if decodeAfter(page, `"captionTracks":`, &tracks) {
		for _, t := range tracks {
			if t.URL != "" {
				sig.Captions = append(sig.Captions, t)
			}
		}
	}

	sig.Title = strings.TrimSpace(sig.Title)
	sig.Description = strings.TrimSpace(sig.Description)
	return sig
}

// metaTitle reads the title from the page's <meta name="title"> tag, then
// og:title. Stray "title" keys in the page scripts are never used.
func metaTitle(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	for _, sel := range []string{`meta[name="title"]`, `meta[property="og:title"]`} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// decodeAfter decodes the JSON value that follows the first occurrence of
// key in page. Trailing page content is ignored.
func decodeAfter(page, key string, v any) bool {
	idx := strings.Index(page, key)
	if idx < 0 {
		return false
	}
	dec := json.NewDecoder(strings.NewReader(page[idx+len(key):]))
	return dec.Decode(v) == nil
}

// bestThumbnail picks the widest thumbnail served from the image CDN.
func bestThumbnail(thumbs []thumbnail) string {
	var best thumbnail
	for _, t := range thumbs {
		if !strings.HasPrefix(t.URL, "https://i.ytimg.com/") {
			continue
		}
		if best.URL == "" || t.Width > best.Width {
			best = t
		}
	}
	return best.URL
}

// PreferredTrack picks French captions, then English, then the first track.
func PreferredTrack(tracks []CaptionTrack) (CaptionTrack, bool) {
	if len(tracks) == 0 {
		return CaptionTrack{}, false
	}
	for _, lang := range []string{"fr", "en"} {
		for _, t := range tracks {
			if t.Language == lang || strings.HasPrefix(t.Language, lang+"-") {
				return t, true
			}
		}
	}
	return tracks[0], true
}
