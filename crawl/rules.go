// Package crawl: URL filtering rules.
// Provides helpers to filter, normalize, and validate candidate links.
package crawl

import (
	"net/url"
	"path"
	"strings"
)

// staticExtensions are file extensions that never hold a recipe page.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// deniedDomains are social, video, shop and shortener hosts whose pages
// are not recipe pages. Subdomains are denied too.
var deniedDomains = []string{
	"youtube.com", "youtu.be", "bit.ly", "goo.gl",
	"facebook.com", "instagram.com", "twitter.com", "x.com", "tiktok.com",
	"pinterest.com", "amazon.com", "amzn.to",
}

// IsWebURL reports whether rawURL is an absolute http or https URL.
func IsWebURL(rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// IsDenied reports whether the URL's host is, or is under, a denied domain.
func IsDenied(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	host := strings.ToLower(parsed.Hostname())
	for _, d := range deniedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return staticExtensions[ext]
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""
	parsed.Host = strings.ToLower(parsed.Host)

	// Remove trailing slash (but keep root "/").
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}
