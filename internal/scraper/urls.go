package scraper

import (
	"strings"
	"unicode"
)

// urlsEquivalent reports whether two URLs point at the same page for the
// purpose of redirect detection. The scheme and every non-alphanumeric rune
// are ignored, so http://Ex.com/a and https://ex.com/a! are equivalent while
// a different host or path is not.
func urlsEquivalent(url1, url2 string) bool {
	return normalizeURL(url1) == normalizeURL(url2)
}

func normalizeURL(url string) string {
	url = strings.ToLower(url)

	if i := strings.Index(url, "://"); i != -1 {
		url = url[i+len("://"):]
	}

	var b strings.Builder
	for _, r := range url {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}
