package shared

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	punctRegex      = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// NormalizeKey folds text into the library's canonical search-key form:
// NFKD decomposition with combining marks stripped, punctuation replaced by
// spaces, whitespace collapsed, and the result lowercased. Two strings that
// differ only in case, diacritics, or punctuation produce the same key.
func NormalizeKey(text string) string {
	text = norm.NFKD.String(text)

	var b strings.Builder
	for _, r := range text {
		if !unicode.IsMark(r) {
			b.WriteRune(r)
		}
	}
	text = b.String()

	text = punctRegex.ReplaceAllString(text, " ")
	text = whitespaceRegex.ReplaceAllString(text, " ")

	return strings.ToLower(strings.TrimSpace(text))
}

// TrackKey combines a title and artist into a single normalized comparison key.
func TrackKey(title, artist string) string {
	return NormalizeKey(title) + "|" + NormalizeKey(artist)
}
