package parsers

import (
	"strings"

	"github.com/desertthunder/plx/internal/models"
)

// SplitTitleArtist recovers a (title, artist) pair from a free-text metadata
// line by counting '-' delimiters:
//
//   - exactly one: split at it, title before, artist after
//   - exactly two: split at the last one, so a dash inside the title survives
//   - otherwise: split on every dash and join the first half of the parts
//     (inclusive of the middle) into the title, the rest into the artist
//
// It is a best-effort heuristic with no failure mode: both fields come back
// trimmed and may be empty. When the pair is wrong the URI match usually
// rescues the entry.
func SplitTitleArtist(text string) models.ParsedKey {
	text = strings.TrimSpace(text)

	switch strings.Count(text, "-") {
	case 1:
		parts := strings.SplitN(text, "-", 2)
		return models.ParsedKey{
			Title:  strings.TrimSpace(parts[0]),
			Artist: strings.TrimSpace(parts[1]),
		}
	case 2:
		pos := strings.LastIndex(text, "-")
		return models.ParsedKey{
			Title:  strings.TrimSpace(text[:pos]),
			Artist: strings.TrimSpace(text[pos+1:]),
		}
	default:
		parts := strings.Split(text, "-")
		var title, artist strings.Builder
		for i, part := range parts {
			if i <= len(parts)/2 {
				title.WriteString(part)
			} else {
				artist.WriteString(part)
			}
		}
		return models.ParsedKey{
			Title:  strings.TrimSpace(title.String()),
			Artist: strings.TrimSpace(artist.String()),
		}
	}
}
