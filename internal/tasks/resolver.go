package tasks

import (
	"strings"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// LibraryIndex is the subset of the media index the resolver queries.
// *repositories.TrackRepository satisfies it.
type LibraryIndex interface {
	FindByPathSuffix(suffix string) ([]models.Track, error)
	FindByNormalizedKey(titleKey, artistKey string) ([]models.Track, error)
}

// Resolver matches parsed playlist entries against the library index.
type Resolver struct {
	index LibraryIndex
}

// NewResolver creates a Resolver backed by the given index.
func NewResolver(index LibraryIndex) *Resolver {
	return &Resolver{index: index}
}

// Resolve tries the URI strategy, then the key strategy, and falls back to an
// unresolved placeholder carrying the parsed title/artist and source URI.
//
// A strategy succeeds only when its query returns exactly one row; zero rows
// and ambiguous results both count as no confident match, as do query
// failures. The resolver never guesses among candidates.
func (r *Resolver) Resolve(key models.ParsedKey, sourceURI string) models.ResolvedTrack {
	if track, ok := r.byURI(sourceURI); ok {
		return resolved(track, sourceURI)
	}

	if track, ok := r.byKey(key); ok {
		return resolved(track, sourceURI)
	}

	return models.ResolvedTrack{
		Title:     key.Title,
		Artist:    key.Artist,
		SourceURI: sourceURI,
	}
}

func (r *Resolver) byURI(sourceURI string) (models.Track, bool) {
	segment := lastSegment(sourceURI)
	if segment == "" {
		return models.Track{}, false
	}

	rows, err := r.index.FindByPathSuffix(segment)
	if err != nil || len(rows) != 1 {
		return models.Track{}, false
	}
	return rows[0], true
}

func (r *Resolver) byKey(key models.ParsedKey) (models.Track, bool) {
	rows, err := r.index.FindByNormalizedKey(shared.NormalizeKey(key.Title), shared.NormalizeKey(key.Artist))
	if err != nil || len(rows) != 1 {
		return models.Track{}, false
	}
	return rows[0], true
}

func resolved(track models.Track, sourceURI string) models.ResolvedTrack {
	return models.ResolvedTrack{
		ID:        track.ID,
		Title:     track.Title,
		Artist:    track.Artist,
		SourceURI: sourceURI,
		IsKnown:   true,
	}
}

// lastSegment extracts the final path segment of a URI or file path.
func lastSegment(uri string) string {
	uri = strings.TrimRight(strings.TrimSpace(uri), "/")
	if i := strings.LastIndexByte(uri, '/'); i != -1 {
		return uri[i+1:]
	}
	return uri
}
