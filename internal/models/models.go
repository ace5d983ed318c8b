// package models defines the data model for the playlist importer
package models

import "time"

// Track represents a single indexed track in the local media library
type Track struct {
	ID       string
	Title    string
	Artist   string
	Path     string // Absolute path of the audio file on disk
	Duration int    // Duration in seconds, 0 when unknown
}

// Playlist represents a stored playlist
type Playlist struct {
	ID         string
	Name       string
	TrackCount int
	CreatedAt  time.Time
}

// RawEntry is one playlist line pair as produced by a parser, before any
// resolution has happened. FreeText is the loosely structured "title/artist"
// text from the metadata line; SourceURI is the path or URI line that follows.
type RawEntry struct {
	FreeText  string
	SourceURI string
}

// ParsedKey is the (title, artist) pair recovered from a RawEntry's free text.
// Both fields are trimmed and never absent, though either may be empty when
// extraction fails.
type ParsedKey struct {
	Title  string
	Artist string
}

// ResolvedTrack is the outcome of matching one playlist entry against the
// library. IsKnown reports whether ID refers to a library row; when false the
// record carries the parsed title/artist and source URI for display and later
// manual resolution. Added reports whether the track was appended to the
// target playlist.
type ResolvedTrack struct {
	ID        string
	Title     string
	Artist    string
	SourceURI string
	IsKnown   bool
	Added     bool
}

// ImportRequest is a queued request to import one playlist file.
type ImportRequest struct {
	Path         string // Path of the playlist file to import
	PlaylistName string // Target playlist name; derived from Path when empty
}

// ImportResult summarizes a finished import session.
type ImportResult struct {
	Playlist     Playlist
	Tracks       []ResolvedTrack // Every emitted track, matched or not, in parse order
	MatchedCount int
	AddedCount   int
	TotalCount   int
}
