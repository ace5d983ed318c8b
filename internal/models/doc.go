// Package models defines domain entities for the playlist import pipeline.
//
// The package contains two categories of types:
//
// 1. Library entities: rows persisted by the repositories layer
//   - [Track] : An indexed library track (id, title, artist, file path)
//   - [Playlist] : A stored playlist with its member count
//
// 2. Pipeline values: short-lived records flowing through an import
//   - [RawEntry] : One playlist line pair (free text + source URI) before resolution
//   - [ParsedKey] : The (title, artist) pair recovered from a RawEntry
//   - [ResolvedTrack] : The outcome of matching an entry against the library
//   - [ImportRequest] : A queued request to import one playlist file
//   - [ImportResult] : The summary of a finished import session
//
// Pipeline values are immutable once created: a RawEntry is consumed by the
// resolver and discarded, and a ResolvedTrack is never written back after it
// has been handed to the event stream.
package models
