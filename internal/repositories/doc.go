// Package repositories provides the SQLite persistence layer: the local media
// index and the playlist store.
//
// [TrackRepository] is the queryable catalog of known tracks. Besides CRUD it
// exposes the two lookups the resolver needs, [TrackRepository.FindByPathSuffix]
// and [TrackRepository.FindByNormalizedKey], plus a substring
// [TrackRepository.Search] for the manual-resolution finder. Normalized search
// keys are computed once on insert with shared.NormalizeKey.
//
// [PlaylistRepository] owns playlists and their ordered members.
// [PlaylistRepository.FindOrCreateByName] is idempotent and reports whether it
// created the row, which the import session uses to decide rollback on failure.
package repositories
