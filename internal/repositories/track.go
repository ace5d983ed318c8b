package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// TrackRepository is the local media index: the queryable catalog of known
// tracks keyed by id, normalized title/artist keys, and file path.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a new track into the index with a generated ID and sequence.
// The normalized title and artist keys are computed here so that key lookups
// stay an exact column match.
func (r *TrackRepository) Create(track *models.Track) error {
	if track.Title == "" && track.Artist == "" {
		return fmt.Errorf("%w: track needs a title or artist", shared.ErrInvalidInput)
	}
	if track.Path == "" {
		return fmt.Errorf("%w: track needs a path", shared.ErrInvalidInput)
	}

	sequence, err := NextSequence(r.db, "tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	track.ID = shared.GenerateID()

	query := `
		INSERT INTO tracks (id, sequence, title, artist, path, duration, title_key, artist_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		track.ID,
		sequence,
		track.Title,
		track.Artist,
		track.Path,
		track.Duration,
		shared.NormalizeKey(track.Title),
		shared.NormalizeKey(track.Artist),
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// Get retrieves a track by ID
func (r *TrackRepository) Get(id string) (*models.Track, error) {
	query := `
		SELECT id, title, artist, path, duration
		FROM tracks
		WHERE id = ?
	`

	track, err := scanTrack(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
	}
	return track, err
}

// escapeLike escapes LIKE wildcards in s so it matches literally under
// ESCAPE '\'. File names legitimately contain % and _.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

// FindByPathSuffix returns every track whose stored path ends with suffix.
// Used by the resolver's URI strategy; the caller decides what to do with
// zero or multiple rows.
func (r *TrackRepository) FindByPathSuffix(suffix string) ([]models.Track, error) {
	if suffix == "" {
		return nil, nil
	}

	query := `
		SELECT id, title, artist, path, duration
		FROM tracks
		WHERE path LIKE ? ESCAPE '\'
		ORDER BY sequence ASC
	`

	return r.queryTracks(query, "%"+escapeLike(suffix))
}

// FindByNormalizedKey returns every track whose normalized title and artist
// keys both match exactly.
func (r *TrackRepository) FindByNormalizedKey(titleKey, artistKey string) ([]models.Track, error) {
	query := `
		SELECT id, title, artist, path, duration
		FROM tracks
		WHERE title_key = ? AND artist_key = ?
		ORDER BY sequence ASC
	`

	return r.queryTracks(query, titleKey, artistKey)
}

// Search returns tracks whose normalized title or artist contains the
// normalized query. Backs the manual-resolution finder.
func (r *TrackRepository) Search(q string) ([]models.Track, error) {
	key := shared.NormalizeKey(q)
	if key == "" {
		return nil, nil
	}

	query := `
		SELECT id, title, artist, path, duration
		FROM tracks
		WHERE title_key LIKE ? OR artist_key LIKE ?
		ORDER BY sequence ASC
	`

	pattern := "%" + key + "%"
	return r.queryTracks(query, pattern, pattern)
}

// List retrieves all indexed tracks in insertion order
func (r *TrackRepository) List() ([]models.Track, error) {
	query := `
		SELECT id, title, artist, path, duration
		FROM tracks
		ORDER BY sequence ASC
	`

	return r.queryTracks(query)
}

// Count returns the number of indexed tracks
func (r *TrackRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}

func (r *TrackRepository) queryTracks(query string, args ...any) ([]models.Track, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		var t models.Track
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Path, &t.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

func scanTrack(row *sql.Row) (*models.Track, error) {
	var t models.Track
	err := row.Scan(&t.ID, &t.Title, &t.Artist, &t.Path, &t.Duration)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
