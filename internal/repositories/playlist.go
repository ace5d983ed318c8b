package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// PlaylistRepository is the playlist store: playlists and their ordered
// members. All writes from an import session go through here.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// FindOrCreateByName returns the playlist with the given name, creating it if
// none exists. The second return value reports whether this call created the
// row; a session only rolls back a playlist it created itself.
func (r *PlaylistRepository) FindOrCreateByName(name string) (*models.Playlist, bool, error) {
	if name == "" {
		return nil, false, fmt.Errorf("%w: playlist name must not be empty", shared.ErrInvalidInput)
	}

	existing, err := r.GetByName(name)
	if err == nil {
		return existing, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("failed to look up playlist %q: %w", name, err)
	}

	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate sequence: %w", err)
	}

	playlist := &models.Playlist{
		ID:        shared.GenerateID(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO playlists (id, sequence, name, created_at)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, playlist.ID, sequence, playlist.Name, playlist.CreatedAt); err != nil {
		return nil, false, fmt.Errorf("failed to insert playlist: %w", err)
	}

	return playlist, true, nil
}

// Get retrieves a playlist by ID along with its member count
func (r *PlaylistRepository) Get(id string) (*models.Playlist, error) {
	query := `
		SELECT p.id, p.name, p.created_at,
		       (SELECT COUNT(*) FROM playlist_members m WHERE m.playlist_id = p.id)
		FROM playlists p
		WHERE p.id = ?
	`

	playlist, err := scanPlaylist(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	return playlist, err
}

// GetByName retrieves a playlist by its unique name. Returns sql.ErrNoRows
// unwrapped so FindOrCreateByName can branch on it.
func (r *PlaylistRepository) GetByName(name string) (*models.Playlist, error) {
	query := `
		SELECT p.id, p.name, p.created_at,
		       (SELECT COUNT(*) FROM playlist_members m WHERE m.playlist_id = p.id)
		FROM playlists p
		WHERE p.name = ?
	`

	return scanPlaylist(r.db.QueryRow(query, name))
}

// AppendMember appends a track to the end of a playlist. Duplicate tracks are
// allowed; each append gets the next position so playback order equals append
// order.
func (r *PlaylistRepository) AppendMember(playlistID, trackID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(position) + 1, 0) FROM playlist_members WHERE playlist_id = ?",
		playlistID,
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to compute member position: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO playlist_members (id, playlist_id, track_id, position) VALUES (?, ?, ?, ?)",
		shared.GenerateID(), playlistID, trackID, position,
	)
	if err != nil {
		return fmt.Errorf("failed to append member: %w", err)
	}

	return tx.Commit()
}

// Members returns the playlist's tracks in append order
func (r *PlaylistRepository) Members(playlistID string) ([]models.Track, error) {
	query := `
		SELECT t.id, t.title, t.artist, t.path, t.duration
		FROM playlist_members m
		JOIN tracks t ON t.id = m.track_id
		WHERE m.playlist_id = ?
		ORDER BY m.position ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		var t models.Track
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Path, &t.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// Delete removes a playlist and its members. Used both by the CLI and by a
// failed session rolling back a playlist it created.
func (r *PlaylistRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM playlist_members WHERE playlist_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}

	result, err := tx.Exec("DELETE FROM playlists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	return tx.Commit()
}

// List retrieves all playlists in creation order with member counts
func (r *PlaylistRepository) List() ([]models.Playlist, error) {
	query := `
		SELECT p.id, p.name, p.created_at,
		       (SELECT COUNT(*) FROM playlist_members m WHERE m.playlist_id = p.id)
		FROM playlists p
		ORDER BY p.sequence ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.TrackCount); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

func scanPlaylist(row *sql.Row) (*models.Playlist, error) {
	var p models.Playlist
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.TrackCount)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
