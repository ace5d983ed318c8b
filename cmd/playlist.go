package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/urfave/cli/v3"
)

// byName resolves a playlist name to its stored row, translating the
// storage-level miss into the CLI-facing sentinel.
func (r *Runner) byName(name string) (*models.Playlist, error) {
	playlist, err := r.playlists.GetByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
	}
	return playlist, err
}

// PlaylistList prints stored playlists in creation order.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	playlists, err := r.playlists.List()
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	if len(playlists) == 0 {
		r.writePlain("No playlists yet\n")
		return nil
	}
	for _, playlist := range playlists {
		r.writePlain("%s (%d tracks)\n", playlist.Name, playlist.TrackCount)
	}
	return nil
}

// PlaylistShow prints one playlist with its members in position order.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name required", shared.ErrMissingArgument)
	}

	if err := r.open(); err != nil {
		return err
	}

	playlist, err := r.byName(name)
	if err != nil {
		return err
	}

	tracks, err := r.playlists.Members(playlist.ID)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			Playlist any
			Tracks   any
		}{playlist, tracks}, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d tracks)", playlist.Name, len(tracks)))
	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Title, track.Artist)
	}
	return nil
}

// PlaylistDelete removes a playlist and its memberships.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name required", shared.ErrMissingArgument)
	}

	if err := r.open(); err != nil {
		return err
	}

	playlist, err := r.byName(name)
	if err != nil {
		return err
	}

	if err := r.playlists.Delete(playlist.ID); err != nil {
		return err
	}

	r.writePlain("Deleted %s\n", playlist.Name)
	return nil
}
