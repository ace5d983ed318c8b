package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/plx/internal/formatter"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/desertthunder/plx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// LibraryScan walks a directory tree and indexes every accepted audio file.
func (r *Runner) LibraryScan(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.StringArg("dir")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = wd
	}

	if err := r.open(); err != nil {
		return err
	}

	r.logger.Info("scanning library", "dir", dir, "extensions", r.config.Library.Extensions)

	scanner := tasks.NewScanner(r.tracks, r.config.Library.Extensions, r.logger)
	result, err := scanner.Scan(ctx, dir)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	r.writePlain("Scanned %d files: %d added, %d skipped\n", result.Scanned, result.Added, result.Skipped)
	return nil
}

// LibraryAdd registers a single track by hand.
func (r *Runner) LibraryAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	track := &models.Track{
		Title:    cmd.String("title"),
		Artist:   cmd.String("artist"),
		Path:     cmd.String("path"),
		Duration: int(cmd.Int("duration")),
	}
	if err := r.tracks.Create(track); err != nil {
		return fmt.Errorf("failed to register track: %w", err)
	}

	r.writePlain("Registered %s - %s (%s)\n", track.Title, track.Artist, track.ID)
	return nil
}

// LibrarySearch searches indexed tracks by title or artist substring.
func (r *Runner) LibrarySearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query required", shared.ErrMissingArgument)
	}

	if err := r.open(); err != nil {
		return err
	}

	tracks, err := r.tracks.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		r.writePlain("No tracks matched %q\n", query)
		return nil
	}
	for _, track := range tracks {
		r.writePlain("%s - %s [%s]\n", track.Title, track.Artist, shared.FormatDuration(track.Duration))
	}
	return nil
}

// LibraryList prints every indexed track.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	tracks, err := r.tracks.List()
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(tracks, true)
	case cmd.Bool("csv"):
		data, err := formatter.ExportLibraryToCSV(tracks)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	r.writePlainHeader(fmt.Sprintf("Library (%d tracks)", len(tracks)))
	for _, track := range tracks {
		r.writePlain("%s - %s\n  %s\n", track.Title, track.Artist, track.Path)
	}
	return nil
}
