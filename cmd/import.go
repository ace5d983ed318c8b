package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/plx/internal/formatter"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/desertthunder/plx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ImportRun imports one or more playlist files, strictly in argument order.
// A file submitted while another is importing waits its turn; results stream
// as each session progresses.
func (r *Runner) ImportRun(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("%w: at least one playlist file required", shared.ErrMissingArgument)
	}

	name := cmd.String("name")
	if name != "" && len(files) > 1 {
		return fmt.Errorf("%w: --name only applies to a single file", shared.ErrInvalidArgument)
	}

	if err := r.open(); err != nil {
		return err
	}

	streams := make([]<-chan tasks.Update, len(files))
	for i, file := range files {
		streams[i] = r.coordinator.SubmitFile(ctx, models.ImportRequest{Path: file, PlaylistName: name})
	}

	var results []*models.ImportResult
	var failed int
	for i, stream := range streams {
		r.writePlain("Importing %s...\n", files[i])
		for update := range stream {
			switch update.Phase {
			case tasks.SessionStarted:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.TrackResolved:
				r.writePlain("   %s\n", update.Message)
			case tasks.SessionCompleted:
				results = append(results, update.Result)
				r.writePlain("✅ %s\n\n", update.Message)
			case tasks.SessionFailed:
				failed++
				r.writePlain("❌ %s\n\n", update.Message)
			}
		}
	}

	var total, matched, added int
	for _, result := range results {
		total += result.TotalCount
		matched += result.MatchedCount
		added += result.AddedCount
	}

	r.writePlainHeader("Import Complete")
	r.writePlain("Files: %d imported, %d failed\n", len(results), failed)
	r.writePlain("Tracks: %d/%d matched, %d added\n", matched, total, added)

	if base := cmd.String("report"); base != "" {
		for i, result := range results {
			path := base
			if len(results) > 1 {
				path = fmt.Sprintf("%s_%d", base, i+1)
			}
			out, err := formatter.WriteCSVExport(result, path)
			if err != nil {
				return err
			}
			r.writePlain("Report written to %s\n", out.TracksFile)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(files))
	}
	return nil
}
