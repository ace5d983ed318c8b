package ui

import (
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/tasks"
)

// importEventMsg carries one event from the active session's stream.
type importEventMsg tasks.Update

// streamClosedMsg signals the active session's stream ended; the next queued
// stream (if any) takes over.
type streamClosedMsg struct{}

// searchResultsMsg carries the finder's library search results.
type searchResultsMsg struct {
	query  string
	tracks []models.Track
	err    error
}

// trackAppendedMsg reports a manual finder selection written to the playlist.
type trackAppendedMsg struct {
	track models.Track
	err   error
}
