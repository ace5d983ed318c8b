package tasks

import (
	"fmt"

	"github.com/desertthunder/plx/internal/models"
)

// Phase identifies the kind of event on a session's stream.
type Phase int

const (
	SessionStarted Phase = iota
	TrackResolved
	SessionCompleted
	SessionFailed
)

func (p Phase) String() string {
	switch p {
	case SessionStarted:
		return "session_started"
	case TrackResolved:
		return "track_resolved"
	case SessionCompleted:
		return "session_completed"
	case SessionFailed:
		return "session_failed"
	default:
		return ""
	}
}

// Update is one event on an import session's stream.
//
// Track is set for TrackResolved, Playlist for SessionStarted, Result for
// SessionCompleted, and Err for SessionFailed. Message is always printable.
type Update struct {
	Phase    Phase
	Track    *models.ResolvedTrack
	Playlist *models.Playlist
	Result   *models.ImportResult
	Message  string
	Err      error
}

func startedUpdate(pl *models.Playlist) Update {
	return Update{
		Phase:    SessionStarted,
		Playlist: pl,
		Message:  fmt.Sprintf("Importing into playlist %q...", pl.Name),
	}
}

func trackUpdate(t *models.ResolvedTrack) Update {
	state := "not found"
	if t.Added {
		state = "added"
	} else if t.IsKnown {
		state = "matched"
	}
	return Update{
		Phase:   TrackResolved,
		Track:   t,
		Message: fmt.Sprintf("%s - %s [%s]", t.Title, t.Artist, state),
	}
}

func completedUpdate(result *models.ImportResult) Update {
	return Update{
		Phase:   SessionCompleted,
		Result:  result,
		Message: fmt.Sprintf("Finished: %d/%d tracks added", result.AddedCount, result.TotalCount),
	}
}

func failedUpdate(err error) Update {
	return Update{
		Phase:   SessionFailed,
		Err:     err,
		Message: err.Error(),
	}
}
