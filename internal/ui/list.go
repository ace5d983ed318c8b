package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

var _ list.Item = matchItem{}

// matchItem wraps [models.Track] to implement [list.Item] for finder results.
type matchItem struct {
	track models.Track
}

func (i matchItem) FilterValue() string { return i.track.Title }
func (i matchItem) Title() string       { return i.track.Title }
func (i matchItem) Description() string {
	desc := i.track.Artist
	if i.track.Duration > 0 {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.track.Duration))
	}
	return desc
}
