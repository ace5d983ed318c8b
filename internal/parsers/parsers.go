package parsers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// Format identifies a supported playlist document format.
type Format int

const (
	FormatM3U Format = iota
	FormatITunesXML
)

func (f Format) String() string {
	switch f {
	case FormatM3U:
		return "m3u"
	case FormatITunesXML:
		return "itunes_xml"
	default:
		return ""
	}
}

// Parser streams raw entries out of a playlist document.
type Parser interface {
	// Parse reads r in a single pass and calls emit once per well-formed
	// entry, in file order. An error returned by emit aborts the parse and is
	// returned unchanged.
	Parse(ctx context.Context, r io.Reader, emit func(models.RawEntry) error) error
}

// Detect chooses a Format from a file name's suffix. The match is
// case-sensitive; a name with any other suffix is a hard error.
func Detect(filename string) (Format, error) {
	switch {
	case strings.HasSuffix(filename, ".m3u"):
		return FormatM3U, nil
	case strings.HasSuffix(filename, ".xml"):
		return FormatITunesXML, nil
	default:
		return 0, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, filename)
	}
}

// For returns the parser implementation for a detected format. The iTunes XML
// variant is recognized but has no parser yet.
func For(format Format) (Parser, error) {
	switch format {
	case FormatM3U:
		return &M3U{}, nil
	case FormatITunesXML:
		return nil, fmt.Errorf("%w: itunes xml parser %v", shared.ErrUnsupportedFormat, shared.ErrNotImplemented)
	default:
		return nil, fmt.Errorf("%w: unknown format %d", shared.ErrUnsupportedFormat, format)
	}
}
