package parsers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/plx/internal/models"
)

// M3U parses extended M3U playlists: an optional #EXTM3U header, then
// #EXTINF:<duration>,<free text> lines each followed by a path or URI line.
// No other directives are interpreted.
type M3U struct{}

// Parse emits one [models.RawEntry] per #EXTINF/URI pair. A metadata line
// without a comma, or an #EXTINF with no following line, drops that single
// entry and parsing continues with the next line.
func (p *M3U) Parse(ctx context.Context, r io.Reader, emit func(models.RawEntry) error) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()

		if strings.HasPrefix(line, "#EXTM3U") {
			continue
		}
		if !strings.HasPrefix(line, "#EXTINF") {
			continue
		}

		idx := strings.Index(line, ",")
		if idx == -1 {
			// malformed metadata line, skip this entry
			continue
		}
		freeText := line[idx+1:]

		if !scanner.Scan() {
			// #EXTINF at end of input has no URI line
			break
		}
		uri := scanner.Text()

		if err := emit(models.RawEntry{FreeText: freeText, SourceURI: uri}); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading playlist: %w", err)
	}

	return nil
}
