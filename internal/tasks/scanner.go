package tasks

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/parsers"
	"github.com/desertthunder/plx/internal/shared"
)

// TrackWriter is the subset of the track store the scanner writes through.
// *repositories.TrackRepository satisfies it.
type TrackWriter interface {
	Create(track *models.Track) error
	FindByPathSuffix(suffix string) ([]models.Track, error)
}

// ScanResult summarizes one library scan.
type ScanResult struct {
	Scanned int
	Added   int
	Skipped int
}

// Scanner walks directories for audio files and registers them as library
// tracks. Title and artist come from the file name, split the same way
// playlist entries are.
type Scanner struct {
	store      TrackWriter
	extensions map[string]bool
	logger     *log.Logger
}

// NewScanner creates a Scanner accepting the given file extensions
// (".mp3"-style, compared case-insensitively).
func NewScanner(store TrackWriter, extensions []string, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	accepted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		accepted[strings.ToLower(ext)] = true
	}
	return &Scanner{store: store, extensions: accepted, logger: logger}
}

// Scan walks root recursively and registers every accepted audio file not
// already in the library. Unreadable subtrees are logged and skipped.
func (s *Scanner) Scan(ctx context.Context, root string) (*ScanResult, error) {
	result := &ScanResult{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !s.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		result.Scanned++
		if s.known(path) {
			result.Skipped++
			return nil
		}

		track := trackFromPath(path)
		if err := s.store.Create(track); err != nil {
			s.logger.Warn("failed to register track", "path", path, "err", err)
			result.Skipped++
			return nil
		}
		result.Added++
		return nil
	})
	if err != nil {
		return result, err
	}

	s.logger.Info("scan finished", "root", root, "scanned", result.Scanned, "added", result.Added)
	return result, nil
}

// known reports whether a track with exactly this path is already registered.
func (s *Scanner) known(path string) bool {
	rows, err := s.store.FindByPathSuffix(path)
	if err != nil {
		return false
	}
	for _, row := range rows {
		if row.Path == path {
			return true
		}
	}
	return false
}

// trackFromPath derives a library track from a file path. The file name's
// stem is split into title and artist.
func trackFromPath(path string) *models.Track {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	key := parsers.SplitTitleArtist(stem)

	artist := key.Artist
	if artist == "" {
		artist = "Unknown"
	}
	return &models.Track{Title: key.Title, Artist: artist, Path: path}
}
