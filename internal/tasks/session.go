package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/parsers"
	"github.com/desertthunder/plx/internal/shared"
)

// Source is an opaque handle to one playlist document's byte stream.
type Source interface {
	// Name returns the document's file name, used for format detection and
	// for deriving the default playlist name.
	Name() string

	// Open resolves the underlying byte stream. It may fail (not found,
	// permission); the session closes whatever it returns.
	Open() (io.ReadCloser, error)
}

// FileSource is a Source backed by a file on disk.
type FileSource string

func (f FileSource) Name() string {
	return filepath.Base(string(f))
}

func (f FileSource) Open() (io.ReadCloser, error) {
	r, err := os.Open(string(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}
	return r, nil
}

// PlaylistStore is the subset of the playlist store a session writes through.
// *repositories.PlaylistRepository satisfies it.
type PlaylistStore interface {
	FindOrCreateByName(name string) (*models.Playlist, bool, error)
	AppendMember(playlistID, trackID string) error
	Delete(id string) error
}

// Session processes exactly one submitted playlist file, start to completion
// or failure. Create one per run; a Session is not reused.
type Session struct {
	resolver *Resolver
	store    PlaylistStore
	logger   *log.Logger

	// namePrefix prefixes the dated fallback playlist name.
	namePrefix string
}

// NewSession creates a Session with the given collaborators. A nil logger
// falls back to a default stderr logger.
func NewSession(resolver *Resolver, store PlaylistStore, logger *log.Logger, namePrefix string) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if namePrefix == "" {
		namePrefix = "Playlist_"
	}
	return &Session{resolver: resolver, store: store, logger: logger, namePrefix: namePrefix}
}

// Run imports one playlist document, emitting events on the events channel in
// parse order. The terminal event is SessionCompleted or SessionFailed; Run
// never emits both. Run returns the result so far together with the session
// error, if any.
//
// The source's byte stream is released on every exit path. A playlist this
// session created is deleted again when the session fails, whether or not
// tracks were already appended; a reused pre-existing playlist is never
// deleted.
func (s *Session) Run(ctx context.Context, source Source, playlistName string, events chan<- Update) (*models.ImportResult, error) {
	format, err := parsers.Detect(source.Name())
	if err != nil {
		return nil, s.fail(ctx, events, err)
	}

	parser, err := parsers.For(format)
	if err != nil {
		return nil, s.fail(ctx, events, err)
	}

	if playlistName == "" {
		playlistName = s.defaultName(source.Name())
	}

	playlist, created, err := s.store.FindOrCreateByName(playlistName)
	if err != nil {
		return nil, s.fail(ctx, events, fmt.Errorf("%w: %v", shared.ErrPersistence, err))
	}

	logger := shared.WithLogger(s.logger, "playlist", playlist.Name, "source", source.Name())

	stream, err := source.Open()
	if err != nil {
		s.rollback(logger, playlist, created)
		return nil, s.fail(ctx, events, err)
	}
	defer stream.Close()

	if err := s.send(ctx, events, startedUpdate(playlist)); err != nil {
		s.rollback(logger, playlist, created)
		return nil, err
	}

	logger.Info("import started", "format", format.String())

	result := &models.ImportResult{Playlist: *playlist}

	parseErr := parser.Parse(ctx, stream, func(raw models.RawEntry) error {
		key := parsers.SplitTitleArtist(raw.FreeText)
		track := s.resolver.Resolve(key, raw.SourceURI)

		if track.IsKnown {
			if err := s.store.AppendMember(playlist.ID, track.ID); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
			}
			track.Added = true
		}

		result.TotalCount++
		if track.IsKnown {
			result.MatchedCount++
		}
		if track.Added {
			result.AddedCount++
		}
		result.Tracks = append(result.Tracks, track)

		return s.send(ctx, events, trackUpdate(&track))
	})

	if parseErr != nil {
		s.rollback(logger, playlist, created)
		logger.Error("import failed", "err", parseErr)
		return result, s.fail(ctx, events, parseErr)
	}

	result.Playlist.TrackCount += result.AddedCount

	logger.Info("import finished", "total", result.TotalCount, "added", result.AddedCount)
	if err := s.send(ctx, events, completedUpdate(result)); err != nil {
		return result, err
	}

	return result, nil
}

// send delivers an update, blocking until it is received or the context ends.
// Track events carry required state, so they are never dropped. A nil events
// channel disables streaming (results still accumulate).
func (s *Session) send(ctx context.Context, events chan<- Update, u Update) error {
	if events == nil {
		return nil
	}
	select {
	case events <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fail emits the terminal SessionFailed event and returns err for the caller.
func (s *Session) fail(ctx context.Context, events chan<- Update, err error) error {
	// best effort: the consumer may already be gone
	if events != nil {
		select {
		case events <- failedUpdate(err):
		case <-ctx.Done():
		}
	}
	return err
}

// rollback deletes a playlist this session created, so a failed import leaves
// no empty or partially-filled playlist behind. A reused pre-existing playlist
// is never deleted.
func (s *Session) rollback(logger *log.Logger, playlist *models.Playlist, created bool) {
	if !created {
		return
	}
	if err := s.store.Delete(playlist.ID); err != nil {
		logger.Warn("failed to roll back playlist", "err", err)
	}
}

// defaultName derives the playlist name from the source file name, falling
// back to a dated name when the file name has no stem.
func (s *Session) defaultName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if stem != "" && stem != "." {
		return stem
	}
	return s.namePrefix + time.Now().Format("2006-01-02")
}
