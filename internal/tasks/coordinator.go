package tasks

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// pending is one queued import request: everything run needs to start it.
type pending struct {
	ctx    context.Context
	source Source
	name   string
	events chan Update
}

// Coordinator serializes import sessions. At most one session runs at a time;
// requests submitted while one is active wait in a first-in first-out backlog
// and start automatically, in submission order, as each session finishes.
type Coordinator struct {
	session *Session
	logger  *log.Logger

	mu      sync.Mutex
	active  bool
	backlog []pending
}

// NewCoordinator creates a Coordinator running sessions through session.
func NewCoordinator(session *Session, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Coordinator{session: session, logger: logger}
}

// Submit enqueues one import and returns the channel its events arrive on.
// The channel is unbuffered and closed when the session ends, so ranging over
// it observes the full ordered event stream of exactly that import. Submit
// never blocks on a running session.
func (c *Coordinator) Submit(ctx context.Context, source Source, playlistName string) <-chan Update {
	events := make(chan Update)
	p := pending{ctx: ctx, source: source, name: playlistName, events: events}

	c.mu.Lock()
	if c.active {
		c.backlog = append(c.backlog, p)
		c.mu.Unlock()
		c.logger.Debug("import queued", "source", source.Name())
		return events
	}
	c.active = true
	c.mu.Unlock()

	go c.run(p)
	return events
}

// SubmitFile enqueues the import of a playlist file described by req.
func (c *Coordinator) SubmitFile(ctx context.Context, req models.ImportRequest) <-chan Update {
	return c.Submit(ctx, FileSource(req.Path), req.PlaylistName)
}

// run executes one session, then advances the backlog.
func (c *Coordinator) run(p pending) {
	if _, err := c.session.Run(p.ctx, p.source, p.name, p.events); err != nil {
		c.logger.Debug("import session ended with error", "source", p.source.Name(), "err", err)
	}
	close(p.events)
	c.advance()
}

// advance pops the oldest queued request, if any, and starts it.
func (c *Coordinator) advance() {
	c.mu.Lock()
	if len(c.backlog) == 0 {
		c.active = false
		c.mu.Unlock()
		return
	}
	next := c.backlog[0]
	c.backlog = c.backlog[1:]
	c.mu.Unlock()

	go c.run(next)
}

// Pending reports how many requests are waiting behind the active session.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.backlog)
}
