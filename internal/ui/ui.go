package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/tasks"
)

// minQueryLength gates finder searches so single keystrokes don't sweep the
// whole library.
const minQueryLength = 3

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ImportView ViewState = iota
	ResultView
	FinderView
)

// TrackSearcher is the subset of the track store the finder queries.
type TrackSearcher interface {
	Search(q string) ([]models.Track, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	coordinator *tasks.Coordinator
	searcher    TrackSearcher
	store       tasks.PlaylistStore

	width  int
	height int

	sources []tasks.Source
	names   []string
	streams []<-chan tasks.Update
	current int

	playlist  *models.Playlist
	unmatched []models.ResolvedTrack
	added     []models.ResolvedTrack
	results   []*models.ImportResult
	cursor    int
	err       error

	search     textinput.Model
	matches    list.Model
	hasMatches bool

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model importing the given sources in order.
func NewModel(ctx context.Context, coordinator *tasks.Coordinator, searcher TrackSearcher, store tasks.PlaylistStore, sources []tasks.Source, names []string) *Model {
	search := textinput.New()
	search.Placeholder = "Search the library..."
	search.Focus()

	return &Model{
		ctx:         ctx,
		view:        ImportView,
		coordinator: coordinator,
		searcher:    searcher,
		store:       store,
		sources:     sources,
		names:       names,
		search:      search,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init submits every source to the coordinator and starts consuming the first
// stream.
func (m *Model) Init() tea.Cmd {
	for i, source := range m.sources {
		name := ""
		if i < len(m.names) {
			name = m.names[i]
		}
		m.streams = append(m.streams, m.coordinator.Submit(m.ctx, source, name))
	}
	if len(m.streams) == 0 {
		m.view = ResultView
		return nil
	}
	return m.waitForEvent()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.hasMatches {
			m.matches.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ImportView:
			return m.handleImportKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case FinderView:
			return m.handleFinderKeys(msg)
		}

	case importEventMsg:
		return m.handleImportEvent(tasks.Update(msg))

	case streamClosedMsg:
		m.current++
		if m.current >= len(m.streams) {
			m.view = ResultView
			m.cursor = 0
			return m, nil
		}
		return m, m.waitForEvent()

	case searchResultsMsg:
		if msg.query != m.search.Value() {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = matchItem{track: track}
		}
		m.matches = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-10)
		m.matches.Title = fmt.Sprintf("Matches for %q", msg.query)
		m.matches.SetShowHelp(false)
		m.hasMatches = true
		return m, nil

	case trackAppendedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.resolveSelected(msg.track)
		m.view = ResultView
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ImportView:
		return m.renderImport()
	case ResultView:
		return m.renderResult()
	case FinderView:
		return m.renderFinder()
	default:
		return ""
	}
}

func (m *Model) handleImportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(m.unmatched)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.enter):
		if m.cursor < len(m.unmatched) {
			m.view = FinderView
			m.err = nil
			m.hasMatches = false
			m.search.SetValue("")
			m.search.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m *Model) handleFinderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ResultView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if !m.hasMatches {
			return m, nil
		}
		if item, ok := m.matches.SelectedItem().(matchItem); ok {
			return m, m.appendTrack(item.track)
		}
		return m, nil
	case msg.String() == "up" || msg.String() == "down":
		if m.hasMatches {
			var cmd tea.Cmd
			m.matches, cmd = m.matches.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if query := strings.TrimSpace(m.search.Value()); len(query) >= minQueryLength {
		return m, tea.Batch(cmd, m.runSearch(query))
	}
	m.hasMatches = false
	return m, cmd
}

func (m *Model) handleImportEvent(update tasks.Update) (tea.Model, tea.Cmd) {
	switch update.Phase {
	case tasks.SessionStarted:
		m.playlist = update.Playlist
	case tasks.TrackResolved:
		if update.Track.Added {
			m.added = append(m.added, *update.Track)
		} else {
			m.unmatched = append(m.unmatched, *update.Track)
		}
	case tasks.SessionCompleted:
		m.results = append(m.results, update.Result)
	case tasks.SessionFailed:
		m.err = update.Err
	}
	return m, m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	stream := m.streams[m.current]
	return func() tea.Msg {
		update, ok := <-stream
		if !ok {
			return streamClosedMsg{}
		}
		return importEventMsg(update)
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.searcher.Search(query)
		return searchResultsMsg{query: query, tracks: tracks, err: err}
	}
}

func (m *Model) appendTrack(track models.Track) tea.Cmd {
	if m.playlist == nil {
		return func() tea.Msg {
			return trackAppendedMsg{track: track, err: fmt.Errorf("no playlist to add %q to", track.Title)}
		}
	}
	playlistID := m.playlist.ID
	return func() tea.Msg {
		err := m.store.AppendMember(playlistID, track.ID)
		return trackAppendedMsg{track: track, err: err}
	}
}

// resolveSelected moves the highlighted unmatched entry to the added list,
// carrying the chosen track's identity.
func (m *Model) resolveSelected(track models.Track) {
	if m.cursor >= len(m.unmatched) {
		return
	}
	entry := m.unmatched[m.cursor]
	entry.ID = track.ID
	entry.Title = track.Title
	entry.Artist = track.Artist
	entry.IsKnown = true
	entry.Added = true

	m.unmatched = append(m.unmatched[:m.cursor], m.unmatched[m.cursor+1:]...)
	m.added = append(m.added, entry)
	if m.cursor >= len(m.unmatched) && m.cursor > 0 {
		m.cursor--
	}
}

// trackLines renders unmatched entries above added ones, matching the order
// the queue surfaces them for review.
func (m *Model) trackLines(highlight bool) string {
	var b strings.Builder
	for i, track := range m.unmatched {
		marker := "  "
		if highlight && i == m.cursor {
			marker = "> "
		}
		b.WriteString(marker + styles.warn.Render(fmt.Sprintf("✗ %s - %s", track.Title, track.Artist)) + "\n")
	}
	for _, track := range m.added {
		b.WriteString("  " + styles.ok.Render(fmt.Sprintf("✓ %s - %s", track.Title, track.Artist)) + "\n")
	}
	return b.String()
}

func (m *Model) renderImport() string {
	name := ""
	if m.current < len(m.sources) {
		name = m.sources[m.current].Name()
	}
	title := styles.title.Render(fmt.Sprintf("Importing %s (%d/%d)", name, m.current+1, len(m.sources)))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", title, m.trackLines(false), helpView)
}

func (m *Model) renderResult() string {
	var total, added int
	for _, result := range m.results {
		total += result.TotalCount
		added += result.AddedCount
	}

	title := styles.title.Render("Import Complete")
	summary := fmt.Sprintf("Added %d of %d tracks", added, total)
	if m.err != nil {
		summary += "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}

	body := m.trackLines(true)
	if len(m.unmatched) > 0 {
		summary += fmt.Sprintf("\n%s", styles.warn.Render(fmt.Sprintf("%d tracks need a manual match", len(m.unmatched))))
	}

	helpKeys := []key.Binding{m.keys.quit}
	if len(m.unmatched) > 0 {
		helpKeys = []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.quit}
	}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, summary, body, helpView)
}

func (m *Model) renderFinder() string {
	entry := ""
	if m.cursor < len(m.unmatched) {
		track := m.unmatched[m.cursor]
		entry = fmt.Sprintf("%s - %s", track.Title, track.Artist)
	}
	title := styles.title.Render(fmt.Sprintf("Find a match for %q", entry))

	body := styles.help.Render(fmt.Sprintf("Type at least %d characters to search", minQueryLength))
	if m.hasMatches {
		body = m.matches.View()
	}
	if m.err != nil {
		body += "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back})
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.search.View(), body, helpView)
}
