package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blogcraft/blogcraft/app"
	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/tui/common"
)

const defaultLimit = 20

// --- Messages ---

// PostsLoadedMsg is sent when a post list fetch completes successfully.
type PostsLoadedMsg struct {
	Page app.PostPage
	Mine bool // true when this is the my-posts view
}

// PostLoadedMsg is sent when a single post fetch (detail open) completes.
type PostLoadedMsg struct {
	Post domain.Post
}

// PostsErrorMsg is sent when any fetch fails.
type PostsErrorMsg struct {
	Err error
}

// LikeResultMsg carries the authoritative outcome of a like toggle.
type LikeResultMsg struct {
	Result  app.LikeResult
	LikedAt time.Time
	Err     error
}

// CommentResultMsg is sent after posting a comment.
type CommentResultMsg struct {
	PostID  string
	Comment domain.Comment
	Err     error
}

// CommentDeletedMsg is sent after deleting a comment.
type CommentDeletedMsg struct {
	PostID    string
	CommentID string
	Err       error
}

// DeleteResultMsg is sent after a post deletion attempt.
type DeleteResultMsg struct {
	ID  string
	Err error
}

// PostSavedMsg is sent after a compose submit round-trips. The realtime echo
// of an own create is deduplicated by the store.
type PostSavedMsg struct {
	Post   domain.Post
	IsEdit bool
}

// EditPostMsg asks the root model to open the compose view for a post.
type EditPostMsg struct {
	Post      domain.Post
	UseInline bool
}

// StreamEventMsg wraps one realtime event for the update loop. All store
// mutations happen here, on the single Bubble Tea goroutine.
type StreamEventMsg struct {
	Event domain.Event
}

// StreamStateMsg reports a realtime connection state change.
type StreamStateMsg struct {
	State app.StreamState
}

type viewMode int

const (
	listView viewMode = iota
	detailView
)

// --- Model ---

// Model holds the state for the feed view: the post list, the post detail
// overlay, and the realtime status indicator.
type Model struct {
	posts  app.PostService
	stream app.StreamService
	store  *app.PostsStore

	localUserID string
	mode        viewMode
	mine        bool // browsing my posts instead of the public feed

	items      []domain.Post // render snapshot of the active store view
	cursor     int
	startIndex int

	page  int
	pages int

	loading bool
	err     error

	keys    common.KeyMap
	spinner spinner.Model
	live    app.StreamState

	confirmDelete bool
	commentCursor int

	commenting   bool
	commentInput textinput.Model

	searching   bool
	searchInput textinput.Model
	search      string

	width  int
	height int
}

// New creates a feed model with injected dependencies.
func New(posts app.PostService, stream app.StreamService, store *app.PostsStore, localUserID string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	ci := textinput.New()
	ci.Placeholder = "Write a comment..."
	ci.CharLimit = 500
	ci.Width = 70

	si := textinput.New()
	si.Placeholder = "Search posts..."
	si.CharLimit = 100
	si.Width = 40

	m := Model{
		posts:        posts,
		stream:       stream,
		store:        store,
		localUserID:  localUserID,
		page:         1,
		keys:         common.DefaultKeyMap(),
		spinner:      s,
		commentInput: ci,
		searchInput:  si,
		live:         app.StreamDisconnected,
	}
	// Surface any cached snapshot immediately; the initial fetch replaces it.
	m.sync()
	return m
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(),
		m.spinner.Tick,
	)
}

// Refresh returns a Cmd that re-fetches the active list.
func (m Model) Refresh() tea.Cmd {
	return m.fetchPosts()
}

// InDetailView reports whether the detail overlay is open. The root model
// uses it to keep q from quitting while reading a post.
func (m Model) InDetailView() bool {
	return m.mode == detailView
}

// Capturing reports whether a text input owns the keyboard.
func (m Model) Capturing() bool {
	return m.commenting || m.searching
}

// sync refreshes the render snapshot from the store and clamps cursors.
// Call after every store mutation.
func (m *Model) sync() {
	if m.mine {
		m.items = m.store.MyPosts()
	} else {
		m.items = m.store.Posts()
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.mode == detailView {
		current, ok := m.store.Current()
		if !ok {
			// The open post was deleted under us; fall back to the list.
			m.mode = listView
			m.commenting = false
			m.commentCursor = 0
			return
		}
		if m.commentCursor >= len(current.Comments) {
			m.commentCursor = len(current.Comments) - 1
		}
		if m.commentCursor < 0 {
			m.commentCursor = 0
		}
	}
}

// Selected returns the currently highlighted post, if any.
func (m Model) Selected() (domain.Post, bool) {
	if len(m.items) == 0 || m.cursor >= len(m.items) {
		return domain.Post{}, false
	}
	return m.items[m.cursor], true
}

// Items returns the current render snapshot for tests.
func (m Model) Items() []domain.Post {
	return m.items
}

// Err returns the current error, if any.
func (m Model) Err() error {
	return m.err
}
