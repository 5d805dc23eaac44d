package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogcraft/blogcraft/app"
	"github.com/blogcraft/blogcraft/infra/editor"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// Inline focus cycle: title -> body -> tags.
type focusField int

const (
	focusTitle focusField = iota
	focusBody
	focusTags
)

// --- Messages ---

// DoneMsg is sent when composing is complete (submit or cancel).
type DoneMsg struct {
	Draft     app.PostDraft
	PostID    string // ID of the post being edited
	IsEdit    bool
	Cancelled bool
	Err       error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the compose view.
type Model struct {
	mode   mode
	editor *editor.EnvEditor
	status string
	err    error

	title    textinput.Model // Only used in inline mode
	body     textarea.Model
	tags     textinput.Model
	focus    focusField
	tmpPath  string // Temp file path for editor mode
	isEdit   bool
	postID   string
	original app.PostDraft // Starting draft when editing
}

// NewEditor creates a compose model that opens $EDITOR via tea.Exec.
func NewEditor(ed *editor.EnvEditor) Model {
	return Model{
		mode:   editorMode,
		editor: ed,
		status: "Opening editor...",
	}
}

// NewEditorWithDraft creates a compose model for editing an existing post.
func NewEditorWithDraft(ed *editor.EnvEditor, postID string, draft app.PostDraft) Model {
	return Model{
		mode:     editorMode,
		editor:   ed,
		status:   "Opening editor...",
		isEdit:   true,
		postID:   postID,
		original: draft,
	}
}

// NewInline creates a compose model with inline Bubble Tea inputs.
func NewInline() Model {
	m := Model{mode: inlineMode}
	m.initInputs(app.PostDraft{})
	return m
}

// NewInlineWithDraft creates a compose model for editing an existing post inline.
func NewInlineWithDraft(postID string, draft app.PostDraft) Model {
	m := Model{
		mode:     inlineMode,
		isEdit:   true,
		postID:   postID,
		original: draft,
	}
	m.initInputs(draft)
	return m
}

func (m *Model) initInputs(draft app.PostDraft) {
	ti := textinput.New()
	ti.Placeholder = "Post title"
	ti.CharLimit = 200
	ti.Width = 70
	ti.SetValue(draft.Title)
	ti.Focus()
	m.title = ti

	ta := textarea.New()
	ta.Placeholder = "Write your post..."
	ta.SetWidth(72)
	ta.SetHeight(10)
	ta.SetValue(draft.Content)
	m.body = ta

	tags := textinput.New()
	tags.Placeholder = "tags, comma, separated"
	tags.CharLimit = 200
	tags.Width = 70
	tags.SetValue(strings.Join(draft.Tags, ", "))
	m.tags = tags

	m.focus = focusTitle
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textinput.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	buffer := m.original.Title
	if m.original.Content != "" {
		buffer += "\n\n" + m.original.Content
	}
	cmd, tmpPath, err := m.editor.Cmd(buffer)
	if err != nil {
		return func() tea.Msg {
			return DoneMsg{Err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	m.tmpPath = tmpPath

	// tea.ExecProcess suspends Bubble Tea, runs the command with full terminal
	// control, then resumes Bubble Tea and delivers the callback message.
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Err: fmt.Errorf("editor: %w", msg.err), IsEdit: m.isEdit})
		}

		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Err: err, IsEdit: m.isEdit, PostID: m.postID})
		}

		title, body := editor.SplitTitle(content)
		if title == "" || (title == m.original.Title && body == m.original.Content) {
			return m, done(DoneMsg{Cancelled: true, IsEdit: m.isEdit, PostID: m.postID})
		}

		draft := m.original
		draft.Title = title
		draft.Content = body
		draft.Published = true
		return m, done(DoneMsg{Draft: draft, IsEdit: m.isEdit, PostID: m.postID})

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{Cancelled: true, IsEdit: m.isEdit, PostID: m.postID})

		case "tab":
			m.setFocus((m.focus + 1) % 3)
			return m, nil

		case "shift+tab":
			m.setFocus((m.focus + 2) % 3)
			return m, nil

		case "ctrl+d":
			return m.submit(true)

		case "ctrl+s":
			// Save as draft: visible only in the my-posts view.
			return m.submit(false)
		}

		return m.updateFocused(msg)
	}

	// Pass through any remaining messages to the focused input in inline mode.
	if m.mode == inlineMode {
		return m.updateFocused(msg)
	}

	return m, nil
}

func (m Model) submit(publish bool) (Model, tea.Cmd) {
	title := strings.TrimSpace(m.title.Value())
	body := strings.TrimSpace(m.body.Value())
	if title == "" || body == "" {
		m.status = "Title and body are both required."
		return m, nil
	}

	draft := m.original
	draft.Title = title
	draft.Content = body
	draft.Tags = parseTags(m.tags.Value())
	draft.Published = publish
	return m, done(DoneMsg{Draft: draft, IsEdit: m.isEdit, PostID: m.postID})
}

func (m *Model) setFocus(f focusField) {
	m.focus = f
	m.title.Blur()
	m.body.Blur()
	m.tags.Blur()
	switch f {
	case focusTitle:
		m.title.Focus()
	case focusBody:
		m.body.Focus()
	case focusTags:
		m.tags.Focus()
	}
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusBody:
		m.body, cmd = m.body.Update(msg)
	case focusTags:
		m.tags, cmd = m.tags.Update(msg)
	}
	return m, cmd
}

func parseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
