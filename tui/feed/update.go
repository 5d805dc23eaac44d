package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogcraft/blogcraft/domain"
)

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case PostsLoadedMsg:
		if msg.Mine {
			m.store.SetMyPosts(msg.Page.Posts)
		} else {
			m.store.SetPosts(msg.Page.Posts)
		}
		m.pages = msg.Page.Pagination.Pages
		m.loading = false
		m.err = nil
		m.cursor = 0
		m.startIndex = 0
		m.sync()
		return m, nil

	case PostLoadedMsg:
		m.store.SetCurrent(msg.Post)
		m.mode = detailView
		m.loading = false
		m.err = nil
		m.commentCursor = 0
		m.sync()
		return m, m.joinRoom(msg.Post.ID)

	case PostsErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case LikeResultMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.store.ApplyLikeLocal(msg.Result, domain.Like{
			UserID:    m.localUserID,
			CreatedAt: msg.LikedAt,
		})
		m.sync()
		return m, nil

	case CommentResultMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		// Own comments reconcile from the REST response; the matching
		// realtime event is suppressed by actor id.
		m.store.ApplyCommentAdded(msg.PostID, msg.Comment)
		m.sync()
		return m, nil

	case CommentDeletedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.store.ApplyCommentDeleted(msg.PostID, msg.CommentID)
		m.sync()
		return m, nil

	case DeleteResultMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.store.ApplyDeleted(msg.ID)
		m.sync()
		return m, nil

	case PostSavedMsg:
		if msg.IsEdit {
			m.store.ApplyUpdated(msg.Post)
		} else {
			m.store.ApplyCreated(msg.Post)
		}
		m.sync()
		return m, nil

	case StreamEventMsg:
		m.store.ApplyEvent(msg.Event)
		m.sync()
		return m, nil

	case StreamStateMsg:
		m.live = msg.State
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Text inputs own the keyboard while active.
	if m.searching {
		return m.updateSearchKey(msg)
	}
	if m.commenting {
		return m.updateCommentKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.fetchPosts()

	case key.Matches(msg, m.keys.Up):
		m.confirmDelete = false
		if m.mode == detailView {
			if m.commentCursor > 0 {
				m.commentCursor--
			}
			return m, nil
		}
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.startIndex {
				m.startIndex = m.cursor
			}
		}

	case key.Matches(msg, m.keys.Down):
		m.confirmDelete = false
		if m.mode == detailView {
			if current, ok := m.store.Current(); ok && m.commentCursor < len(current.Comments)-1 {
				m.commentCursor++
			}
			return m, nil
		}
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Enter):
		if m.mode == detailView {
			return m, nil
		}
		post, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.loading = true
		return m, m.fetchPost(post.ID)

	case key.Matches(msg, m.keys.Back):
		if m.confirmDelete {
			m.confirmDelete = false
			return m, nil
		}
		if m.mode == detailView {
			current, _ := m.store.Current()
			m.store.ClearCurrent()
			m.mode = listView
			m.commentCursor = 0
			m.sync()
			if current.ID != "" {
				return m, m.leaveRoom(current.ID)
			}
		}

	case key.Matches(msg, m.keys.Like):
		post, ok := m.activePost()
		if !ok {
			return m, nil
		}
		return m, m.toggleLike(post.ID)

	case key.Matches(msg, m.keys.Comment):
		if m.mode != detailView {
			return m, nil
		}
		m.commenting = true
		m.commentInput.Reset()
		m.commentInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.MyPosts):
		if m.mode == detailView {
			return m, nil
		}
		m.mine = !m.mine
		m.page = 1
		m.loading = true
		return m, m.fetchPosts()

	case key.Matches(msg, m.keys.Search):
		if m.mode == detailView {
			return m, nil
		}
		m.searching = true
		m.searchInput.SetValue(m.search)
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.EditInline):
		post, ok := m.activePost()
		if !ok || post.Author.ID != m.localUserID {
			return m, nil
		}
		inline := key.Matches(msg, m.keys.EditInline)
		return m, func() tea.Msg { return EditPostMsg{Post: post, UseInline: inline} }

	case key.Matches(msg, m.keys.Delete):
		post, ok := m.activePost()
		if ok && post.Author.ID == m.localUserID {
			m.confirmDelete = true
		}

	case msg.String() == "y":
		if m.confirmDelete {
			m.confirmDelete = false
			if post, ok := m.activePost(); ok {
				return m, m.deletePost(post.ID)
			}
		}

	case msg.String() == "n":
		m.confirmDelete = false

	case msg.String() == "x":
		// Delete the selected comment in the detail view.
		if m.mode != detailView {
			return m, nil
		}
		current, ok := m.store.Current()
		if !ok || m.commentCursor >= len(current.Comments) {
			return m, nil
		}
		comment := current.Comments[m.commentCursor]
		if comment.Author.ID != m.localUserID {
			return m, nil
		}
		return m, m.deleteComment(current.ID, comment.ID)

	case msg.String() == "]":
		if m.mode == listView && m.page < m.pages {
			m.page++
			m.loading = true
			return m, m.fetchPosts()
		}

	case msg.String() == "[":
		if m.mode == listView && m.page > 1 {
			m.page--
			m.loading = true
			return m, m.fetchPosts()
		}
	}

	return m, nil
}

func (m Model) updateSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.search = strings.TrimSpace(m.searchInput.Value())
		m.page = 1
		m.loading = true
		return m, m.fetchPosts()
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) updateCommentKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commenting = false
		m.commentInput.Blur()
		return m, nil
	case "enter":
		content := strings.TrimSpace(m.commentInput.Value())
		if content == "" {
			return m, nil
		}
		m.commenting = false
		m.commentInput.Blur()
		current, ok := m.store.Current()
		if !ok {
			return m, nil
		}
		return m, m.addComment(current.ID, content)
	}
	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

// activePost returns the post an action should target: the open detail post,
// or the list selection.
func (m Model) activePost() (domain.Post, bool) {
	if m.mode == detailView {
		return m.store.Current()
	}
	return m.Selected()
}
