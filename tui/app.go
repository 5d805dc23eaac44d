package tui

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogcraft/blogcraft/app"
	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/infra/cache"
	"github.com/blogcraft/blogcraft/infra/editor"
	"github.com/blogcraft/blogcraft/tui/common"
	"github.com/blogcraft/blogcraft/tui/compose"
	"github.com/blogcraft/blogcraft/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts   app.PostService
	Account app.AccountService
	Stream  app.StreamService
	Store   *app.PostsStore
	Editor  *editor.EnvEditor
	Cache   *cache.FeedCache
}

type activeView int

const (
	authView activeView = iota
	feedView
	composeView
)

// currentUserMsg resolves the stored credential into a profile at startup.
type currentUserMsg struct {
	user domain.User
	err  error
}

// postSavedMsg reports the REST round-trip of a compose submit.
type postSavedMsg struct {
	post   domain.Post
	isEdit bool
	err    error
}

// App is the root Bubble Tea model. It routes between sub-views and owns the
// realtime stream lifecycle.
type App struct {
	deps    Deps
	active  activeView
	auth    authModel
	feed    feed.Model
	compose compose.Model
	keys    common.KeyMap
	status  string // Transient status message (e.g. "Post published!")
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	a := App{
		deps: deps,
		keys: common.DefaultKeyMap(),
	}
	if deps.Account.Authenticated() {
		// Credential exists; verify it and enter the feed.
		a.active = feedView
	} else {
		a.active = authView
		a.auth = newAuthModel(deps.Account)
	}
	return a
}

// Init resolves the stored session or shows the sign-in form.
func (a App) Init() tea.Cmd {
	if a.active != feedView {
		return nil
	}
	account := a.deps.Account
	return func() tea.Msg {
		user, err := account.CurrentUser(context.Background())
		return currentUserMsg{user: user, err: err}
	}
}

// startMain wires the feed and connects the realtime stream for a signed-in
// user.
func (a *App) startMain(user domain.User) tea.Cmd {
	a.deps.Store.SetLocalUser(user.ID)
	a.feed = feed.New(a.deps.Posts, a.deps.Stream, a.deps.Store, user.ID)
	a.active = feedView

	a.deps.Stream.Connect(context.Background())
	return tea.Batch(
		a.feed.Init(),
		a.waitEvent(),
		a.waitState(),
	)
}

// waitEvent relays one realtime event into the update loop, then re-arms.
func (a App) waitEvent() tea.Cmd {
	events := a.deps.Stream.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return feed.StreamEventMsg{Event: ev}
	}
}

// waitState relays one connection state change, then re-arms.
func (a App) waitState() tea.Cmd {
	states := a.deps.Stream.States()
	return func() tea.Msg {
		state, ok := <-states
		if !ok {
			return nil
		}
		return feed.StreamStateMsg{State: state}
	}
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.deps.Stream.Disconnect()
			return a, tea.Quit
		}

		if a.active == feedView && !a.feed.Capturing() {
			if key.Matches(msg, a.keys.Quit) && !a.feed.InDetailView() {
				a.deps.Stream.Disconnect()
				return a, tea.Quit
			}

			if key.Matches(msg, a.keys.NewEditor) {
				a.active = composeView
				a.status = ""
				a.compose = compose.NewEditor(a.deps.Editor)
				return a, a.compose.Init()
			}

			if key.Matches(msg, a.keys.NewInline) {
				a.active = composeView
				a.status = ""
				a.compose = compose.NewInline()
				return a, a.compose.Init()
			}
		}

	case currentUserMsg:
		if msg.err != nil {
			// Stale or revoked token: drop it and ask for credentials.
			if stderrors.Is(msg.err, domain.ErrUnauthorized) {
				_ = a.deps.Account.Logout(context.Background())
			}
			a.active = authView
			a.auth = newAuthModel(a.deps.Account)
			return a, nil
		}
		return a, a.startMain(msg.user)

	case authDoneMsg:
		a.auth.busy = false
		if msg.err != nil {
			a.auth.err = msg.err
			return a, nil
		}
		return a, a.startMain(msg.user)

	case feed.StreamEventMsg:
		a.feed, _ = a.feed.Update(msg)
		return a, a.waitEvent()

	case feed.StreamStateMsg:
		a.feed, _ = a.feed.Update(msg)
		if msg.State == app.StreamFailed {
			a.status = "Live updates unavailable. Press r to refresh manually."
		}
		return a, a.waitState()

	case feed.PostsLoadedMsg:
		if !msg.Mine && a.deps.Cache != nil {
			// Snapshot the public feed for instant rendering next launch.
			_ = a.deps.Cache.Save(msg.Page.Posts)
		}
		a.feed, _ = a.feed.Update(msg)
		return a, nil

	case feed.EditPostMsg:
		a.active = composeView
		a.status = ""
		draft := app.PostDraft{
			Title:     msg.Post.Title,
			Content:   msg.Post.Content,
			Excerpt:   msg.Post.Excerpt,
			ImageURL:  msg.Post.ImageURL,
			Tags:      msg.Post.Tags,
			Published: msg.Post.Published,
		}
		if msg.UseInline {
			a.compose = compose.NewInlineWithDraft(msg.Post.ID, draft)
		} else {
			a.compose = compose.NewEditorWithDraft(a.deps.Editor, msg.Post.ID, draft)
		}
		return a, a.compose.Init()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case compose.DoneMsg:
		a.active = feedView
		if msg.Err != nil {
			a.status = "Error: " + msg.Err.Error()
			return a, nil
		}
		if msg.Cancelled {
			a.status = "Cancelled."
			return a, nil
		}

		a.status = "Publishing..."
		if msg.IsEdit {
			a.status = "Updating..."
		}
		posts := a.deps.Posts
		return a, func() tea.Msg {
			var (
				post domain.Post
				err  error
			)
			if msg.IsEdit {
				post, err = posts.UpdatePost(context.Background(), msg.PostID, msg.Draft)
			} else {
				post, err = posts.CreatePost(context.Background(), msg.Draft)
			}
			return postSavedMsg{post: post, isEdit: msg.IsEdit, err: err}
		}

	case postSavedMsg:
		if msg.err != nil {
			a.status = "Error: " + msg.err.Error()
			return a, nil
		}
		a.feed, _ = a.feed.Update(feed.PostSavedMsg{Post: msg.post, IsEdit: msg.isEdit})
		if msg.isEdit {
			a.status = "✨ Post updated!"
		} else if msg.post.Published {
			a.status = "✨ Post published!"
		} else {
			a.status = "Draft saved."
		}
		return a, nil
	}

	// Delegate to the active sub-model.
	switch a.active {
	case authView:
		var cmd tea.Cmd
		a.auth, cmd = a.auth.update(msg)
		return a, cmd
	case feedView:
		updated, cmd := a.feed.Update(msg)
		a.feed = updated
		return a, cmd
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		return a, cmd
	}

	return a, nil
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case authView:
		s = a.auth.view()
	case feedView:
		s = a.feed.View()
	case composeView:
		s = a.compose.View()
	}

	// Append transient status if present.
	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}

	return s
}
