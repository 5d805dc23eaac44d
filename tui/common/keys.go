package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	NewEditor   key.Binding // n — write post via $EDITOR
	NewInline   key.Binding // N — write post via inline form
	Edit        key.Binding // e — edit own post ($EDITOR)
	EditInline  key.Binding // E — edit own post (inline)
	Delete      key.Binding // d — delete own post
	Like        key.Binding // l — toggle like
	Comment     key.Binding // c — comment on the open post
	MyPosts     key.Binding // m — toggle my-posts view
	Search      key.Binding // / — filter posts
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding // enter — open post detail
	Back        key.Binding // esc — leave detail / cancel
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NewEditor: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new post ($EDITOR)"),
		),
		NewInline: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new post (inline)"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit ($EDITOR)"),
		),
		EditInline: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit (inline)"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		MyPosts: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "my posts"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}
