package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogcraft/blogcraft/app"
	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/tui/common"
)

// authDoneMsg is sent when a login or register attempt finishes.
type authDoneMsg struct {
	user domain.User
	err  error
}

type authMode int

const (
	loginMode authMode = iota
	registerMode
)

// authModel is the credential form shown before the feed.
type authModel struct {
	account app.AccountService
	mode    authMode
	name    textinput.Model
	email   textinput.Model
	pass    textinput.Model
	focus   int
	busy    bool
	err     error
}

func newAuthModel(account app.AccountService) authModel {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 50
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 100
	email.Width = 40
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.CharLimit = 100
	pass.Width = 40
	pass.EchoMode = textinput.EchoPassword

	return authModel{account: account, email: email, name: name, pass: pass}
}

func (m authModel) fieldCount() int {
	if m.mode == registerMode {
		return 3
	}
	return 2
}

func (m *authModel) setFocus(i int) {
	m.focus = i
	m.name.Blur()
	m.email.Blur()
	m.pass.Blur()
	switch m.inputs()[i] {
	case &m.name:
		m.name.Focus()
	case &m.email:
		m.email.Focus()
	case &m.pass:
		m.pass.Focus()
	}
}

// inputs returns the visible fields in focus order.
func (m *authModel) inputs() []*textinput.Model {
	if m.mode == registerMode {
		return []*textinput.Model{&m.name, &m.email, &m.pass}
	}
	return []*textinput.Model{&m.email, &m.pass}
}

func (m authModel) update(msg tea.Msg) (authModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.busy {
		switch key.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % m.fieldCount())
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + m.fieldCount() - 1) % m.fieldCount())
			return m, nil
		case "ctrl+r":
			if m.mode == loginMode {
				m.mode = registerMode
			} else {
				m.mode = loginMode
			}
			m.err = nil
			m.setFocus(0)
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	fields := m.inputs()
	updated, cmd := fields[m.focus].Update(msg)
	*fields[m.focus] = updated
	return m, cmd
}

func (m authModel) submit() (authModel, tea.Cmd) {
	email := strings.TrimSpace(m.email.Value())
	pass := m.pass.Value()
	name := strings.TrimSpace(m.name.Value())
	if email == "" || pass == "" || (m.mode == registerMode && name == "") {
		return m, nil
	}

	m.busy = true
	m.err = nil
	account := m.account
	register := m.mode == registerMode
	return m, func() tea.Msg {
		var (
			user domain.User
			err  error
		)
		if register {
			user, err = account.Register(context.Background(), name, email, pass)
		} else {
			user, err = account.Login(context.Background(), email, pass)
		}
		return authDoneMsg{user: user, err: err}
	}
}

func (m authModel) view() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("✍ BlogCraft"))
	if m.mode == registerMode {
		b.WriteString("  Create account\n\n")
		b.WriteString("  " + m.name.View() + "\n")
	} else {
		b.WriteString("  Sign in\n\n")
	}
	b.WriteString("  " + m.email.View() + "\n")
	b.WriteString("  " + m.pass.View() + "\n\n")

	switch {
	case m.busy:
		b.WriteString(common.StatusBarStyle.Render("  Signing in..."))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render("  " + m.err.Error()))
	default:
		hint := "enter: sign in • ctrl+r: create account instead • ctrl+c: quit"
		if m.mode == registerMode {
			hint = "enter: register • ctrl+r: sign in instead • ctrl+c: quit"
		}
		b.WriteString(common.StatusBarStyle.Render("  " + hint))
	}
	return b.String()
}
