package compose

import (
	"fmt"
	"strings"

	"github.com/blogcraft/blogcraft/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	if m.err != nil {
		return common.ErrorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render("✍ BlogCraft"))
		if m.isEdit {
			b.WriteString("  Edit Post\n\n")
		} else {
			b.WriteString("  New Post\n\n")
		}
		b.WriteString("  " + m.title.View() + "\n\n")
		b.WriteString(m.body.View())
		b.WriteString("\n\n  " + m.tags.View() + "\n\n")

		if m.status != "" {
			b.WriteString(common.ErrorStyle.Render("  " + m.status))
		} else {
			b.WriteString(common.StatusBarStyle.Render(
				fmt.Sprintf("  tab: next field • ctrl+d: publish • ctrl+s: save draft • esc: cancel • %d chars",
					len(m.body.Value())),
			))
		}

		return b.String()
	}

	return ""
}
