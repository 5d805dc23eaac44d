package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blogcraft/blogcraft/app"
	"github.com/blogcraft/blogcraft/tui/common"
)

// View renders the feed as a string.
func (m Model) View() string {
	if m.mode == detailView {
		return m.renderDetail()
	}

	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("✍ BlogCraft")
	tagline := common.TaglineStyle.Render("<your blog, in the terminal>")
	b.WriteString(title + tagline + "  " + m.renderLive() + "\n")

	if m.mine {
		b.WriteString(common.TagStyle.Margin(0, 0, 1, 2).Render("my posts") + "\n")
	} else if m.search != "" {
		b.WriteString(common.TagStyle.Margin(0, 0, 1, 2).Render("search: "+m.search) + "\n")
	} else {
		b.WriteString("\n")
	}

	if m.searching {
		b.WriteString("  " + m.searchInput.View() + "\n\n")
	}

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(m.items) == 0:
		b.WriteString("  No posts yet. Press n to write the first one!\n")
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderList() string {
	// Each card is 5 lines (3 content + 2 border). Header and status bar
	// take roughly 6 lines.
	visible := (m.height - 6) / 5
	if visible < 1 {
		visible = 3
	}

	start := m.startIndex
	if m.cursor >= start+visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.items) {
		end = len(m.items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		post := m.items[i]

		author := common.AuthorStyle.Render("@" + post.Author.Name)
		if post.Author.ID == m.localUserID {
			author += common.OwnBadgeStyle.Render("(you)")
		}
		if !post.Published {
			author += common.DraftBadgeStyle.Render("[draft]")
		}
		timestamp := common.TimestampStyle.Render(common.RelativeTime(post.CreatedAt))

		likeStyle := common.MetadataStyle
		likeIcon := "♡"
		if post.LikedBy(m.localUserID) {
			likeStyle = common.LikeActiveStyle
			likeIcon = "♥"
		}
		meta := fmt.Sprintf("%s %d  💬 %d  👁 %d",
			likeStyle.Render(likeIcon), post.LikeCount, post.CommentCount, post.Views)

		header := lipgloss.JoinHorizontal(lipgloss.Top,
			common.TitleStyle.Render(post.Title), "  ", timestamp)
		excerpt := common.ContentStyle.Render(common.TruncateLines(post.Excerpt, 70, 1))
		footer := author + "  " + meta
		if tags := common.FormatTags(post.Tags); tags != "" {
			footer += "  " + common.TagStyle.Render(tags)
		}

		card := header + "\n" + excerpt + "\n" + footer
		if i == m.cursor {
			b.WriteString(common.SelectedStyle.Render(card) + "\n")
		} else {
			b.WriteString(common.UnselectedStyle.Render(card) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderLive() string {
	switch m.live {
	case app.StreamConnected:
		return common.LiveStyle.Render("● live")
	case app.StreamConnecting:
		return common.OfflineStyle.Render("◌ connecting")
	case app.StreamFailed:
		return common.OfflineStyle.Render("○ offline")
	default:
		return ""
	}
}

func (m Model) renderStatusBar() string {
	if m.confirmDelete {
		return common.ConfirmStyle.Render("Delete this post? y/n")
	}

	hints := "↑/↓: move • enter: open • l: like • n/N: new • m: my posts • /: search • [/]: page • r: refresh • q: quit"
	if m.pages > 1 {
		hints = fmt.Sprintf("page %d/%d • %s", m.page, m.pages, hints)
	}
	return common.StatusBarStyle.Render("  " + hints)
}
