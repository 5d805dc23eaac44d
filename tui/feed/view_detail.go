package feed

import (
	"fmt"
	"strings"

	"github.com/blogcraft/blogcraft/tui/common"
)

// renderDetail renders the full post with its comment thread.
func (m Model) renderDetail() string {
	post, ok := m.store.Current()
	if !ok {
		return common.ErrorStyle.Render("  Post no longer available.") + "\n"
	}

	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Padding(1, 0, 0, 1).Render(post.Title))
	b.WriteString("  " + m.renderLive() + "\n")

	author := common.AuthorStyle.Render("@" + post.Author.Name)
	if post.Author.ID == m.localUserID {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	b.WriteString("  " + author + "  " +
		common.TimestampStyle.Render(common.RelativeTime(post.CreatedAt)) + "\n")
	if tags := common.FormatTags(post.Tags); tags != "" {
		b.WriteString("  " + common.TagStyle.Render(tags) + "\n")
	}
	b.WriteString("\n")

	width := m.width - 4
	if width < 20 || width > 76 {
		width = 76
	}
	for _, line := range strings.Split(post.Content, "\n") {
		b.WriteString("  " + common.ContentStyle.Render(common.TruncateLines(line, width, 3)) + "\n")
	}
	b.WriteString("\n")

	likeStyle := common.MetadataStyle
	likeIcon := "♡"
	if post.LikedBy(m.localUserID) {
		likeStyle = common.LikeActiveStyle
		likeIcon = "♥"
	}
	b.WriteString(fmt.Sprintf("  %s %d  💬 %d  👁 %d\n\n",
		likeStyle.Render(likeIcon), post.LikeCount, post.CommentCount, post.Views))

	b.WriteString(common.TitleStyle.Render(fmt.Sprintf("  Comments (%d)", post.CommentCount)) + "\n")
	if len(post.Comments) == 0 {
		b.WriteString(common.MetadataStyle.Render("  No comments yet.") + "\n")
	}
	for i, comment := range post.Comments {
		prefix := "  "
		if i == m.commentCursor {
			prefix = common.TagStyle.Render("> ")
		}
		commentAuthor := common.AuthorStyle.Render("@" + comment.Author.Name)
		if comment.Author.ID == m.localUserID {
			commentAuthor += common.OwnBadgeStyle.Render("(you)")
		}
		b.WriteString(prefix + commentAuthor + "  " +
			common.TimestampStyle.Render(common.RelativeTime(comment.CreatedAt)) + "\n")
		b.WriteString("    " + common.ContentStyle.Render(common.TruncateLines(comment.Content, width-4, 2)) + "\n")
	}
	b.WriteString("\n")

	if m.commenting {
		b.WriteString("  " + m.commentInput.View() + "\n")
		b.WriteString(common.StatusBarStyle.Render("  enter: post comment • esc: cancel"))
		return b.String()
	}

	if m.confirmDelete {
		b.WriteString(common.ConfirmStyle.Render("Delete this post? y/n"))
		return b.String()
	}

	b.WriteString(common.StatusBarStyle.Render("  l: like • c: comment • x: delete comment • esc: back"))
	return b.String()
}
