package feed

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogcraft/blogcraft/app"
)

func (m Model) fetchPosts() tea.Cmd {
	posts := m.posts
	mine := m.mine
	page := m.page
	search := m.search
	return func() tea.Msg {
		var (
			result app.PostPage
			err    error
		)
		if mine {
			result, err = posts.MyPosts(context.Background(), page, defaultLimit)
		} else {
			result, err = posts.ListPosts(context.Background(), app.ListFilters{
				Search:        search,
				PublishedOnly: true,
				Page:          page,
				Limit:         defaultLimit,
			})
		}
		if err != nil {
			return PostsErrorMsg{Err: err}
		}
		return PostsLoadedMsg{Page: result, Mine: mine}
	}
}

func (m Model) fetchPost(id string) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		post, err := posts.GetPost(context.Background(), id)
		if err != nil {
			return PostsErrorMsg{Err: err}
		}
		return PostLoadedMsg{Post: post}
	}
}

func (m Model) toggleLike(id string) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		result, err := posts.ToggleLike(context.Background(), id)
		return LikeResultMsg{Result: result, LikedAt: time.Now(), Err: err}
	}
}

func (m Model) addComment(postID, content string) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		comment, err := posts.AddComment(context.Background(), postID, content)
		return CommentResultMsg{PostID: postID, Comment: comment, Err: err}
	}
}

func (m Model) deleteComment(postID, commentID string) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		err := posts.DeleteComment(context.Background(), postID, commentID)
		return CommentDeletedMsg{PostID: postID, CommentID: commentID, Err: err}
	}
}

func (m Model) deletePost(id string) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		err := posts.DeletePost(context.Background(), id)
		return DeleteResultMsg{ID: id, Err: err}
	}
}

func (m Model) joinRoom(postID string) tea.Cmd {
	stream := m.stream
	return func() tea.Msg {
		_ = stream.JoinPost(context.Background(), postID)
		return nil
	}
}

func (m Model) leaveRoom(postID string) tea.Cmd {
	stream := m.stream
	return func() tea.Msg {
		_ = stream.LeavePost(context.Background(), postID)
		return nil
	}
}
