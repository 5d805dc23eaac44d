package app

import (
	"context"

	"github.com/blogcraft/blogcraft/domain"
)

// ListFilters narrows the post list. Zero values mean "no filter";
// PublishedOnly defaults to true at the call sites that browse the feed.
type ListFilters struct {
	Search        string
	Tag           string
	PublishedOnly bool
	Page          int
	Limit         int
}

// Pagination describes the page window the server returned.
type Pagination struct {
	Page  int
	Limit int
	Total int
	Pages int
}

// PostPage is one page of posts plus its pagination window.
type PostPage struct {
	Posts      []domain.Post
	Pagination Pagination
}

// PostDraft is the writable subset of a post for create and update.
type PostDraft struct {
	Title     string
	Content   string
	Excerpt   string
	ImageURL  string
	Tags      []string
	Published bool
}

// LikeResult is the authoritative outcome of a like toggle.
type LikeResult struct {
	PostID    string
	LikeCount int
	IsLiked   bool
}

// PostService is the REST surface the client mutates and reads posts through.
// Every successful mutation makes the server broadcast exactly one realtime
// event; the local caller reconciles from the returned value, not the event.
type PostService interface {
	// ListPosts returns a page of posts, newest first.
	ListPosts(ctx context.Context, f ListFilters) (PostPage, error)

	// GetPost returns one post by id. The server increments its view counter.
	GetPost(ctx context.Context, id string) (domain.Post, error)

	// MyPosts returns the authenticated user's posts, newest first.
	MyPosts(ctx context.Context, page, limit int) (PostPage, error)

	// CreatePost publishes a new post.
	CreatePost(ctx context.Context, draft PostDraft) (domain.Post, error)

	// UpdatePost edits an existing post. Author or admin only.
	UpdatePost(ctx context.Context, id string, draft PostDraft) (domain.Post, error)

	// DeletePost removes a post. Author or admin only.
	DeletePost(ctx context.Context, id string) error

	// ToggleLike flips the caller's like on a post and returns the new count.
	ToggleLike(ctx context.Context, id string) (LikeResult, error)

	// AddComment appends a comment to a post.
	AddComment(ctx context.Context, postID, content string) (domain.Comment, error)

	// DeleteComment removes a comment. Comment author or admin only.
	DeleteComment(ctx context.Context, postID, commentID string) error
}
