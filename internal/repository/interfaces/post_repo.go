package interfaces

import (
	"context"

	"github.com/blogcraft/blogcraft/domain"
)

// PostQuery narrows and pages FindAll results.
type PostQuery struct {
	Search        string // matches title, content and tags
	Tag           string
	PublishedOnly bool
	Page          int // 1-based
	Limit         int
}

// PostRepository persists posts and their likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindAll(ctx context.Context, q PostQuery) ([]domain.Post, int, error)
	FindByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error

	// ToggleLike flips the caller's like on a post and returns the new
	// membership state and authoritative like count.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, count int, err error)

	AddComment(ctx context.Context, postID string, comment *domain.Comment) error
	GetComment(ctx context.Context, postID, commentID string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
}
