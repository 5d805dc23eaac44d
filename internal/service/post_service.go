package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/internal/repository/interfaces"
	"github.com/blogcraft/blogcraft/internal/util"
)

const excerptLength = 150

// Publisher broadcasts a domain event to connected sessions.
type Publisher interface {
	Publish(ev domain.Event)
}

// PostInput carries the caller-supplied fields of a create or update.
type PostInput struct {
	Title     string
	Content   string
	Excerpt   string
	ImageURL  string
	Tags      []string
	Published bool
}

// PostService implements post operations. Every successful mutation
// publishes exactly one event, after the write commits; failed mutations
// publish nothing.
type PostService struct {
	posts interfaces.PostRepository
	users interfaces.UserRepository
	pub   Publisher
}

// NewPostService creates a post service.
func NewPostService(posts interfaces.PostRepository, users interfaces.UserRepository, pub Publisher) *PostService {
	return &PostService{posts: posts, users: users, pub: pub}
}

// List returns a page of posts matching the query.
func (s *PostService) List(ctx context.Context, q interfaces.PostQuery) ([]domain.Post, int, error) {
	return s.posts.FindAll(ctx, q)
}

// Get returns a single post and counts the view.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.posts.IncrementViews(ctx, id); err != nil {
		// the read already succeeded; log and serve the stale view count
		util.Logger.Warn("increment views failed", zap.String("post", id), zap.Error(err))
	} else {
		post.Views++
	}
	return post, nil
}

// MyPosts returns all posts authored by the user, drafts included.
func (s *PostService) MyPosts(ctx context.Context, userID string) ([]domain.Post, error) {
	return s.posts.FindByAuthor(ctx, userID)
}

// Create stores a new post and announces it.
func (s *PostService) Create(ctx context.Context, userID string, in PostInput) (*domain.Post, error) {
	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   excerptOr(in.Excerpt, in.Content),
		ImageURL:  in.ImageURL,
		Author:    author.AsAuthor(),
		Tags:      normalizeTags(in.Tags),
		Published: in.Published,
		Likes:     []domain.Like{},
		Comments:  []domain.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.pub.Publish(domain.PostCreated{Post: *post})
	return post, nil
}

// Update rewrites a post's fields. Only the author or an admin may update.
func (s *PostService) Update(ctx context.Context, userID, postID string, in PostInput) (*domain.Post, error) {
	post, err := s.authorizePost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	post.Excerpt = excerptOr(in.Excerpt, in.Content)
	post.ImageURL = in.ImageURL
	post.Tags = normalizeTags(in.Tags)
	post.Published = in.Published
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.pub.Publish(domain.PostUpdated{Post: *post})
	return post, nil
}

// Delete removes a post. Only the author or an admin may delete.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	if _, err := s.authorizePost(ctx, userID, postID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	s.pub.Publish(domain.PostDeleted{ID: postID})
	return nil
}

// ToggleLike flips the caller's like and returns the authoritative state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (liked bool, count int, err error) {
	if _, err = s.posts.FindByID(ctx, postID); err != nil {
		return false, 0, err
	}
	liked, count, err = s.posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, 0, err
	}

	s.pub.Publish(domain.PostLiked{PostID: postID, LikeCount: count, IsLiked: liked})
	return liked, count, nil
}

// AddComment appends a comment to a post.
func (s *PostService) AddComment(ctx context.Context, userID, postID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyComment
	}
	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.New().String(),
		Author:    author.AsAuthor(),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	s.pub.Publish(domain.CommentAdded{PostID: postID, Comment: *comment, ActorID: userID})
	return comment, nil
}

// DeleteComment removes a comment. Only the comment's author or an admin
// may delete.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID string) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return err
	}
	comment, err := s.posts.GetComment(ctx, postID, commentID)
	if err != nil {
		return err
	}

	if comment.Author.ID != userID {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.IsAdmin() {
			return domain.ErrForbidden
		}
	}

	if err := s.posts.DeleteComment(ctx, postID, commentID); err != nil {
		return err
	}

	s.pub.Publish(domain.CommentDeleted{PostID: postID, CommentID: commentID, ActorID: userID})
	return nil
}

// authorizePost loads a post and checks the caller may modify it.
func (s *PostService) authorizePost(ctx context.Context, userID, postID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Author.ID == userID {
		return post, nil
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func excerptOr(excerpt, content string) string {
	if excerpt != "" {
		return excerpt
	}
	if utf8.RuneCountInString(content) <= excerptLength {
		return content
	}
	runes := []rune(content)
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}

// normalizeTags trims whitespace and drops empties. Case and duplicates
// are kept as submitted.
func normalizeTags(tags []string) []string {
	out := []string{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
