package blogapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/blogcraft/blogcraft/app"
	"github.com/blogcraft/blogcraft/domain"
)

// postService implements app.PostService against the BlogCraft REST API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the API client.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

// pagedPosts is the wire shape of a post list response.
type pagedPosts struct {
	Posts      []domain.Post `json:"posts"`
	Pagination struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

func (p pagedPosts) toPage() app.PostPage {
	return app.PostPage{
		Posts: p.Posts,
		Pagination: app.Pagination{
			Page:  p.Pagination.Page,
			Limit: p.Pagination.Limit,
			Total: p.Pagination.Total,
			Pages: p.Pagination.Pages,
		},
	}
}

// postBody is the wire shape of create/update requests.
type postBody struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Tags      string `json:"tags,omitempty"` // comma-separated, split server-side
	Published bool   `json:"published"`
}

func draftToBody(d app.PostDraft) postBody {
	return postBody{
		Title:     d.Title,
		Content:   d.Content,
		Excerpt:   d.Excerpt,
		ImageURL:  d.ImageURL,
		Tags:      strings.Join(d.Tags, ","),
		Published: d.Published,
	}
}

func (s *postService) ListPosts(_ context.Context, f app.ListFilters) (app.PostPage, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	if !f.PublishedOnly {
		q.Set("published", "false")
	}

	path := "/api/posts"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page pagedPosts
	if err := s.client.Get(path, &page); err != nil {
		return app.PostPage{}, fmt.Errorf("fetching posts: %w", err)
	}
	return page.toPage(), nil
}

func (s *postService) GetPost(_ context.Context, id string) (domain.Post, error) {
	var post domain.Post
	if err := s.client.Get("/api/posts/"+url.PathEscape(id), &post); err != nil {
		return domain.Post{}, fmt.Errorf("fetching post: %w", err)
	}
	return post, nil
}

func (s *postService) MyPosts(_ context.Context, page, limit int) (app.PostPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/posts/my-posts"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var p pagedPosts
	if err := s.client.Get(path, &p); err != nil {
		return app.PostPage{}, fmt.Errorf("fetching my posts: %w", err)
	}
	return p.toPage(), nil
}

func (s *postService) CreatePost(_ context.Context, draft app.PostDraft) (domain.Post, error) {
	var post domain.Post
	if err := s.client.Post("/api/posts", draftToBody(draft), &post); err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return post, nil
}

func (s *postService) UpdatePost(_ context.Context, id string, draft app.PostDraft) (domain.Post, error) {
	var post domain.Post
	if err := s.client.Put("/api/posts/"+url.PathEscape(id), draftToBody(draft), &post); err != nil {
		return domain.Post{}, fmt.Errorf("updating post: %w", err)
	}
	return post, nil
}

func (s *postService) DeletePost(_ context.Context, id string) error {
	if err := s.client.Delete("/api/posts/" + url.PathEscape(id)); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func (s *postService) ToggleLike(_ context.Context, id string) (app.LikeResult, error) {
	var result struct {
		LikeCount int  `json:"likeCount"`
		IsLiked   bool `json:"isLiked"`
	}
	if err := s.client.Post("/api/posts/"+url.PathEscape(id)+"/like", nil, &result); err != nil {
		return app.LikeResult{}, fmt.Errorf("toggling like: %w", err)
	}
	return app.LikeResult{PostID: id, LikeCount: result.LikeCount, IsLiked: result.IsLiked}, nil
}

func (s *postService) AddComment(_ context.Context, postID, content string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	body := struct {
		Content string `json:"content"`
	}{Content: content}

	var comment domain.Comment
	if err := s.client.Post("/api/posts/"+url.PathEscape(postID)+"/comments", body, &comment); err != nil {
		return domain.Comment{}, fmt.Errorf("adding comment: %w", err)
	}
	return comment, nil
}

func (s *postService) DeleteComment(_ context.Context, postID, commentID string) error {
	path := "/api/posts/" + url.PathEscape(postID) + "/comments/" + url.PathEscape(commentID)
	if err := s.client.Delete(path); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
