package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/internal/repository/interfaces"
)

// PostRepo is the SQLite implementation of interfaces.PostRepository.
type PostRepo struct {
	db *sql.DB
}

// NewPostRepo creates a post repository backed by db.
func NewPostRepo(db *sql.DB) interfaces.PostRepository {
	return &PostRepo{db: db}
}

const postColumns = `p.id, p.title, p.content, p.excerpt, p.image_url,
	p.author_id, u.name, u.avatar, p.tags, p.published, p.views,
	p.created_at, p.updated_at`

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, excerpt, image_url, author_id,
			tags, published, views, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Title, post.Content, post.Excerpt, post.ImageURL,
		post.Author.ID, joinTags(post.Tags), post.Published, post.Views,
		post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE p.id = ?`, id)

	post, err := scanPost(row)
	if err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostRepo) FindAll(ctx context.Context, q interfaces.PostQuery) ([]domain.Post, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if q.PublishedOnly {
		where = append(where, "p.published = 1")
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, "(LOWER(p.title) LIKE ? OR LOWER(p.content) LIKE ? OR LOWER(p.tags) LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	if q.Tag != "" {
		// tags are stored comma-joined; pad both sides so "go" does not
		// match "golang"
		where = append(where, "(',' || LOWER(p.tags) || ',') LIKE ?")
		args = append(args, "%,"+strings.ToLower(q.Tag)+",%")
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts p WHERE `+cond, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE `+cond+` ORDER BY p.created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query posts: %w", err)
	}
	posts, err := r.collect(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepo) FindByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE p.author_id = ? ORDER BY p.created_at DESC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("query posts by author: %w", err)
	}
	return r.collect(ctx, rows)
}

func (r *PostRepo) Update(ctx context.Context, post *domain.Post) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, excerpt = ?, image_url = ?,
			tags = ?, published = ?, updated_at = ?
		 WHERE id = ?`,
		post.Title, post.Content, post.Excerpt, post.ImageURL,
		joinTags(post.Tags), post.Published, post.UpdatedAt, post.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return requireRow(res)
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireRow(res)
}

func (r *PostRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func (r *PostRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin like tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post_likes WHERE post_id = ? AND user_id = ?`,
		postID, userID).Scan(&exists)
	if err != nil {
		return false, 0, fmt.Errorf("check like: %w", err)
	}

	liked := exists == 0
	if liked {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)`, postID, userID)
	} else {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`,
			postID, userID)
	}
	if err != nil {
		return false, 0, fmt.Errorf("toggle like: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post_likes WHERE post_id = ?`, postID).Scan(&count)
	if err != nil {
		return false, 0, fmt.Errorf("count likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit like tx: %w", err)
	}
	return liked, count, nil
}

func (r *PostRepo) AddComment(ctx context.Context, postID string, comment *domain.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, author_id, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		comment.ID, postID, comment.Author.ID, comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *PostRepo) GetComment(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT c.id, c.author_id, u.name, u.avatar, c.content, c.created_at
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.id = ? AND c.post_id = ?`, commentID, postID)

	var cm domain.Comment
	err := row.Scan(&cm.ID, &cm.Author.ID, &cm.Author.Name, &cm.Author.Avatar,
		&cm.Content, &cm.CreatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return &cm, nil
}

func (r *PostRepo) DeleteComment(ctx context.Context, postID, commentID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ? AND post_id = ?`, commentID, postID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	var tags string
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.ImageURL,
		&p.Author.ID, &p.Author.Name, &p.Author.Avatar, &tags, &p.Published,
		&p.Views, &p.CreatedAt, &p.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan post: %w", err)
	}
	p.Tags = splitTags(tags)
	return &p, nil
}

func (r *PostRepo) collect(ctx context.Context, rows *sql.Rows) ([]domain.Post, error) {
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	for i := range posts {
		if err := r.hydrate(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// hydrate loads likes and comments and refreshes the derived counts.
func (r *PostRepo) hydrate(ctx context.Context, post *domain.Post) error {
	likeRows, err := r.db.QueryContext(ctx,
		`SELECT user_id, created_at FROM post_likes
		 WHERE post_id = ? ORDER BY created_at`, post.ID)
	if err != nil {
		return fmt.Errorf("query likes: %w", err)
	}
	defer likeRows.Close()

	post.Likes = []domain.Like{}
	for likeRows.Next() {
		var l domain.Like
		if err := likeRows.Scan(&l.UserID, &l.CreatedAt); err != nil {
			return fmt.Errorf("scan like: %w", err)
		}
		post.Likes = append(post.Likes, l)
	}
	if err := likeRows.Err(); err != nil {
		return fmt.Errorf("iterate likes: %w", err)
	}

	commentRows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.author_id, u.name, u.avatar, c.content, c.created_at
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = ? ORDER BY c.created_at, c.id`, post.ID)
	if err != nil {
		return fmt.Errorf("query comments: %w", err)
	}
	defer commentRows.Close()

	post.Comments = []domain.Comment{}
	for commentRows.Next() {
		var cm domain.Comment
		err := commentRows.Scan(&cm.ID, &cm.Author.ID, &cm.Author.Name,
			&cm.Author.Avatar, &cm.Content, &cm.CreatedAt)
		if err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		post.Comments = append(post.Comments, cm)
	}
	if err := commentRows.Err(); err != nil {
		return fmt.Errorf("iterate comments: %w", err)
	}

	post.LikeCount = len(post.Likes)
	post.CommentCount = len(post.Comments)
	return nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
