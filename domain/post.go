package domain

import "time"

// Author is the denormalized author snapshot embedded in posts and comments.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Like records that a user liked a post. At most one per user per post.
type Like struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a single comment on a post, ordered by insertion.
type Comment struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is the central aggregate of the platform.
//
// LikeCount and CommentCount are derived from Likes and Comments and must be
// kept equal to the collection sizes on every mutation path, including
// realtime application on clients.
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Excerpt      string    `json:"excerpt"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Author       Author    `json:"author"`
	Tags         []string  `json:"tags"`
	Published    bool      `json:"published"`
	Views        int       `json:"views"`
	Likes        []Like    `json:"likes"`
	Comments     []Comment `json:"comments"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LikedBy reports whether the given user currently likes the post.
func (p Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the post. Stores hand out clones so callers
// can never mutate shared state behind the store's back.
func (p Post) Clone() Post {
	cp := p
	if p.Tags != nil {
		cp.Tags = append([]string(nil), p.Tags...)
	}
	if p.Likes != nil {
		cp.Likes = append([]Like(nil), p.Likes...)
	}
	if p.Comments != nil {
		cp.Comments = append([]Comment(nil), p.Comments...)
	}
	return cp
}
