package app

import "github.com/blogcraft/blogcraft/domain"

// PostsStore is the process-wide projection of posts the TUI renders from:
// the browse feed, the currently open post, and the user's own posts.
//
// Single-writer discipline: only the Bubble Tea update loop calls the
// mutating methods below, so REST completions and realtime events are
// serialized by the runtime's message queue and no locking is needed.
// Readers get deep copies and can never mutate store state.
type PostsStore struct {
	localUserID string

	posts   []domain.Post
	current *domain.Post
	myPosts []domain.Post
}

// NewPostsStore creates an empty store.
func NewPostsStore() *PostsStore {
	return &PostsStore{}
}

// SetLocalUser records the authenticated user's id, used to suppress
// realtime comment events for the user's own actions.
func (s *PostsStore) SetLocalUser(id string) {
	s.localUserID = id
}

// --- REST fetch outcomes ---

// SetPosts replaces the browse feed wholesale (full refetch).
func (s *PostsStore) SetPosts(posts []domain.Post) {
	s.posts = clonePosts(posts)
}

// SetMyPosts replaces the user's own posts wholesale.
func (s *PostsStore) SetMyPosts(posts []domain.Post) {
	s.myPosts = clonePosts(posts)
}

// SetCurrent replaces the open post (detail fetch).
func (s *PostsStore) SetCurrent(p domain.Post) {
	cp := p.Clone()
	s.current = &cp
}

// ClearCurrent drops the open post (navigation away).
func (s *PostsStore) ClearCurrent() {
	s.current = nil
}

// --- REST mutation outcomes ---

// ApplyCreated prepends a freshly created post to the feed and my-posts.
func (s *PostsStore) ApplyCreated(p domain.Post) {
	s.posts = append([]domain.Post{p.Clone()}, s.posts...)
	s.myPosts = append([]domain.Post{p.Clone()}, s.myPosts...)
}

// ApplyUpdated replaces the post in every view that holds it.
func (s *PostsStore) ApplyUpdated(p domain.Post) {
	s.eachView(p.ID, func(dst *domain.Post) {
		*dst = p.Clone()
	})
}

// ApplyDeleted removes the post from every view. Clears the open post if it
// is the one deleted.
func (s *PostsStore) ApplyDeleted(id string) {
	s.posts = removePost(s.posts, id)
	s.myPosts = removePost(s.myPosts, id)
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
}

// ApplyLikeLocal folds the REST response of the user's own like toggle into
// every view: the authoritative count plus the user's like membership, so
// LikedBy stays truthful for the local user.
func (s *PostsStore) ApplyLikeLocal(r LikeResult, likedAt domain.Like) {
	s.eachView(r.PostID, func(p *domain.Post) {
		p.LikeCount = r.LikeCount
		withoutMe := make([]domain.Like, 0, len(p.Likes))
		for _, l := range p.Likes {
			if l.UserID != s.localUserID {
				withoutMe = append(withoutMe, l)
			}
		}
		if r.IsLiked {
			withoutMe = append(withoutMe, likedAt)
		}
		p.Likes = withoutMe
	})
}

// ApplyCommentAdded folds a successful comment creation (or a remote
// commentAdded event) into every view. A comment id already present is left
// alone, guarding against double delivery.
func (s *PostsStore) ApplyCommentAdded(postID string, c domain.Comment) {
	s.eachView(postID, func(p *domain.Post) {
		for _, existing := range p.Comments {
			if existing.ID == c.ID {
				return
			}
		}
		p.Comments = append(p.Comments, c)
		p.CommentCount = len(p.Comments)
	})
}

// ApplyCommentDeleted removes one comment from every view. The count follows
// the collection, so it never drifts and never goes negative.
func (s *PostsStore) ApplyCommentDeleted(postID, commentID string) {
	s.eachView(postID, func(p *domain.Post) {
		kept := p.Comments[:0]
		for _, c := range p.Comments {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		p.Comments = kept
		p.CommentCount = len(p.Comments)
	})
}

// --- Realtime events ---

// ApplyEvent folds a broadcast event into the store.
//
// Comment events from the local user are suppressed: the REST response
// handler already applied them, and applying the broadcast too would double
// count. Post and like events apply unconditionally — the acting tab already
// converged via its REST response, and a second tab belonging to the same
// user must pick the event up normally.
func (s *PostsStore) ApplyEvent(ev domain.Event) {
	switch ev := ev.(type) {
	case domain.PostCreated:
		if s.hasPost(ev.Post.ID) {
			// Own create already applied via REST; don't insert twice.
			s.ApplyUpdated(ev.Post)
			return
		}
		s.posts = append([]domain.Post{ev.Post.Clone()}, s.posts...)
		if ev.Post.Author.ID == s.localUserID {
			s.myPosts = append([]domain.Post{ev.Post.Clone()}, s.myPosts...)
		}
	case domain.PostUpdated:
		s.ApplyUpdated(ev.Post)
	case domain.PostDeleted:
		s.ApplyDeleted(ev.ID)
	case domain.PostLiked:
		// Only the count is authoritative for receivers; IsLiked describes
		// the actor, not us.
		s.eachView(ev.PostID, func(p *domain.Post) {
			p.LikeCount = ev.LikeCount
		})
	case domain.CommentAdded:
		if ev.ActorID == s.localUserID {
			return
		}
		s.ApplyCommentAdded(ev.PostID, ev.Comment)
	case domain.CommentDeleted:
		if ev.ActorID == s.localUserID {
			return
		}
		s.ApplyCommentDeleted(ev.PostID, ev.CommentID)
	}
}

// --- Reads ---

// Posts returns a copy of the browse feed.
func (s *PostsStore) Posts() []domain.Post {
	return clonePosts(s.posts)
}

// MyPosts returns a copy of the user's own posts.
func (s *PostsStore) MyPosts() []domain.Post {
	return clonePosts(s.myPosts)
}

// Current returns a copy of the open post, if any.
func (s *PostsStore) Current() (domain.Post, bool) {
	if s.current == nil {
		return domain.Post{}, false
	}
	return s.current.Clone(), true
}

// --- Helpers ---

// eachView runs fn against every copy of the post the store holds, keeping
// the three views convergent.
func (s *PostsStore) eachView(postID string, fn func(*domain.Post)) {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			fn(&s.posts[i])
		}
	}
	for i := range s.myPosts {
		if s.myPosts[i].ID == postID {
			fn(&s.myPosts[i])
		}
	}
	if s.current != nil && s.current.ID == postID {
		fn(s.current)
	}
}

func (s *PostsStore) hasPost(id string) bool {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return true
		}
	}
	for i := range s.myPosts {
		if s.myPosts[i].ID == id {
			return true
		}
	}
	return false
}

func removePost(posts []domain.Post, id string) []domain.Post {
	kept := posts[:0]
	for _, p := range posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return kept
}

func clonePosts(posts []domain.Post) []domain.Post {
	out := make([]domain.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

// UniqueComments deduplicates a comment list by id, keeping first
// occurrences in order. Render-side guard against any double delivery that
// slips past event suppression.
func UniqueComments(in []domain.Comment) []domain.Comment {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Comment, 0, len(in))
	for _, c := range in {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
