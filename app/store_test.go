package app

import (
	"testing"
	"time"

	"github.com/blogcraft/blogcraft/domain"
)

func samplePost(id, authorID string) domain.Post {
	return domain.Post{
		ID:        id,
		Title:     "Post " + id,
		Content:   "Content of " + id,
		Author:    domain.Author{ID: authorID, Name: "Author " + authorID},
		Published: true,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func seededStore(localUser string) *PostsStore {
	s := NewPostsStore()
	s.SetLocalUser(localUser)
	s.SetPosts([]domain.Post{samplePost("p1", "u1"), samplePost("p2", "u2")})
	s.SetMyPosts([]domain.Post{samplePost("p1", "u1")})
	s.SetCurrent(samplePost("p1", "u1"))
	return s
}

// countsFor collects (likeCount, commentCount) for one post across all
// views that hold it. Used to assert convergence.
func countsFor(s *PostsStore, id string) [][2]int {
	var out [][2]int
	for _, p := range s.Posts() {
		if p.ID == id {
			out = append(out, [2]int{p.LikeCount, p.CommentCount})
		}
	}
	for _, p := range s.MyPosts() {
		if p.ID == id {
			out = append(out, [2]int{p.LikeCount, p.CommentCount})
		}
	}
	if cur, ok := s.Current(); ok && cur.ID == id {
		out = append(out, [2]int{cur.LikeCount, cur.CommentCount})
	}
	return out
}

func assertConverged(t *testing.T, s *PostsStore, id string) {
	t.Helper()
	counts := countsFor(s, id)
	if len(counts) == 0 {
		t.Fatalf("post %s not present in any view", id)
	}
	for _, c := range counts[1:] {
		if c != counts[0] {
			t.Fatalf("views diverged for %s: %v", id, counts)
		}
	}
}

func TestApplyEvent_ViewsConverge(t *testing.T) {
	s := seededStore("u1")

	s.ApplyEvent(domain.PostLiked{PostID: "p1", LikeCount: 3, IsLiked: true})
	assertConverged(t, s, "p1")

	s.ApplyEvent(domain.CommentAdded{
		PostID:  "p1",
		Comment: domain.Comment{ID: "c1", Content: "hi", Author: domain.Author{ID: "u2"}},
		ActorID: "u2",
	})
	assertConverged(t, s, "p1")

	if cur, _ := s.Current(); cur.LikeCount != 3 || cur.CommentCount != 1 {
		t.Fatalf("current post counts = (%d,%d), want (3,1)", cur.LikeCount, cur.CommentCount)
	}
}

func TestApplyLikeLocal_RoundTripIsIdempotent(t *testing.T) {
	s := seededStore("u1")
	now := domain.Like{UserID: "u1", CreatedAt: time.Now()}

	before, _ := s.Current()

	s.ApplyLikeLocal(LikeResult{PostID: "p1", LikeCount: 1, IsLiked: true}, now)
	mid, _ := s.Current()
	if mid.LikeCount != 1 || !mid.LikedBy("u1") {
		t.Fatalf("after like: count=%d likedBy=%v", mid.LikeCount, mid.LikedBy("u1"))
	}

	s.ApplyLikeLocal(LikeResult{PostID: "p1", LikeCount: 0, IsLiked: false}, now)
	after, _ := s.Current()
	if after.LikeCount != before.LikeCount || after.LikedBy("u1") {
		t.Fatalf("like round trip not idempotent: count=%d likedBy=%v", after.LikeCount, after.LikedBy("u1"))
	}
	assertConverged(t, s, "p1")
}

func TestApplyEvent_OwnCommentSuppressed(t *testing.T) {
	s := seededStore("u1")

	// Local REST handler applied the comment first.
	s.ApplyCommentAdded("p1", domain.Comment{ID: "c1", Content: "mine", Author: domain.Author{ID: "u1"}})

	// The broadcast of our own action must not double count.
	s.ApplyEvent(domain.CommentAdded{
		PostID:  "p1",
		Comment: domain.Comment{ID: "c1", Content: "mine", Author: domain.Author{ID: "u1"}},
		ActorID: "u1",
	})

	cur, _ := s.Current()
	if cur.CommentCount != 1 || len(cur.Comments) != 1 {
		t.Fatalf("own comment double-applied: count=%d len=%d", cur.CommentCount, len(cur.Comments))
	}
}

func TestApplyEvent_RemoteCommentAppliedExactlyOnce(t *testing.T) {
	s := seededStore("u1")
	ev := domain.CommentAdded{
		PostID:  "p1",
		Comment: domain.Comment{ID: "c9", Content: "theirs", Author: domain.Author{ID: "u2"}},
		ActorID: "u2",
	}

	s.ApplyEvent(ev)
	s.ApplyEvent(ev) // double delivery must be deduplicated by id

	cur, _ := s.Current()
	if cur.CommentCount != 1 || len(cur.Comments) != 1 {
		t.Fatalf("remote comment applied %d times, want 1", len(cur.Comments))
	}
}

func TestApplyCommentDeleted_RemovesExactlyOne(t *testing.T) {
	s := seededStore("u1")
	s.ApplyCommentAdded("p1", domain.Comment{ID: "c1"})
	s.ApplyCommentAdded("p1", domain.Comment{ID: "c2"})

	s.ApplyEvent(domain.CommentDeleted{PostID: "p1", CommentID: "c1", ActorID: "u2"})

	cur, _ := s.Current()
	if len(cur.Comments) != 1 || cur.Comments[0].ID != "c2" || cur.CommentCount != 1 {
		t.Fatalf("unexpected comments after delete: %+v count=%d", cur.Comments, cur.CommentCount)
	}

	// Deleting an already-gone comment never drives the count negative.
	s.ApplyEvent(domain.CommentDeleted{PostID: "p1", CommentID: "c1", ActorID: "u2"})
	s.ApplyEvent(domain.CommentDeleted{PostID: "p1", CommentID: "c2", ActorID: "u2"})
	s.ApplyEvent(domain.CommentDeleted{PostID: "p1", CommentID: "c2", ActorID: "u2"})
	cur, _ = s.Current()
	if cur.CommentCount != 0 {
		t.Fatalf("comment count = %d, want 0", cur.CommentCount)
	}
}

func TestApplyEvent_PostCreatedPrependsForOtherSession(t *testing.T) {
	s := seededStore("u1")
	created := samplePost("p3", "u9")
	created.Title = "Fresh"

	s.ApplyEvent(domain.PostCreated{Post: created})

	posts := s.Posts()
	if len(posts) != 3 || posts[0].ID != "p3" || posts[0].Title != "Fresh" || posts[0].Author.ID != "u9" {
		t.Fatalf("expected new post at front, got %+v", posts[0])
	}
	if len(s.MyPosts()) != 1 {
		t.Fatalf("someone else's post leaked into my posts")
	}
}

func TestApplyEvent_OwnPostCreatedNotDuplicated(t *testing.T) {
	s := seededStore("u1")
	created := samplePost("p3", "u1")

	// Acting tab: REST response first, then our own broadcast arrives.
	s.ApplyCreated(created)
	s.ApplyEvent(domain.PostCreated{Post: created})

	count := 0
	for _, p := range s.Posts() {
		if p.ID == "p3" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("own created post appears %d times in feed, want 1", count)
	}
}

func TestTwoTabsConvergeOnLike(t *testing.T) {
	// Tab 1 is the actor, tab 2 learns via broadcast. Both belong to u1.
	tab1 := seededStore("u1")
	tab2 := seededStore("u1")

	res := LikeResult{PostID: "p1", LikeCount: 1, IsLiked: true}
	tab1.ApplyLikeLocal(res, domain.Like{UserID: "u1", CreatedAt: time.Now()})
	tab2.ApplyEvent(domain.PostLiked{PostID: "p1", LikeCount: 1, IsLiked: true})

	c1, _ := tab1.Current()
	c2, _ := tab2.Current()
	if c1.LikeCount != 1 || c2.LikeCount != 1 {
		t.Fatalf("tabs diverged: %d vs %d", c1.LikeCount, c2.LikeCount)
	}
}

func TestApplyEvent_PostDeletedClearsCurrent(t *testing.T) {
	s := seededStore("u1")

	s.ApplyEvent(domain.PostDeleted{ID: "p1"})

	if _, ok := s.Current(); ok {
		t.Fatal("current post should be cleared when it is deleted remotely")
	}
	for _, p := range s.Posts() {
		if p.ID == "p1" {
			t.Fatal("deleted post still present in feed")
		}
	}
	if len(s.MyPosts()) != 0 {
		t.Fatal("deleted post still present in my posts")
	}
}

func TestApplyEvent_PostUpdatedTouchesEveryView(t *testing.T) {
	s := seededStore("u1")
	updated := samplePost("p1", "u1")
	updated.Title = "Edited"
	updated.LikeCount = 7

	s.ApplyEvent(domain.PostUpdated{Post: updated})

	for _, p := range s.Posts() {
		if p.ID == "p1" && p.Title != "Edited" {
			t.Fatal("feed view stale after update")
		}
	}
	my := s.MyPosts()
	if my[0].Title != "Edited" {
		t.Fatal("my-posts view stale after update")
	}
	cur, _ := s.Current()
	if cur.Title != "Edited" || cur.LikeCount != 7 {
		t.Fatal("current view stale after update")
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s := seededStore("u1")

	posts := s.Posts()
	posts[0].Title = "tampered"
	posts[0].Comments = append(posts[0].Comments, domain.Comment{ID: "evil"})

	fresh := s.Posts()
	if fresh[0].Title == "tampered" || len(fresh[0].Comments) != 0 {
		t.Fatal("external mutation reached store state")
	}
}

func TestUniqueComments(t *testing.T) {
	in := []domain.Comment{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "c"}, {ID: "b"}}
	out := UniqueComments(in)
	if len(out) != 3 || out[0].ID != "a" || out[1].ID != "b" || out[2].ID != "c" {
		t.Fatalf("unexpected dedup result: %+v", out)
	}
}
