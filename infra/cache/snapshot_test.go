package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/blogcraft/blogcraft/domain"
)

func TestFeedCache_RoundTrip(t *testing.T) {
	c := NewFeedCache(filepath.Join(t.TempDir(), "nested", "feed"))

	if _, ok := c.Load(); ok {
		t.Fatal("empty cache returned a snapshot")
	}

	posts := []domain.Post{
		{ID: "p1", Title: "Hello", LikeCount: 2},
		{ID: "p2", Title: "World"},
	}
	if err := c.Save(posts); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, ok := c.Load()
	if !ok {
		t.Fatal("Load() found no snapshot after Save")
	}
	if len(got) != 2 || got[0].ID != "p1" || got[0].LikeCount != 2 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestFeedCache_RejectsStaleAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	stalePath := filepath.Join(dir, "stale")
	data, err := msgpack.Marshal(Snapshot{
		Posts:   []domain.Post{{ID: "old"}},
		SavedAt: time.Now().Add(-48 * time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stalePath, data, 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := NewFeedCache(stalePath).Load(); ok {
		t.Error("stale snapshot was accepted")
	}

	corruptPath := filepath.Join(dir, "corrupt")
	if err := os.WriteFile(corruptPath, []byte("not msgpack"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := NewFeedCache(corruptPath).Load(); ok {
		t.Error("corrupt snapshot was accepted")
	}
}
