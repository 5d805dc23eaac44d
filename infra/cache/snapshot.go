package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/blogcraft/blogcraft/domain"
)

// Snapshot is the last fetched feed, persisted so the TUI can render
// something immediately on startup while the live fetch runs.
type Snapshot struct {
	Posts   []domain.Post `msgpack:"posts"`
	SavedAt time.Time     `msgpack:"savedAt"`
}

// maxSnapshotAge guards against rendering a feed so stale it misleads.
const maxSnapshotAge = 24 * time.Hour

// FeedCache persists feed snapshots to a single msgpack file.
type FeedCache struct {
	path string
}

// NewFeedCache creates a cache at the given file path.
func NewFeedCache(path string) *FeedCache {
	return &FeedCache{path: path}
}

// Save writes the current feed. Errors are returned but callers may ignore
// them; the cache is an optimization, not a store of record.
func (c *FeedCache) Save(posts []domain.Post) error {
	data, err := msgpack.Marshal(Snapshot{Posts: posts, SavedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Load returns the cached feed, or ok=false when there is no usable
// snapshot (missing, corrupt, or older than a day).
func (c *FeedCache) Load() ([]domain.Post, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	if time.Since(snap.SavedAt) > maxSnapshotAge {
		return nil, false
	}
	return snap.Posts, true
}
