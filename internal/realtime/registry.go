package realtime

import "sync"

// Registry tracks which post detail view each session is looking at.
// Membership is bookkeeping only: broadcasts go to every session regardless
// of rooms. The registry exists so future targeted delivery has accurate
// state to start from.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[string]struct{} // postID -> set of connection ids
	conns map[string]map[string]struct{} // connection id -> set of postIDs
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[string]struct{}),
		conns: make(map[string]map[string]struct{}),
	}
}

// Join adds a connection to a post's room. Joining twice is a no-op.
func (r *Registry) Join(connID, postID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[postID] == nil {
		r.rooms[postID] = make(map[string]struct{})
	}
	r.rooms[postID][connID] = struct{}{}
	if r.conns[connID] == nil {
		r.conns[connID] = make(map[string]struct{})
	}
	r.conns[connID][postID] = struct{}{}
}

// Leave removes a connection from a post's room. Leaving a room the
// connection never joined is a no-op.
func (r *Registry) Leave(connID, postID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(connID, postID)
}

// Drop removes a connection from every room it joined. Called when the
// session disconnects.
func (r *Registry) Drop(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for postID := range r.conns[connID] {
		r.leaveLocked(connID, postID)
	}
}

func (r *Registry) leaveLocked(connID, postID string) {
	if members, ok := r.rooms[postID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, postID)
		}
	}
	if joined, ok := r.conns[connID]; ok {
		delete(joined, postID)
		if len(joined) == 0 {
			delete(r.conns, connID)
		}
	}
}

// Members returns the connection ids currently in a post's room.
func (r *Registry) Members(postID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.rooms[postID]))
	for id := range r.rooms[postID] {
		out = append(out, id)
	}
	return out
}
