package domain

import (
	"encoding/json"
	"fmt"
)

// EventType names a realtime event on the wire.
type EventType string

const (
	EventPostCreated    EventType = "postCreated"
	EventPostUpdated    EventType = "postUpdated"
	EventPostDeleted    EventType = "postDeleted"
	EventPostLiked      EventType = "postLiked"
	EventCommentAdded   EventType = "commentAdded"
	EventCommentDeleted EventType = "commentDeleted"
)

// Event is a discrete notification of a committed state change, broadcast to
// all connected sessions. One concrete type per wire event; the payload is
// the minimal data needed to reconstruct the affected post's new state.
type Event interface {
	Type() EventType
}

// PostCreated carries the full new post.
type PostCreated struct {
	Post Post `json:"post"`
}

// PostUpdated carries the full updated post.
type PostUpdated struct {
	Post Post `json:"post"`
}

// PostDeleted carries only the deleted post's id.
type PostDeleted struct {
	ID string `json:"id"`
}

// PostLiked carries the authoritative like count after a toggle. IsLiked
// reflects the acting user's resulting state, not the receiver's.
type PostLiked struct {
	PostID    string `json:"postId"`
	LikeCount int    `json:"likeCount"`
	IsLiked   bool   `json:"isLiked"`
}

// CommentAdded carries the new comment plus the acting user's id, which
// receivers use to suppress double application of their own action.
type CommentAdded struct {
	PostID  string  `json:"postId"`
	Comment Comment `json:"comment"`
	ActorID string  `json:"actorId"`
}

// CommentDeleted carries the removed comment's id plus the acting user's id.
type CommentDeleted struct {
	PostID    string `json:"postId"`
	CommentID string `json:"commentId"`
	ActorID   string `json:"actorId"`
}

func (PostCreated) Type() EventType    { return EventPostCreated }
func (PostUpdated) Type() EventType    { return EventPostUpdated }
func (PostDeleted) Type() EventType    { return EventPostDeleted }
func (PostLiked) Type() EventType      { return EventPostLiked }
func (CommentAdded) Type() EventType   { return EventCommentAdded }
func (CommentDeleted) Type() EventType { return EventCommentDeleted }

// EncodeEvent marshals an event's payload for the wire. The event name
// travels separately (SSE event field).
func EncodeEvent(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

// DecodeEvent validates and unmarshals a wire event at the channel boundary.
// Unknown names and malformed payloads return an error; the stream layer
// drops those rather than letting them reach the reconciler.
func DecodeEvent(name string, data []byte) (Event, error) {
	switch EventType(name) {
	case EventPostCreated:
		var ev PostCreated
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		if ev.Post.ID == "" {
			return nil, fmt.Errorf("decoding %s: missing post id", name)
		}
		return ev, nil
	case EventPostUpdated:
		var ev PostUpdated
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		if ev.Post.ID == "" {
			return nil, fmt.Errorf("decoding %s: missing post id", name)
		}
		return ev, nil
	case EventPostDeleted:
		var ev PostDeleted
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		if ev.ID == "" {
			return nil, fmt.Errorf("decoding %s: missing id", name)
		}
		return ev, nil
	case EventPostLiked:
		var ev PostLiked
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		if ev.PostID == "" || ev.LikeCount < 0 {
			return nil, fmt.Errorf("decoding %s: invalid payload", name)
		}
		return ev, nil
	case EventCommentAdded:
		var ev CommentAdded
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		if ev.PostID == "" || ev.Comment.ID == "" {
			return nil, fmt.Errorf("decoding %s: invalid payload", name)
		}
		return ev, nil
	case EventCommentDeleted:
		var ev CommentDeleted
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		if ev.PostID == "" || ev.CommentID == "" {
			return nil, fmt.Errorf("decoding %s: invalid payload", name)
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("unknown event %q", name)
	}
}
