package app

import (
	"context"

	"github.com/blogcraft/blogcraft/domain"
)

// StreamState is the synchronization client's connection state.
type StreamState int

const (
	StreamDisconnected StreamState = iota
	StreamConnecting
	StreamConnected
	// StreamFailed is terminal until the next explicit Connect, which resets
	// the retry counter. Reached after the reconnect cap is exhausted.
	StreamFailed
)

func (s StreamState) String() string {
	switch s {
	case StreamDisconnected:
		return "disconnected"
	case StreamConnecting:
		return "connecting"
	case StreamConnected:
		return "connected"
	case StreamFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StreamService owns the single live realtime connection per session.
// Connect while already connected is a no-op; Disconnect is idempotent.
type StreamService interface {
	// Connect opens the event stream. It returns once the connection attempt
	// is underway; progress is reported through States.
	Connect(ctx context.Context)

	// Disconnect closes the stream and moves to StreamDisconnected.
	Disconnect()

	// Events yields decoded realtime events. Malformed wire events are
	// dropped before they reach this channel.
	Events() <-chan domain.Event

	// States yields connection state transitions, including the single
	// StreamFailed emitted when the retry cap is exhausted.
	States() <-chan StreamState

	// JoinPost subscribes this connection to a post's room. Currently the
	// server broadcasts globally regardless; the call is bookkeeping only.
	JoinPost(ctx context.Context, postID string) error

	// LeavePost leaves a post's room. Leaving an unjoined room is a no-op.
	LeavePost(ctx context.Context, postID string) error
}
