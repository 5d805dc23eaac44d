package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blogcraft/blogcraft/domain"
)

func recvEvent(t *testing.T, ch <-chan domain.Event) domain.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestHubBroadcastsToAllSubscribers(t *testing.T) {
	h := NewHub()
	_, ch1 := h.Subscribe()
	_, ch2 := h.Subscribe()

	h.Publish(domain.PostDeleted{ID: "p1"})

	for _, ch := range []<-chan domain.Event{ch1, ch2} {
		ev := recvEvent(t, ch)
		deleted, ok := ev.(domain.PostDeleted)
		assert.True(t, ok)
		assert.Equal(t, "p1", deleted.ID)
	}
}

func TestHubPreservesOrderPerSubscriber(t *testing.T) {
	h := NewHub()
	_, ch := h.Subscribe()

	h.Publish(domain.PostLiked{PostID: "p1", LikeCount: 1})
	h.Publish(domain.PostLiked{PostID: "p1", LikeCount: 2})
	h.Publish(domain.PostDeleted{ID: "p1"})

	assert.Equal(t, domain.EventPostLiked, recvEvent(t, ch).Type())
	liked := recvEvent(t, ch).(domain.PostLiked)
	assert.Equal(t, 2, liked.LikeCount)
	assert.Equal(t, domain.EventPostDeleted, recvEvent(t, ch).Type())
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	id, ch := h.Subscribe()

	h.Unsubscribe(id)

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.Count())

	// unknown and repeated ids are ignored
	h.Unsubscribe(id)
	h.Unsubscribe("no-such-conn")
}

func TestHubUnsubscribedSessionMissesEvents(t *testing.T) {
	h := NewHub()
	id, _ := h.Subscribe()
	h.Unsubscribe(id)

	h.Publish(domain.PostDeleted{ID: "p1"})

	_, ch := h.Subscribe()
	h.Publish(domain.PostDeleted{ID: "p2"})
	deleted := recvEvent(t, ch).(domain.PostDeleted)
	assert.Equal(t, "p2", deleted.ID)
}

func TestHubDropsEventsForSlowSubscriber(t *testing.T) {
	h := NewHub()
	_, slow := h.Subscribe()

	// fill the buffer and keep publishing; Publish must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			h.Publish(domain.PostDeleted{ID: "p"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
	assert.Equal(t, subscriberBuffer, len(slow))
}
