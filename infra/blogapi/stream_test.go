package blogapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blogcraft/blogcraft/app"
	"github.com/blogcraft/blogcraft/domain"
)

// stubTokens satisfies auth.TokenStore without touching disk.
type stubTokens struct {
	token string
}

func (s *stubTokens) AccessToken() (string, error) {
	if s.token == "" {
		return "", errors.New("no token")
	}
	return s.token, nil
}
func (s *stubTokens) Save(token string) error { s.token = token; return nil }
func (s *stubTokens) Clear() error            { s.token = ""; return nil }
func (s *stubTokens) HasToken() bool          { return s.token != "" }

func newTestStream(t *testing.T, handler http.Handler) (*Stream, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, &stubTokens{token: "tok"})
	stream := NewStream(client)
	stream.retryDelay = 5 * time.Millisecond
	return stream, srv
}

// sseHandler speaks just enough SSE for the tests: handshake plus a fixed
// set of events, then holds the connection open until the client leaves.
func sseHandler(events []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintf(w, "event: connected\ndata: {\"connectionId\":\"conn-1\"}\n\n")
		flusher.Flush()
		for _, e := range events {
			fmt.Fprint(w, e)
			flusher.Flush()
		}
		<-r.Context().Done()
	})
}

func waitForState(t *testing.T, stream *Stream, want app.StreamState) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-stream.States():
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for state %v (current %v)", want, stream.State())
		}
	}
}

func TestStream_ConnectAndReceive(t *testing.T) {
	stream, _ := newTestStream(t, sseHandler([]string{
		"event: postLiked\ndata: {\"postId\":\"p1\",\"likeCount\":2,\"isLiked\":true}\n\n",
	}))

	stream.Connect(context.Background())
	defer stream.Disconnect()
	waitForState(t, stream, app.StreamConnected)

	select {
	case ev := <-stream.Events():
		liked, ok := ev.(domain.PostLiked)
		if !ok {
			t.Fatalf("unexpected event type %T", ev)
		}
		if liked.PostID != "p1" || liked.LikeCount != 2 {
			t.Fatalf("unexpected payload: %+v", liked)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestStream_MalformedEventsDropped(t *testing.T) {
	stream, _ := newTestStream(t, sseHandler([]string{
		"event: postLiked\ndata: {not json}\n\n",
		"event: bogusEvent\ndata: {}\n\n",
		"event: postDeleted\ndata: {\"id\":\"p9\"}\n\n",
	}))

	stream.Connect(context.Background())
	defer stream.Disconnect()
	waitForState(t, stream, app.StreamConnected)

	// Only the valid postDeleted should come through.
	select {
	case ev := <-stream.Events():
		if _, ok := ev.(domain.PostDeleted); !ok {
			t.Fatalf("malformed event leaked through: %T", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestStream_FailsAfterCapWithSingleNotification(t *testing.T) {
	stream, _ := newTestStream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	stream.Connect(context.Background())
	waitForState(t, stream, app.StreamFailed)

	// No further transitions after Failed: it is terminal until reconnect.
	select {
	case st := <-stream.States():
		t.Fatalf("unexpected state after Failed: %v", st)
	case <-time.After(100 * time.Millisecond):
	}

	if stream.State() != app.StreamFailed {
		t.Fatalf("state = %v, want Failed", stream.State())
	}
}

func TestStream_ConnectResetsFailedState(t *testing.T) {
	healthy := false
	stream, _ := newTestStream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		sseHandler(nil).ServeHTTP(w, r)
	}))

	stream.Connect(context.Background())
	waitForState(t, stream, app.StreamFailed)

	// Explicit reconnect resets the retry counter and can succeed.
	healthy = true
	stream.Connect(context.Background())
	defer stream.Disconnect()
	waitForState(t, stream, app.StreamConnected)
}

func TestStream_ReentrantConnectIsNoOp(t *testing.T) {
	stream, _ := newTestStream(t, sseHandler(nil))

	stream.Connect(context.Background())
	defer stream.Disconnect()
	waitForState(t, stream, app.StreamConnected)

	// A second Connect while connected must not reset the connection.
	stream.Connect(context.Background())
	select {
	case st := <-stream.States():
		t.Fatalf("re-entrant connect caused transition: %v", st)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStream_Disconnect(t *testing.T) {
	stream, _ := newTestStream(t, sseHandler(nil))

	stream.Connect(context.Background())
	waitForState(t, stream, app.StreamConnected)

	stream.Disconnect()
	waitForState(t, stream, app.StreamDisconnected)

	// Disconnect is idempotent.
	stream.Disconnect()
}

func TestStream_RoomCallsNoOpWhenDisconnected(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", &stubTokens{token: "tok"})
	stream := NewStream(client)

	if err := stream.JoinPost(context.Background(), "p1"); err != nil {
		t.Fatalf("JoinPost while disconnected should be a no-op, got %v", err)
	}
	if err := stream.LeavePost(context.Background(), "p1"); err != nil {
		t.Fatalf("LeavePost while disconnected should be a no-op, got %v", err)
	}
}
