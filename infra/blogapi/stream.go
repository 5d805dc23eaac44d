package blogapi

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/blogcraft/blogcraft/app"
	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/infra/auth"
)

// maxConnectAttempts caps reconnection. After the cap the stream parks in
// StreamFailed and stays there until the next explicit Connect. Give-up is
// deliberate: the app remains usable on plain REST without live updates.
const maxConnectAttempts = 5

// Stream subscribes to the server's realtime event feed over SSE and owns
// the single live connection for this session.
type Stream struct {
	baseURL string
	tokens  auth.TokenStore
	http    *http.Client

	retryDelay time.Duration

	mu       sync.Mutex
	state    app.StreamState
	attempts int
	cancel   context.CancelFunc
	connID   string

	events chan domain.Event
	states chan app.StreamState
}

// NewStream creates a disconnected stream client sharing the REST client's
// base URL and token store.
func NewStream(client *Client) *Stream {
	return &Stream{
		baseURL: client.BaseURL(),
		tokens:  client.Tokens(),
		// No overall timeout: the response body is a long-lived stream.
		http:       &http.Client{},
		retryDelay: time.Second,
		state:      app.StreamDisconnected,
		events:     make(chan domain.Event, 64),
		states:     make(chan app.StreamState, 8),
	}
}

// Events yields decoded realtime events.
func (s *Stream) Events() <-chan domain.Event { return s.events }

// States yields connection state transitions.
func (s *Stream) States() <-chan app.StreamState { return s.states }

// State returns the current connection state.
func (s *Stream) State() app.StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect opens the event stream. A no-op while connecting or connected.
// Connecting from StreamFailed resets the retry counter.
func (s *Stream) Connect(ctx context.Context) {
	s.mu.Lock()
	if s.state == app.StreamConnecting || s.state == app.StreamConnected {
		s.mu.Unlock()
		return
	}
	s.attempts = 0
	s.setStateLocked(app.StreamConnecting)
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx)
}

// Disconnect closes the stream. Safe to call in any state.
func (s *Stream) Disconnect() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.connID = ""
	if s.state != app.StreamDisconnected {
		s.setStateLocked(app.StreamDisconnected)
	}
	s.mu.Unlock()
}

// run dials and reads the stream, reconnecting on drops until the attempt
// cap is reached. Exactly one StreamFailed is emitted when giving up.
func (s *Stream) run(ctx context.Context) {
	for {
		s.mu.Lock()
		if s.attempts >= maxConnectAttempts {
			s.setStateLocked(app.StreamFailed)
			s.cancel = nil
			s.mu.Unlock()
			return
		}
		s.attempts++
		s.mu.Unlock()

		err := s.dialAndRead(ctx)
		if ctx.Err() != nil {
			// Explicit disconnect already set the state.
			return
		}
		_ = err

		s.mu.Lock()
		if s.state == app.StreamConnected {
			// Established connection dropped; fall back to reconnecting.
			s.connID = ""
			s.setStateLocked(app.StreamConnecting)
		}
		s.mu.Unlock()

		select {
		case <-time.After(s.retryDelay):
		case <-ctx.Done():
			return
		}
	}
}

// dialAndRead opens one SSE connection and pumps events until it drops.
func (s *Stream) dialAndRead(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/realtime/stream", nil)
	if err != nil {
		return fmt.Errorf("creating stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	token, err := s.tokens.AccessToken()
	if err != nil {
		return fmt.Errorf("stream auth: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("dialing stream: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream returned %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var eventName string
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			s.dispatch(eventName, data.String())
			eventName = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
			// Heartbeat comment, ignore.
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	return scanner.Err()
}

// dispatch routes one wire event. The handshake event carries our connection
// id; everything else is decoded at the boundary and dropped if malformed —
// the channel is best-effort and must never destabilize the UI.
func (s *Stream) dispatch(name, data string) {
	if name == "" {
		return
	}
	if name == "connected" {
		var hello struct {
			ConnectionID string `json:"connectionId"`
		}
		if err := json.Unmarshal([]byte(data), &hello); err != nil || hello.ConnectionID == "" {
			return
		}
		s.mu.Lock()
		s.connID = hello.ConnectionID
		s.attempts = 0
		s.setStateLocked(app.StreamConnected)
		s.mu.Unlock()
		return
	}

	ev, err := domain.DecodeEvent(name, []byte(data))
	if err != nil {
		return
	}
	select {
	case s.events <- ev:
	default:
		// Lagging consumer; at-most-once delivery allows dropping.
	}
}

// setStateLocked records and publishes a state change. Callers hold s.mu.
func (s *Stream) setStateLocked(state app.StreamState) {
	if s.state == state {
		return
	}
	s.state = state
	select {
	case s.states <- state:
	default:
	}
}

// JoinPost registers interest in a post's room. A no-op unless connected;
// the server accepts repeat joins idempotently.
func (s *Stream) JoinPost(ctx context.Context, postID string) error {
	return s.roomCall(ctx, postID, "join")
}

// LeavePost leaves a post's room. Leaving an unjoined room is a no-op.
func (s *Stream) LeavePost(ctx context.Context, postID string) error {
	return s.roomCall(ctx, postID, "leave")
}

func (s *Stream) roomCall(ctx context.Context, postID, action string) error {
	s.mu.Lock()
	connID := s.connID
	state := s.state
	s.mu.Unlock()
	if state != app.StreamConnected || connID == "" {
		return nil
	}

	body := strings.NewReader(fmt.Sprintf(`{"connectionId":%q}`, connID))
	path := fmt.Sprintf("%s/api/realtime/rooms/%s/%s", s.baseURL, url.PathEscape(postID), action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, body)
	if err != nil {
		return fmt.Errorf("creating room request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, err := s.tokens.AccessToken(); err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	if err != nil {
		return fmt.Errorf("%s room: %w", action, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s room returned %d", action, resp.StatusCode)
	}
	return nil
}
