package realtime

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/internal/config"
	"github.com/blogcraft/blogcraft/internal/realtime"
	"github.com/blogcraft/blogcraft/internal/util"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
}

func newTestServer(t *testing.T) (*httptest.Server, *realtime.Hub, *realtime.Registry, string) {
	t.Helper()
	hub := realtime.NewHub()
	registry := realtime.NewRegistry()

	router := gin.New()
	NewHandler(hub, registry).Register(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	token, err := util.GenerateToken("u1")
	require.NoError(t, err)
	return srv, hub, registry, token
}

// sseEvent is one parsed frame off the stream.
type sseEvent struct {
	name string
	data string
}

func readFrame(t *testing.T, lines <-chan string) sseEvent {
	t.Helper()
	var ev sseEvent
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("timed out reading stream frame")
		case line, ok := <-lines:
			if !ok {
				t.Fatal("stream closed while reading frame")
			}
			switch {
			case line == "" && ev.name != "":
				return ev
			case strings.HasPrefix(line, "event:"):
				ev.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				ev.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
		}
	}
}

func openStream(t *testing.T, srv *httptest.Server, token string) (*http.Response, <-chan string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/realtime/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A single reader goroutine owns the response body; spawning one per
	// frame would leave stale readers racing over the stream.
	lines := make(chan string)
	go func() {
		r := bufio.NewReader(resp.Body)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				close(lines)
				return
			}
			lines <- strings.TrimRight(line, "\n")
		}
	}()
	return resp, lines
}

func TestStreamHandshakeAndBroadcast(t *testing.T) {
	srv, hub, _, token := newTestServer(t)
	_, r := openStream(t, srv, token)

	hello := readFrame(t, r)
	assert.Equal(t, "connected", hello.name)
	var payload struct {
		ConnectionID string `json:"connectionId"`
	}
	require.NoError(t, json.Unmarshal([]byte(hello.data), &payload))
	assert.NotEmpty(t, payload.ConnectionID)
	assert.Equal(t, 1, hub.Count())

	hub.Publish(domain.PostLiked{PostID: "p1", LikeCount: 3, IsLiked: true})

	frame := readFrame(t, r)
	assert.Equal(t, "postLiked", frame.name)
	ev, err := domain.DecodeEvent(frame.name, []byte(frame.data))
	require.NoError(t, err)
	liked := ev.(domain.PostLiked)
	assert.Equal(t, 3, liked.LikeCount)
}

func TestStreamRequiresAuth(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/realtime/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoomJoinLeaveEndpoints(t *testing.T) {
	srv, _, registry, token := newTestServer(t)

	call := func(action string) int {
		body := bytes.NewBufferString(`{"connectionId":"c1"}`)
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/realtime/rooms/p1/"+action, body)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, call("join"))
	assert.Equal(t, []string{"c1"}, registry.Members("p1"))

	assert.Equal(t, http.StatusOK, call("leave"))
	assert.Empty(t, registry.Members("p1"))
}
