package spectate

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

type frame struct {
	Tick  int    `json:"tick"`
	State string `json:"state"`
}

func dialWatch(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + WatchPath
	ws, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func receive(t *testing.T, ws *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, websocket.JSON.Receive(ws, &f))
	return f
}

func TestHubBroadcastsToViewers(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Mux())
	defer srv.Close()

	a := dialWatch(t, srv)
	b := dialWatch(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(frame{Tick: 6, State: "playing"}))

	assert.Equal(t, frame{Tick: 6, State: "playing"}, receive(t, a))
	assert.Equal(t, frame{Tick: 6, State: "playing"}, receive(t, b))
}

func TestHubReplaysLatestOnConnect(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Mux())
	defer srv.Close()

	require.NoError(t, hub.Publish(frame{Tick: 1, State: "serve"}))
	require.NoError(t, hub.Publish(frame{Tick: 2, State: "playing"}))

	ws := dialWatch(t, srv)
	assert.Equal(t, frame{Tick: 2, State: "playing"}, receive(t, ws))
}

func TestHubDropsDisconnectedViewers(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Mux())
	defer srv.Close()

	ws := dialWatch(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, ws.Close())
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)

	assert.NoError(t, hub.Publish(frame{Tick: 3}), "publishing with no viewers is fine")
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Mux())
	defer srv.Close()

	_ = dialWatch(t, srv) // never reads
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 500 {
			_ = hub.Publish(frame{Tick: i})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow viewer")
	}
}

func TestHubPublishRejectsUnencodable(t *testing.T) {
	hub := NewHub(nil)
	err := hub.Publish(make(chan int))
	assert.Error(t, err)
}

func TestHubClose(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Mux())
	defer srv.Close()

	_ = dialWatch(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Count())
	assert.NoError(t, hub.Publish(frame{Tick: 9}))
}

func TestHealthz(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok viewers=0\n", string(body))
}
