// Package spectate streams live game snapshots to websocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/websocket"
)

// WatchPath is where viewers connect.
const WatchPath = "/watch"

const (
	writeTimeout = 2 * time.Second
	sendBuffer   = 4 // frames queued per viewer before new ones are dropped
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans snapshots out to connected viewers. Publish never blocks: a viewer
// that falls behind misses frames instead of stalling the game loop.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
	logger  *log.Logger
}

// NewHub creates an empty hub. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// Handler serves one viewer connection until it disconnects.
// The latest snapshot, if any, is sent immediately on connect.
func (h *Hub) Handler() websocket.Handler {
	return func(ws *websocket.Conn) {
		c := &client{conn: ws, send: make(chan []byte, sendBuffer)}
		if !h.add(c) {
			_ = ws.Close()
			return
		}
		defer h.remove(c)

		h.logger.Debug("viewer connected", "remote", ws.Request().RemoteAddr)

		// Viewers never send anything meaningful; reading only detects hangup.
		done := make(chan struct{})
		go func() {
			defer close(done)
			var discard string
			for {
				if err := websocket.Message.Receive(ws, &discard); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg, ok := <-c.send:
				if !ok {
					return
				}
				_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := websocket.Message.Send(ws, string(msg)); err != nil {
					h.logger.Debug("viewer write failed", "err", err)
					return
				}
			case <-done:
				h.logger.Debug("viewer disconnected", "remote", ws.Request().RemoteAddr)
				return
			}
		}
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Publish encodes v as JSON and queues it for every viewer.
func (h *Hub) Publish(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("spectate: failed to encode snapshot: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
	return nil
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every viewer and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// Mux returns an HTTP handler serving the watch endpoint and a health check.
func (h *Hub) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(WatchPath, h.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprintf(w, "ok viewers=%d\n", h.Count())
	})
	return mux
}

// Serve runs the spectator HTTP server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, hub *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           hub.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: %w", err)
	case <-ctx.Done():
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("spectate: shutdown: %w", err)
		}
		return nil
	}
}
