package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/player"
	"github.com/ayusman/mudra/internal/pose"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// tickInterval is the render clock period, ~60 ticks per second. The
// player itself is frame-rate independent; the interval only sets stream
// granularity.
const tickInterval = 16 * time.Millisecond

// FrameHandler is the rendering collaborator of the engine: it implements
// player.Mixer and broadcasts every resolved keyframe to connected
// WebSocket clients, where the browser-side skeleton maps finger and palm
// transforms onto bone names. Its ticker goroutine is also the render
// clock that drives player.Update.
type FrameHandler struct {
	player  *player.Controller
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex

	frameMu sync.Mutex
	frame   pose.Keyframe
	clock   float64

	stop chan struct{}
	once sync.Once
}

// NewFrameHandler creates a FrameHandler driving the given player.
func NewFrameHandler(p *player.Controller) *FrameHandler {
	h := &FrameHandler{
		player:  p,
		clients: make(map[*websocket.Conn]bool),
		stop:    make(chan struct{}),
	}
	go h.run()
	return h
}

// Advance implements player.Mixer by advancing the stream clock.
func (h *FrameHandler) Advance(delta float64) {
	h.frameMu.Lock()
	h.clock += delta
	h.frameMu.Unlock()
}

// Apply implements player.Mixer by recording the resolved keyframe for
// the next broadcast.
func (h *FrameHandler) Apply(frame pose.Keyframe) {
	h.frameMu.Lock()
	h.frame = frame
	h.frameMu.Unlock()
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *FrameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// run drives the player at the tick interval and broadcasts the latest
// keyframe to all connected clients.
func (h *FrameHandler) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now

			h.player.Update(delta)

			h.mu.RLock()
			noClients := len(h.clients) == 0
			h.mu.RUnlock()
			if noClients {
				continue
			}

			h.frameMu.Lock()
			frame := h.frame
			h.frameMu.Unlock()

			msg, _ := json.Marshal(map[string]any{
				"frame":     frame,
				"status":    h.player.Status(),
				"timestamp": now.UnixMilli(),
			})

			h.mu.RLock()
			for conn := range h.clients {
				conn.WriteMessage(websocket.TextMessage, msg)
			}
			h.mu.RUnlock()
		}
	}
}

// Close stops the render clock. The handler must not be used afterwards.
func (h *FrameHandler) Close() {
	h.once.Do(func() { close(h.stop) })
}
