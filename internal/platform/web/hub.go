// Package web streams session frames to browser spectators over websockets.
package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

const (
	writeWait      = 2 * time.Second
	sendBufferSize = 16
)

// ObstacleFrame is one obstacle as sent to spectators.
type ObstacleFrame struct {
	ID        int64   `json:"id"`
	X         float64 `json:"x"`
	GapTop    float64 `json:"gapTop"`
	GapBottom float64 `json:"gapBottom"`
	Label     string  `json:"label,omitempty"`
}

// Frame is the JSON message broadcast for every rendered snapshot.
type Frame struct {
	Phase     string          `json:"phase"`
	Tick      int             `json:"tick"`
	Score     int             `json:"score"`
	Best      int             `json:"best"`
	NewBest   bool            `json:"newBest,omitempty"`
	Profile   string          `json:"profile"`
	Countdown int             `json:"countdown,omitempty"` // 0 during "GO!"
	EndReason string          `json:"endReason,omitempty"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	VY        float64         `json:"vy"`
	Radius    float64         `json:"radius"`
	Tilt      float64         `json:"tilt"`
	Obstacles []ObstacleFrame `json:"obstacles"`
}

// NewFrame converts a snapshot into its wire form.
func NewFrame(snap flappy.Snapshot) Frame {
	f := Frame{
		Phase:     snap.Phase.String(),
		Tick:      snap.Round.Ticks,
		Score:     snap.Round.Score,
		Best:      snap.Round.BestScore,
		NewBest:   snap.NewBest(),
		Profile:   snap.Profile.Name,
		Countdown: snap.CountdownSeconds(),
		Width:     snap.Field.Width,
		Height:    snap.Field.Height,
		X:         snap.Character.X,
		Y:         snap.Character.Y,
		VY:        snap.Character.VY,
		Radius:    snap.Character.Radius,
		Tilt:      snap.Tilt(),
		Obstacles: make([]ObstacleFrame, 0, len(snap.Obstacles)),
	}
	if snap.EndReason != flappy.EndNone {
		f.EndReason = snap.EndReason.String()
	}
	for _, o := range snap.Obstacles {
		f.Obstacles = append(f.Obstacles, ObstacleFrame{
			ID:        int64(o.ID),
			X:         o.X,
			GapTop:    o.GapTop,
			GapBottom: o.GapBottom(snap.Profile.GapSize),
			Label:     o.Label,
		})
	}
	return f
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every connected spectator. It implements
// flappy.Renderer and http.Handler. A slow spectator loses frames instead
// of slowing the game down.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger
	every    int

	mu      sync.RWMutex
	clients map[*client]struct{}
	frames  int
	closed  bool
}

var (
	_ flappy.Renderer = (*Hub)(nil)
	_ http.Handler    = (*Hub)(nil)
)

// NewHub creates a hub that broadcasts every n-th frame (n < 1 means all).
func NewHub(logger *log.Logger, every int) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	if every < 1 {
		every = 1
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		every:   every,
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers a spectator.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("spectator connected", "remote", conn.RemoteAddr(), "spectators", count)

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop discards incoming messages and unregisters the spectator when
// the connection goes away.
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Debug("spectator write failed", "error", err)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("spectator disconnected", "spectators", count)
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RenderFrame implements flappy.Renderer.
func (h *Hub) RenderFrame(snap flappy.Snapshot) {
	h.mu.Lock()
	h.frames++
	skip := h.frames%h.every != 0 || len(h.clients) == 0
	h.mu.Unlock()
	if skip {
		return
	}

	h.Broadcast(NewFrame(snap))
}

// Broadcast sends one frame to every spectator without blocking.
func (h *Hub) Broadcast(f Frame) {
	msg, err := json.Marshal(f)
	if err != nil {
		h.logger.Warn("could not encode frame", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Spectator is behind; drop this frame for it
		}
	}
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
