package relay

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeWait = 5 * time.Second

type client struct {
	conn *websocket.Conn
	// gorilla connections allow one concurrent writer.
	writeMu sync.Mutex
}

func (c *client) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// Hub tracks WebSocket subscribers and fans messages out to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	// onEmpty runs after the last client disconnects.
	onEmpty func()
	logger  zerolog.Logger
}

func NewHub(onEmpty func(), logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		onEmpty: onEmpty,
		logger:  logger,
	}
}

// Serve registers conn and blocks reading from it until the peer goes away.
// Incoming messages are discarded.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{conn: conn}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Str("remote", conn.RemoteAddr().String()).Int("clients", count).Msg("websocket client connected")

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("websocket read failed")
			}
			break
		}
	}

	h.remove(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, present := h.clients[c]
	delete(h.clients, c)
	empty := present && len(h.clients) == 0 && !h.closed
	h.mu.Unlock()

	_ = c.conn.Close()
	if !present {
		return
	}
	h.logger.Debug().Str("remote", c.conn.RemoteAddr().String()).Msg("websocket client disconnected")
	if empty && h.onEmpty != nil {
		h.onEmpty()
	}
}

// Count is the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends data as a text message to every client. Clients that fail
// to receive it are dropped.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, data); err != nil {
			h.logger.Warn().Err(err).Str("remote", c.conn.RemoteAddr().String()).Msg("dropping websocket client")
			h.remove(c)
		}
	}
}

// Close disconnects every client with a going-away close frame.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range targets {
		_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = c.conn.Close()
	}
}
