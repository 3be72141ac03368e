// Package live fans out score updates to WebSocket subscribers. The feed
// is read-only for clients: scoring happens over HTTP, the socket only
// carries what the authoritative path has accepted.
package live

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"boxcricket/internal/domain"
	"boxcricket/internal/observability"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Per-client buffered updates before the client is dropped as slow.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Update message types.
const (
	MsgTypeBallRecorded = "BALL_RECORDED"
	MsgTypeBallUndone   = "BALL_UNDONE"
)

// Update is one message on the feed.
type Update struct {
	Type      string                   `json:"type"`
	InningsID string                   `json:"inningsId"`
	Score     domain.InningsScoreState `json:"score"`
	Ball      *domain.Ball             `json:"ball,omitempty"`
}

// client is one connected subscriber.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of subscribers per innings and broadcasts
// updates to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{} // inningsID -> clients
	metrics *observability.Metrics
}

// NewHub creates a new Hub.
func NewHub(metrics *observability.Metrics) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		metrics: metrics,
	}
}

// Broadcast sends one update to every subscriber of the innings. Slow
// clients are disconnected rather than allowed to stall the feed.
func (h *Hub) Broadcast(u Update) {
	data, err := json.Marshal(u)
	if err != nil {
		log.Printf("marshal live update: %v", err)
		return
	}

	h.mu.RLock()
	subscribers := make([]*client, 0, len(h.clients[u.InningsID]))
	for c := range h.clients[u.InningsID] {
		subscribers = append(subscribers, c)
	}
	h.mu.RUnlock()

	for _, c := range subscribers {
		select {
		case c.send <- data:
			if h.metrics != nil {
				h.metrics.LiveMessagesSent.Inc()
			}
		default:
			h.remove(u.InningsID, c)
			close(c.send)
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to the
// innings feed until the peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, inningsID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(inningsID, c)

	go h.writePump(inningsID, c)
	go h.readPump(inningsID, c)
}

// SubscriberCount reports the number of clients on an innings feed.
func (h *Hub) SubscriberCount(inningsID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[inningsID])
}

func (h *Hub) add(inningsID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[inningsID] == nil {
		h.clients[inningsID] = make(map[*client]struct{})
	}
	h.clients[inningsID][c] = struct{}{}
	if h.metrics != nil {
		h.metrics.LiveClientsConnected.Inc()
	}
}

// remove detaches the client; safe to call twice.
func (h *Hub) remove(inningsID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[inningsID][c]; !ok {
		return
	}
	delete(h.clients[inningsID], c)
	if len(h.clients[inningsID]) == 0 {
		delete(h.clients, inningsID)
	}
	if h.metrics != nil {
		h.metrics.LiveClientsConnected.Dec()
	}
}

// readPump discards inbound frames and watches for disconnect.
func (h *Hub) readPump(inningsID string, c *client) {
	defer func() {
		h.remove(inningsID, c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(inningsID string, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.remove(inningsID, c)
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
