package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/pkg/metrics"
)

const (
	EventMenuUpdated = "menu.updated"

	writeWait = 10 * time.Second
	sendQueue = 16
)

// MenuHub pushes change notifications to screens displaying a menu.
type MenuHub struct {
	clients    map[uint]map[*client]bool // menuID -> subscribers
	broadcast  chan uint
	register   chan *client
	unregister chan *client
	done       chan struct{}
	closeOnce  sync.Once
	mu         sync.Mutex
	log        logrus.FieldLogger
	upgrader   websocket.Upgrader
}

// client is one subscribed connection. Only Run closes send; writePump owns
// the connection's writes.
type client struct {
	conn   *websocket.Conn
	menuID uint
	send   chan Event
}

// Event is the message written to subscribers.
type Event struct {
	MenuID uint   `json:"menuId"`
	Event  string `json:"event"`
}

func NewMenuHub(log logrus.FieldLogger) *MenuHub {
	return &MenuHub{
		clients:    make(map[uint]map[*client]bool),
		broadcast:  make(chan uint, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run serves register, unregister and broadcast until Close is called.
// Subscribers whose queue is full are dropped instead of waited on.
func (h *MenuHub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.menuID] == nil {
				h.clients[c.menuID] = make(map[*client]bool)
			}
			h.clients[c.menuID][c] = true
			h.mu.Unlock()
			metrics.LiveSubscribers(1)

		case c := <-h.unregister:
			h.drop(c)

		case menuID := <-h.broadcast:
			h.mu.Lock()
			subs := make([]*client, 0, len(h.clients[menuID]))
			for c := range h.clients[menuID] {
				subs = append(subs, c)
			}
			h.mu.Unlock()

			ev := Event{MenuID: menuID, Event: EventMenuUpdated}
			for _, c := range subs {
				select {
				case c.send <- ev:
				default:
					h.log.WithField("menuId", menuID).Warn("ws subscriber too slow, dropping")
					h.drop(c)
				}
			}

		case <-h.done:
			h.mu.Lock()
			for menuID, subs := range h.clients {
				for c := range subs {
					close(c.send)
					metrics.LiveSubscribers(-1)
				}
				delete(h.clients, menuID)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *MenuHub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.menuID][c]; ok {
		delete(h.clients[c.menuID], c)
		if len(h.clients[c.menuID]) == 0 {
			delete(h.clients, c.menuID)
		}
		close(c.send)
		metrics.LiveSubscribers(-1)
	}
}

// Publish notifies every subscriber of menuID. A nil or closed hub is a no-op.
func (h *MenuHub) Publish(menuID uint) {
	if h == nil {
		return
	}
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- menuID:
	case <-h.done:
	}
}

// Subscribers returns the number of open connections watching menuID.
func (h *MenuHub) Subscribers(menuID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[menuID])
}

// Close disconnects every subscriber and stops Run.
func (h *MenuHub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// HandleWebSocket upgrades the request and subscribes it to menuID. The
// caller checks that the menu exists.
func (h *MenuHub) HandleWebSocket(c *gin.Context, menuID uint) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}

	sub := &client{conn: conn, menuID: menuID, send: make(chan Event, sendQueue)}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(sub)
	go h.listen(sub)
}

// writePump writes queued events until the hub closes send, then closes the
// connection.
func (h *MenuHub) writePump(c *client) {
	defer c.conn.Close()
	for ev := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			h.log.WithError(err).WithField("menuId", c.menuID).Warn("ws write failed")
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// listen discards client messages and unregisters once the peer goes away.
func (h *MenuHub) listen(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WithError(err).WithField("menuId", c.menuID).Debug("ws read error")
			}
			break
		}
	}
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
