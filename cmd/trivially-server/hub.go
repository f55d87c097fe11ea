package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/smilemakc/trivially"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans out newly generated Trivia to every connected websocket client,
// grounded on the teacher's hub/client split in
// internal/infrastructure/websocket/client.go.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool

	register   chan *client
	unregister chan *client
	broadcast  chan trivially.Trivia
}

func NewHub() *Hub {
	return &Hub{
		clients:    map[*client]bool{},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan trivially.Trivia, sendBufferSize),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
		case tv := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- tv:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues tv for delivery to every connected client. A full
// broadcast channel drops the update rather than blocking the HTTP request
// that produced it.
func (h *Hub) Broadcast(tv trivially.Trivia) {
	select {
	case h.broadcast <- tv:
	default:
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan trivially.Trivia, sendBufferSize)}
	h.register <- c
	go c.writeLoop()
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan trivially.Trivia
}

func (c *client) writeLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for tv := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(tv); err != nil {
			return
		}
	}
}
