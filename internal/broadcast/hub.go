// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package broadcast is the server half of the push channel: a hub that keeps
// every connected websocket and fans full collection snapshots out to them.
package broadcast

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	sendBufferSize = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	logger *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{clients: make(map[*client]struct{}), logger: log}
}

// Publish encodes snapshot once and queues it for every client. Clients whose
// queue is full are disconnected; they will re-list on reconnect.
func (h *Hub) Publish(snapshot models.Snapshot) {
	msg, err := encode(snapshot)
	if err != nil {
		h.logger.Err(err).Msg("failed to encode snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn().Str("remote", c.conn.RemoteAddr().String()).Msg("slow push client dropped")
			delete(h.clients, c)
			c.close()
		}
	}
}

// Serve registers conn, sends it initial and then pumps queued snapshots until
// the peer goes away or the hub closes. It blocks for the connection's
// lifetime and closes conn on return.
func (h *Hub) Serve(conn *websocket.Conn, initial models.Snapshot) {
	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	msg, err := encode(initial)
	if err != nil {
		h.logger.Err(err).Msg("failed to encode initial snapshot")
		_ = conn.Close()
		return
	}
	c.send <- msg

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("push client connected")

	go h.readPump(c)
	h.writePump(c)

	h.unregister(c)
	h.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("push client disconnected")
}

// Clients returns the number of connected sockets.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, c)
	c.close()
}

// readPump discards client messages; the channel is receive-only for
// clients. It exists to process control frames and detect disconnects.
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func encode(snapshot models.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot.Clone())
	if err != nil {
		return nil, err
	}
	return json.Marshal(models.PushMessage{Event: models.SnapshotEvent, Data: data})
}
