package server

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// writeTimeout bounds a single websocket write; a client that cannot accept
// a document within it is dropped.
const writeTimeout = 3 * time.Second

// hub fans scene documents out to the connected websocket clients.
type hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// broadcast writes message to every client. A client whose write fails or
// times out is closed and dropped; the rest still receive the message.
func (h *hub) broadcast(message []byte) {
	h.mu.Lock()
	for conn := range h.clients {
		h.write(conn, message)
	}
	h.mu.Unlock()
}

// send writes message to one client. It shares the hub lock with broadcast,
// so a connection never sees two concurrent writers.
func (h *hub) send(conn *websocket.Conn, message []byte) {
	h.mu.Lock()
	h.write(conn, message)
	h.mu.Unlock()
}

// write must be called with the hub lock held.
func (h *hub) write(conn *websocket.Conn, message []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	err := conn.Write(ctx, websocket.MessageText, message)
	cancel()
	if err != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "")
		delete(h.clients, conn)
	}
}
