package hub

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/utils"
)

// Event types
const (
	EventTableUpdated = "tableUpdated"
)

// TableUpdated is broadcast whenever a session's status or total changes.
// Clients re-fetch their region snapshot on "open" and drop their cached
// session reference on terminal statuses.
type TableUpdated struct {
	SessionID uint                 `json:"sessionId"`
	Status    models.SessionStatus `json:"status"`
	Total     float64              `json:"total"`
}

// Publisher is what the services broadcast through. Injected so tests can
// substitute a no-op or recording implementation.
type Publisher interface {
	PublishTableUpdated(ev TableUpdated)
}

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected client and fans each event out to all of them.
// Delivery is at-most-once: a failed write is logged and the event is
// simply not delivered to that client.
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// RegisterClient adds a connection to the fan-out set.
func (h *Hub) RegisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = struct{}{}
}

// UnregisterClient removes and closes a connection.
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// PublishTableUpdated broadcasts a session state change to every client.
func (h *Hub) PublishTableUpdated(ev TableUpdated) {
	h.broadcast(Message{
		Event: EventTableUpdated,
		Data:  ev,
	})
}

func (h *Hub) broadcast(msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}

// NopPublisher discards every event. Used where no hub is wired up.
type NopPublisher struct{}

func (NopPublisher) PublishTableUpdated(TableUpdated) {}
