package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type envelope struct {
	ownerID uuid.UUID
	payload []byte
}

// Hub fans events out to the live sessions of one owner at a time.
// Sessions are keyed by owner so one user's events never reach another
// user's sockets.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set := h.clients[client.ownerID]
			if set == nil {
				set = make(map[*Client]bool)
				h.clients[client.ownerID] = set
			}
			set[client] = true
			total := h.totalLocked()
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | owner=%s total_clients=%d", client.ownerID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if set, ok := h.clients[client.ownerID]; ok {
				if _, ok := set[client]; ok {
					delete(set, client)
					close(client.send)
					if len(set) == 0 {
						delete(h.clients, client.ownerID)
					}
				}
			}
			total := h.totalLocked()
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | owner=%s total_clients=%d", client.ownerID, total)
			}

		case msg := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients[msg.ownerID]))
			for c := range h.clients[msg.ownerID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- msg.payload:
				default:
					h.unregister <- client
				}
			}

			if h.logger != nil && len(snapshot) > 0 {
				h.logger.Printf("WS broadcast | owner=%s clients=%d", msg.ownerID, len(snapshot))
			}
		}
	}
}

// totalLocked counts sessions across all owners; callers hold h.mutex.
func (h *Hub) totalLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

func (h *Hub) Broadcast(ownerID uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- envelope{ownerID: ownerID, payload: message}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS broadcast dropped | reason=buffer_full")
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.totalLocked()
}
