package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mapleleafu/lanerunner/models"
)

// Hub maintains the set of active connections and broadcasts messages to the connections.
type Hub struct {
	// Registered connections.
	connections map[*Connection]bool

	// Messages for every connection.
	broadcast chan []byte

	register   chan *Connection
	unregister chan *Connection
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		broadcast:   make(chan []byte, 64),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		connections: make(map[*Connection]bool),
		done:        make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for connection := range h.connections {
				connection.close()
			}
			return
		case connection := <-h.register:
			h.connections[connection] = true
		case connection := <-h.unregister:
			delete(h.connections, connection)
		case message := <-h.broadcast:
			for connection := range h.connections {
				if !connection.enqueue(message) {
					// Too slow to keep up; drop it rather than stall everyone.
					log.Printf("Dropping slow connection of user %s", connection.userID)
					connection.close()
					delete(h.connections, connection)
				}
			}
		}
	}
}

func (h *Hub) Register(c *Connection) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Connection) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a message for every connection. It never blocks; when the
// queue is full the message is dropped.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	message, err := json.Marshal(models.Envelope{Type: msgType, Data: data})
	if err != nil {
		log.Printf("Error marshalling %s broadcast: %v", msgType, err)
		return
	}
	select {
	case h.broadcast <- message:
	default:
		log.Printf("Broadcast queue full, dropping %s", msgType)
	}
}

func (s *Server) announce(a models.Announcement) {
	if s.Hub == nil {
		return
	}
	s.Hub.Broadcast(models.MsgAnnouncement, a)
}
