package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mapleleafu/lanerunner/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 1 << 12
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Connection represents a WebSocket connection and the user it belongs to.
// The send channel is never closed; closed tells the pumps to stop.
type Connection struct {
	ws        *websocket.Conn
	send      chan []byte
	closed    chan struct{}
	closeOnce sync.Once
	userID    string
	username  string
}

func newConnection(ws *websocket.Conn, userID, username string) *Connection {
	return &Connection{
		ws:       ws,
		send:     make(chan []byte, sendBuffer),
		closed:   make(chan struct{}),
		userID:   userID,
		username: username,
	}
}

func (c *Connection) close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// enqueue hands a message to the write pump without blocking. It returns
// false if the connection is closed or its buffer is full.
func (c *Connection) enqueue(message []byte) bool {
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *Connection) sendJSON(msgType string, data interface{}) {
	message, err := json.Marshal(models.Envelope{Type: msgType, Data: data})
	if err != nil {
		log.Printf("Error marshalling %s message: %v", msgType, err)
		return
	}
	if !c.enqueue(message) {
		log.Printf("Dropped %s message for user %s", msgType, c.userID)
	}
}

func (c *Connection) readPump(handle func([]byte)) {
	defer c.close()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Error reading message from user %s: %v", c.userID, err)
			}
			return
		}
		handle(message)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case <-c.closed:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case message := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("error writing message: %v", err)
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}
