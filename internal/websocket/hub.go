package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/sonicbrief/api/internal/model"
)

// Client represents one WebSocket subscriber watching a brief.
type Client struct {
	BriefID string
	Conn    *websocket.Conn
	Send    chan []byte
}

// Hub fans pipeline events out to subscribers grouped by brief ID. All
// broadcast methods are safe on a nil hub, so workers can run without one.
type Hub struct {
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage

	mu sync.RWMutex
}

// BroadcastMessage represents a message to broadcast.
type BroadcastMessage struct {
	BriefID string
	Message []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.BriefID] == nil {
				h.clients[client.BriefID] = make(map[*Client]bool)
			}
			h.clients[client.BriefID][client] = true
			h.mu.Unlock()
			log.Printf("Client registered for brief %s", client.BriefID)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.BriefID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.clients, client.BriefID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("Client unregistered from brief %s", client.BriefID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			if clients, ok := h.clients[msg.BriefID]; ok {
				for client := range clients {
					select {
					case client.Send <- msg.Message:
					default:
						close(client.Send)
						delete(clients, client)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a new client.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastStatus sends a status transition to all brief subscribers.
func (h *Hub) BroadcastStatus(briefID string, status model.BriefStatus) {
	if h == nil {
		return
	}
	msg := model.WSStatusMessage{
		Type:    model.WSMessageTypeStatus,
		BriefID: briefID,
		Status:  status,
	}
	h.send(briefID, msg)
}

// BroadcastComplete sends the ready event with the audio URL.
func (h *Hub) BroadcastComplete(briefID, audioURL string) {
	if h == nil {
		return
	}
	msg := model.WSCompleteMessage{
		Type:     model.WSMessageTypeComplete,
		BriefID:  briefID,
		Status:   model.StatusReady,
		AudioURL: audioURL,
	}
	h.send(briefID, msg)
}

// BroadcastError sends the terminal error event.
func (h *Hub) BroadcastError(briefID, code, message string) {
	if h == nil {
		return
	}
	msg := model.WSErrorMessage{
		Type:    model.WSMessageTypeError,
		BriefID: briefID,
		Error: model.WSError{
			Code:    code,
			Message: message,
		},
	}
	h.send(briefID, msg)
}

func (h *Hub) send(briefID string, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal websocket message: %v", err)
		return
	}
	h.broadcast <- &BroadcastMessage{
		BriefID: briefID,
		Message: data,
	}
}

// HandleConnection handles a WebSocket connection for one brief.
func (h *Hub) HandleConnection(c *websocket.Conn, briefID string) {
	client := &Client{
		BriefID: briefID,
		Conn:    c,
		Send:    make(chan []byte, 256),
	}

	h.Register(client)
	defer h.Unregister(client)

	// Writer goroutine with keep-alive pings
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case message, ok := <-client.Send:
				if !ok {
					c.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
					return
				}

			case <-ticker.C:
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// Reader loop
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg model.WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		if msg.Type == model.WSMessageTypePing {
			pong := model.WSMessage{Type: model.WSMessageTypePong}
			data, _ := json.Marshal(pong)
			client.Send <- data
		}
	}
}
