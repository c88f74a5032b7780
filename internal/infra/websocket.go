package infra

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// WsManager manages the WebSocket connections of the admin notification feed.
type WsManager struct {
	// Active clients
	clients map[*websocket.Conn]bool

	// Mutex to protect maps
	mu sync.RWMutex

	// Channels for actions
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn

	// sendChannels stores a buffered channel for each client.
	// This helps avoid blocking the broadcasting caller if one client is slow.
	sendChannels map[*websocket.Conn]chan interface{}
}

func NewWsManager() *WsManager {
	return &WsManager{
		clients:      make(map[*websocket.Conn]bool),
		sendChannels: make(map[*websocket.Conn]chan interface{}),
		Register:     make(chan *websocket.Conn),
		Unregister:   make(chan *websocket.Conn),
	}
}

func (manager *WsManager) Start() {
	log.Println("Starting WebSocket Manager...")
	for {
		select {
		case conn := <-manager.Register:
			manager.mu.Lock()
			manager.clients[conn] = true

			// Create a buffered channel for this connection
			sendCh := make(chan interface{}, 256)
			manager.sendChannels[conn] = sendCh

			// Start a dedicated writer goroutine for this connection
			go func(conn *websocket.Conn, ch chan interface{}) {
				for msg := range ch {
					if err := conn.WriteJSON(msg); err != nil {
						// On error, let the connection close and unregister handle it
						log.Printf("WS WriteLoop error: %v", err)
						conn.Close()
						return
					}
				}
			}(conn, sendCh)

			manager.mu.Unlock()
			log.Println("New WebSocket client connected")

		case conn := <-manager.Unregister:
			manager.mu.Lock()
			if _, ok := manager.clients[conn]; ok {
				delete(manager.clients, conn)

				// Cleanup send channel
				if ch, exists := manager.sendChannels[conn]; exists {
					close(ch)
					delete(manager.sendChannels, conn)
				}
			}
			manager.mu.Unlock()
			log.Println("WebSocket client disconnected")
		}
	}
}

// BroadcastToAll pushes a message to every connected client.
func (manager *WsManager) BroadcastToAll(data interface{}) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for conn := range manager.clients {
		if ch, exists := manager.sendChannels[conn]; exists {
			select {
			case ch <- data:
			default:
				// Buffer full: drop message for this specific slow client
			}
		}
	}
}
