package ws

import (
	"context"
	"sync"
	"time"

	"github.com/MihneaE/slot-machine-microservices/pkg/logger"

	"github.com/gorilla/websocket"
)

type CloseReason string

const (
	ReasonWriteError CloseReason = "write_error"
	ReasonPingError  CloseReason = "ping_error"
	ReasonReadError  CloseReason = "read_error"
	ReasonReplaced   CloseReason = "replaced_by_new_connection"
	ReasonShutdown   CloseReason = "server_shutdown"
	ReasonBufferFull CloseReason = "buffer_full"
	ReasonTimeout    CloseReason = "timeout"
)

// Connection represents a WebSocket connection for one player
type Connection struct {
	PlayerID  string
	Conn      *websocket.Conn
	Send      chan []byte
	manager   *Manager
	closeOnce sync.Once
}

// Manager manages all WebSocket connections, keyed by player
type Manager struct {
	clients    map[string]*Connection
	register   chan *Connection
	unregister chan *Connection
	mu         sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
	}
}

// Register registers a new connection
func (m *Manager) Register(conn *websocket.Conn, playerID string) *Connection {
	c := &Connection{
		PlayerID: playerID,
		Conn:     conn,
		Send:     make(chan []byte, 1024),
		manager:  m,
	}
	m.register <- c
	return c
}

// Run starts the manager loop
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			// A player holds at most one connection; a new one replaces the old
			if old, ok := m.clients[client.PlayerID]; ok {
				old.CloseWithReason(ReasonReplaced, nil)
			}
			m.clients[client.PlayerID] = client
			m.mu.Unlock()

		case client := <-m.unregister:
			m.mu.Lock()
			if cur, ok := m.clients[client.PlayerID]; ok && cur == client {
				delete(m.clients, client.PlayerID)
				client.CloseWithReason(ReasonShutdown, nil)
			}
			m.mu.Unlock()
		}
	}
}

// Broadcast sends a message to all connected local clients
func (m *Manager) Broadcast(message []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, client := range m.clients {
		select {
		case client.Send <- message:
		default:
			// Buffer full, drop client; the unregister channel cleans up
			client.CloseWithReason(ReasonBufferFull, nil)
		}
	}
}

// SendToPlayer sends a message to a specific player, if connected
func (m *Manager) SendToPlayer(playerID string, message []byte) {
	m.mu.RLock()
	client, ok := m.clients[playerID]
	m.mu.RUnlock()

	if ok {
		select {
		case client.Send <- message:
			return
		default:
			// Buffer full, try to wait a bit
		}

		select {
		case client.Send <- message:
			return
		case <-time.After(time.Second * 5):
			// Client is too slow, close to avoid blocking the server
			client.CloseWithReason(ReasonTimeout, nil)
		}
	}
}

// Shutdown closes all connections
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, client := range m.clients {
		client.CloseWithReason(ReasonShutdown, nil)
	}
}

// CloseWithReason closes the connection with a reason
func (c *Connection) CloseWithReason(r CloseReason, err error) {
	c.closeOnce.Do(func() {
		logger.Error(context.Background()).
			Str("player_id", c.PlayerID).
			Str("reason", string(r)).
			Err(err).
			Msg("ws connection closed")
		c.Conn.Close()
	})
}

// WritePump pumps messages from the manager to the websocket connection
func (c *Connection) WritePump() {
	ticker := time.NewTicker(54 * time.Second) // Ping period
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				c.CloseWithReason(ReasonWriteError, err)
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				c.CloseWithReason(ReasonWriteError, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.CloseWithReason(ReasonPingError, err)
				return
			}
		}
	}
}

// ReadPump pumps messages from the websocket connection to the handler
func (c *Connection) ReadPump(handleMessage func(string, []byte)) {
	var readErr error
	defer func() {
		c.manager.unregister <- c
		c.CloseWithReason(ReasonReadError, readErr)
	}()

	c.Conn.SetReadLimit(4096)                                // Max message size
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second)) // Pong wait
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				readErr = err
			}
			break
		}

		handleMessage(c.PlayerID, message)
	}
}
