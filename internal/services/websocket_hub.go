package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WebSocketHub fans scenario audit events and guardrail status changes out to
// connected dashboards.
type WebSocketHub struct {
	clients    map[*WebSocketClient]bool
	register   chan *WebSocketClient
	unregister chan *WebSocketClient
	broadcast  chan []byte
	mu         sync.RWMutex
	logger     *logrus.Logger
}

// WebSocketClient is one connected dashboard.
type WebSocketClient struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	hub  *WebSocketHub
}

// HubMessage is the envelope pushed to clients.
type HubMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

const (
	MessageTypeAuditEvent      = "scenario_audit_event"
	MessageTypeGuardrailStatus = "guardrail_status"
)

func NewWebSocketHub(logger *logrus.Logger) *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*WebSocketClient]bool),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
		broadcast:  make(chan []byte),
		logger:     logger,
	}
}

// Run handles client registration and broadcasting. Started once from main.
func (h *WebSocketHub) Run() {
	h.logger.Info("Starting WebSocket hub")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.WithField("client_id", client.ID).Info("Client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.WithField("client_id", client.ID).Info("Client unregistered")

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer; drop the connection rather than block
					// the hub.
					go func(c *WebSocketClient) { h.unregister <- c }(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub.
func (h *WebSocketHub) Register(client *WebSocketClient) {
	client.hub = h
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *WebSocketHub) Unregister(client *WebSocketClient) {
	h.unregister <- client
}

// BroadcastAuditEvents pushes one scenario run's audit trail, one message per
// event, preserving the fixed event order.
func (h *WebSocketHub) BroadcastAuditEvents(runID string, events []string) {
	for _, event := range events {
		h.broadcastMessage(MessageTypeAuditEvent, map[string]string{
			"run_id": runID,
			"event":  event,
		})
	}
}

// BroadcastGuardrailStatus pushes a badge status change.
func (h *WebSocketHub) BroadcastGuardrailStatus(status string) {
	h.broadcastMessage(MessageTypeGuardrailStatus, map[string]string{"status": status})
}

func (h *WebSocketHub) broadcastMessage(messageType string, data interface{}) {
	payload, err := json.Marshal(HubMessage{
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		h.logger.Errorf("Failed to marshal hub message: %v", err)
		return
	}
	h.broadcast <- payload
}

// WritePump drains the client's send channel to the connection. Runs in its
// own goroutine per client.
func (c *WebSocketClient) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// ReadPump discards inbound frames and unregisters on disconnect.
func (c *WebSocketClient) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
