package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/services"
)

type WebSocketHandler struct {
	hub      *services.WebSocketHub
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *services.WebSocketHub, logger *logrus.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS middleware in front of this
			// handler.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection and registers the dashboard with
// the hub.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &services.WebSocketClient{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 64),
	}

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
