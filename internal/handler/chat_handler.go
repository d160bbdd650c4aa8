package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/smart-defence/academy-console/internal/chat"
	"github.com/smart-defence/academy-console/internal/middleware"
	"github.com/smart-defence/academy-console/internal/models"
)

// ChatHandler relays the portal chat between the browser and the chat
// gateway, attaching the platform token server-side so it never reaches
// the page.
type ChatHandler struct {
	gatewayURL string
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

// NewChatHandler creates the chat relay handler.
func NewChatHandler(gatewayURL string, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		gatewayURL: gatewayURL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// RegisterRoutes wires the chat route.
func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/portal/chat", h.Relay)
}

// Relay upgrades the browser connection and bridges it to the gateway.
func (h *ChatHandler) Relay(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	gateway := chat.NewClient(h.gatewayURL, session.Token, h.logger)
	if err := gateway.Connect(c.Request.Context()); err != nil {
		c.Status(http.StatusBadGateway)
		return
	}
	defer gateway.Close()

	browser, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer browser.Close()

	// Gateway to browser.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range gateway.Messages() {
			if err := browser.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	// Browser to gateway.
	for {
		var msg models.ChatMessage
		if err := browser.ReadJSON(&msg); err != nil {
			break
		}
		msg.From = session.StudentID
		if err := gateway.Send(msg); err != nil {
			break
		}
	}
	gateway.Close()
	<-done
}
