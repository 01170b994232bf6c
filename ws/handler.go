package ws

import (
	"net/http"

	"collabhub_backend/internal/logger"
	"collabhub_backend/pkg/apperrors"
	"collabhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// Токен проверяется AuthMiddleware до апгрейда
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	Manager *WebSocketManager
}

func NewWebSocketHandler(manager *WebSocketManager) *WebSocketHandler {
	return &WebSocketHandler{
		Manager: manager,
	}
}

// ServeWS - GET /ws. Пользователь берется из контекста, выставленного AuthMiddleware.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := c.GetString(contextkeys.UserIDKey)
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "websocket upgrade failed", err)
		return
	}

	client := newClient(h.Manager, conn, userID)
	if !h.Manager.add(client) {
		conn.Close()
		return
	}
	logger.CtxInfo(c.Request.Context(), "websocket client connected")

	go client.writePump()
	go client.readPump()
}
