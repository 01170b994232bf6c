package handlers

import (
	"net/http"

	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddleware) {
	messages := rg.Group("/messages")
	messages.Use(mw.Auth)
	{
		messages.POST("", mw.RateLimit, h.SendMessage)
		messages.GET("", h.GetMessages)
	}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	message, err := h.messageService.SendMessage(h.GetDB(c), rc, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessages - с ?user={id} возвращает переписку, без него - список диалогов
// (?unread=true оставляет только диалоги с непрочитанными)
func (h *MessageHandler) GetMessages(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if raw := c.Query("user"); raw != "" {
		otherID, ok := h.ParseID(c, "user", raw, apperrors.ErrUserNotFound)
		if !ok {
			return
		}
		response, err := h.messageService.GetConversation(db, rc, otherID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response)
		return
	}

	response, err := h.messageService.GetInbox(db, rc, ParseQueryBool(c, "unread"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
