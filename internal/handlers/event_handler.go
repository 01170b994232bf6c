package handlers

import (
	"net/http"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	*BaseHandler
	eventService services.EventService
}

func NewEventHandler(base *BaseHandler, eventService services.EventService) *EventHandler {
	return &EventHandler{
		BaseHandler:  base,
		eventService: eventService,
	}
}

func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddleware) {
	events := rg.Group("/events")
	events.Use(mw.Auth)
	{
		events.POST("", h.CreateEvent)
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)
		events.PUT("/:id", h.UpdateEvent)
		events.PUT("/:id/status", h.ChangeStatus)
		events.DELETE("/:id", h.DeleteEvent)
	}
}

// CreateEvent godoc
// @Summary Создать событие
// @Description Бренд с профилем создает событие в статусе DRAFT или PUBLISHED
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Событие"
// @Success 201 {object} models.Event
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !h.BindJSON(c, &req) {
		return
	}

	event, err := h.eventService.CreateEvent(h.GetDB(c), rc, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents godoc
// @Summary Список событий
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус"
// @Param category query string false "Категория"
// @Param search query string false "Поиск по названию и описанию"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.EventListResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return
	}
	query.Page, query.PageSize = ParsePagination(c)

	response, err := h.eventService.ListEvents(h.GetDB(c), rc, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetEvent godoc
// @Summary Получить событие
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID события"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	response, err := h.eventService.GetEvent(h.GetDB(c), rc, eventID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !h.BindJSON(c, &req) {
		return
	}

	event, err := h.eventService.UpdateEvent(h.GetDB(c), rc, eventID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ChangeStatus(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	var req dto.UpdateEventStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	event, err := h.eventService.ChangeStatus(h.GetDB(c), rc, eventID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Удалить событие вместе с откликами
// @Tags events
// @Security BearerAuth
// @Param id path string true "ID события"
// @Success 200
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(h.GetDB(c), rc, eventID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
