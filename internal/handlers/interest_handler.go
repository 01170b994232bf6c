package handlers

import (
	"net/http"

	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// InterestHandler - отклики инфлюенсеров и приглашения брендов
type InterestHandler struct {
	*BaseHandler
	interestService services.InterestService
}

func NewInterestHandler(base *BaseHandler, interestService services.InterestService) *InterestHandler {
	return &InterestHandler{
		BaseHandler:     base,
		interestService: interestService,
	}
}

func (h *InterestHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddleware) {
	events := rg.Group("/events/:id")
	events.Use(mw.Auth)
	{
		events.POST("/interest", mw.RateLimit, h.ExpressInterest)
		events.GET("/interest", h.GetInterestState)
		events.DELETE("/interest", h.CancelInterest)

		events.POST("/invite", mw.RateLimit, h.Invite)
		events.GET("/invite", h.ListInterests)

		events.POST("/interests/:interestId/approve", h.ApproveInterest)
	}
}

// ExpressInterest godoc
// @Summary Откликнуться на событие
// @Description Одобренный инфлюенсер откликается на опубликованное событие. Тело необязательно.
// @Tags interests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID события"
// @Param request body dto.ExpressInterestRequest false "Сообщение бренду"
// @Success 201 {object} models.EventInterest
// @Failure 400 {object} apperrors.ErrorResponse "Дубликат, мало подписчиков или нет мест"
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /events/{id}/interest [post]
func (h *InterestHandler) ExpressInterest(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	var req dto.ExpressInterestRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	interest, err := h.interestService.ExpressInterest(h.GetDB(c), rc, eventID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interest)
}

func (h *InterestHandler) GetInterestState(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	state, err := h.interestService.GetInterestState(h.GetDB(c), rc, eventID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *InterestHandler) CancelInterest(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	if err := h.interestService.CancelInterest(h.GetDB(c), rc, eventID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interest cancelled"})
}

// Invite godoc
// @Summary Пригласить одобренного инфлюенсера
// @Tags interests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID события"
// @Param request body dto.InviteRequest true "Приглашение"
// @Success 201 {object} models.EventInterest
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /events/{id}/invite [post]
func (h *InterestHandler) Invite(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	var req dto.InviteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	interest, err := h.interestService.Invite(h.GetDB(c), rc, eventID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interest)
}

func (h *InterestHandler) ListInterests(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	response, err := h.interestService.ListInterests(h.GetDB(c), rc, eventID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *InterestHandler) ApproveInterest(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	eventID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrEventNotFound)
	if !ok {
		return
	}

	interestID, ok := h.ParseID(c, "interestId", c.Param("interestId"), apperrors.ErrInterestNotFound)
	if !ok {
		return
	}

	interest, err := h.interestService.ApproveInterest(h.GetDB(c), rc, eventID, interestID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interest)
}
