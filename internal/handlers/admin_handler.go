package handlers

import (
	"net/http"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AdminHandler - очередь модерации инфлюенсеров
type AdminHandler struct {
	*BaseHandler
	approvalService services.ApprovalService
}

func NewAdminHandler(base *BaseHandler, approvalService services.ApprovalService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:     base,
		approvalService: approvalService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddleware) {
	admin := rg.Group("/admin")
	admin.Use(mw.Auth, mw.AdminOnly)
	{
		admin.GET("/influencers", h.ListQueue)
		admin.POST("/influencers/:id/approve", h.Approve)
		admin.POST("/influencers/:id/waiting-list", h.WaitList)
	}
}

func (h *AdminHandler) ListQueue(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	query := dto.ApprovalQueueQuery{
		Status:   c.DefaultQuery("status", string(models.ApprovalStatusPending)),
		Page:     page,
		PageSize: pageSize,
	}

	response, err := h.approvalService.ListQueue(h.GetDB(c), rc, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Approve godoc
// @Summary Одобрить профиль инфлюенсера
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID профиля"
// @Success 200 {object} models.InfluencerProfile
// @Failure 400 {object} apperrors.ErrorResponse "Профиль уже одобрен"
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/influencers/{id}/approve [post]
func (h *AdminHandler) Approve(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	profileID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrInfluencerProfileNotFound)
	if !ok {
		return
	}

	profile, err := h.approvalService.Approve(h.GetDB(c), rc, profileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// WaitList godoc
// @Summary Перевести профиль в лист ожидания
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID профиля"
// @Param request body dto.WaitingListRequest false "Причина"
// @Success 200 {object} models.InfluencerProfile
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /admin/influencers/{id}/waiting-list [post]
func (h *AdminHandler) WaitList(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	profileID, ok := h.ParseID(c, "id", c.Param("id"), apperrors.ErrInfluencerProfileNotFound)
	if !ok {
		return
	}

	var req dto.WaitingListRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	profile, err := h.approvalService.WaitList(h.GetDB(c), rc, profileID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
