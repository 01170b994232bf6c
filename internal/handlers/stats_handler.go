package handlers

import (
	"net/http"

	"collabhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	*BaseHandler
	statsService services.StatsService
}

func NewStatsHandler(base *BaseHandler, statsService services.StatsService) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  base,
		statsService: statsService,
	}
}

func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddleware) {
	rg.GET("/brand/stats", mw.Auth, h.GetBrandStats)
}

func (h *StatsHandler) GetBrandStats(c *gin.Context) {
	rc, ok := h.GetRequestContext(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetBrandStats(h.GetDB(c), rc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
