package routes

import (
	"collabhub_backend/internal/handlers"
	"collabhub_backend/internal/logger"
	"collabhub_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	mw handlers.RouteMiddleware,
) {
	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.HealthHandler.RegisterRoutes(api, mw)
		appHandlers.AuthHandler.RegisterRoutes(api, mw)
		appHandlers.ProfileHandler.RegisterRoutes(api, mw)
		appHandlers.EventHandler.RegisterRoutes(api, mw)
		appHandlers.InterestHandler.RegisterRoutes(api, mw)
		appHandlers.AdminHandler.RegisterRoutes(api, mw)
		appHandlers.MessageHandler.RegisterRoutes(api, mw)
		appHandlers.StatsHandler.RegisterRoutes(api, mw)
	}

	// Регистрация WebSocket
	if wsHandler != nil {
		api.GET("/ws", mw.Auth, wsHandler.ServeWS)
		logger.Info("WebSocket route /api/v1/ws registered")
	}
}
