package handlers

import (
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// RouteMiddleware - middleware, которые хэндлеры вешают на свои группы
type RouteMiddleware struct {
	Auth      gin.HandlerFunc
	AdminOnly gin.HandlerFunc
	RateLimit gin.HandlerFunc
}

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler   *HealthHandler
	AuthHandler     *AuthHandler
	ProfileHandler  *ProfileHandler
	EventHandler    *EventHandler
	InterestHandler *InterestHandler
	AdminHandler    *AdminHandler
	MessageHandler  *MessageHandler
	StatsHandler    *StatsHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		HealthHandler:   NewHealthHandler(base),
		AuthHandler:     NewAuthHandler(base, container.AuthService),
		ProfileHandler:  NewProfileHandler(base, container.ProfileService),
		EventHandler:    NewEventHandler(base, container.EventService),
		InterestHandler: NewInterestHandler(base, container.InterestService),
		AdminHandler:    NewAdminHandler(base, container.ApprovalService),
		MessageHandler:  NewMessageHandler(base, container.MessageService),
		StatsHandler:    NewStatsHandler(base, container.StatsService),
	}
}
