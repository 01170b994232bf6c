package services

import (
	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/config"
	"collabhub_backend/internal/email"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/validator"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	EventService        EventService
	InterestService     InterestService
	ApprovalService     ApprovalService
	MessageService      MessageService
	StatsService        StatsService
	NotificationService NotificationService
}

// Dependencies - внешние зависимости, из которых собираются сервисы
type Dependencies struct {
	Config        *config.Config
	Tokens        *auth.TokenManager
	EmailProvider email.Provider
	Publisher     MessagePublisher
	Validator     *validator.Validator
}

// NewServiceContainer создает репозитории и связывает с ними сервисы
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	brandRepo := repositories.NewBrandProfileRepository()
	influencerRepo := repositories.NewInfluencerProfileRepository()
	eventRepo := repositories.NewEventRepository()
	interestRepo := repositories.NewInterestRepository()
	messageRepo := repositories.NewMessageRepository()
	statsRepo := repositories.NewStatsRepository()

	v := deps.Validator
	if v == nil {
		v = validator.New()
	}

	notifier := NewNotificationService(deps.EmailProvider, userRepo, brandRepo, influencerRepo, deps.Config.Email.AppURL)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, brandRepo, influencerRepo, deps.Tokens, v),
		ProfileService:      NewProfileService(brandRepo, influencerRepo, v, deps.Config.Policy),
		EventService:        NewEventService(eventRepo, interestRepo, brandRepo, v),
		InterestService:     NewInterestService(eventRepo, interestRepo, brandRepo, influencerRepo, notifier, v, deps.Config.Policy),
		ApprovalService:     NewApprovalService(influencerRepo, notifier, v),
		MessageService:      NewMessageService(messageRepo, userRepo, deps.Publisher, v),
		StatsService:        NewStatsService(statsRepo, brandRepo),
		NotificationService: notifier,
	}
}
