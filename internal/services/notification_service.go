package services

import (
	"sync"

	"collabhub_backend/internal/email"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// NotificationService отправляет письма о событиях воркфлоу.
// Доставка best effort: ошибки только логируются и не влияют на ответ API.
// Вызывается после коммита транзакции, с пулом, а не с tx. Получатели
// ищутся синхронно, само письмо уходит в отдельной горутине.
type NotificationService interface {
	InterestReceived(db *gorm.DB, event *models.Event, interest *models.EventInterest)
	InvitationSent(db *gorm.DB, event *models.Event, profile *models.InfluencerProfile, interest *models.EventInterest)
	InterestApproved(db *gorm.DB, event *models.Event, interest *models.EventInterest)
	ProfileApproved(db *gorm.DB, profile *models.InfluencerProfile)
	ProfileWaitListed(db *gorm.DB, profile *models.InfluencerProfile, reason string)
	// Wait ждет завершения уже запущенных отправок
	Wait()
}

type notificationService struct {
	provider       email.Provider
	userRepo       repositories.UserRepository
	brandRepo      repositories.BrandProfileRepository
	influencerRepo repositories.InfluencerProfileRepository
	appURL         string

	inflight sync.WaitGroup
}

func NewNotificationService(
	provider email.Provider,
	userRepo repositories.UserRepository,
	brandRepo repositories.BrandProfileRepository,
	influencerRepo repositories.InfluencerProfileRepository,
	appURL string,
) NotificationService {
	return &notificationService{
		provider:       provider,
		userRepo:       userRepo,
		brandRepo:      brandRepo,
		influencerRepo: influencerRepo,
		appURL:         appURL,
	}
}

func (s *notificationService) InterestReceived(db *gorm.DB, event *models.Event, interest *models.EventInterest) {
	brand, brandUser, ok := s.brandRecipient(db, event.CreatedByID)
	if !ok {
		return
	}
	influencerUser, ok := s.influencerUser(db, interest.InfluencerID)
	if !ok {
		return
	}

	s.send(db, email.TemplateInterestReceived, brandUser.Email, "New application: "+event.Title, email.TemplateData{
		"BrandName":      brand.CompanyName,
		"InfluencerName": influencerUser.Name,
		"EventTitle":     event.Title,
		"EventID":        event.ID,
		"Message":        derefString(interest.Message),
	})
}

func (s *notificationService) InvitationSent(db *gorm.DB, event *models.Event, profile *models.InfluencerProfile, interest *models.EventInterest) {
	brand, _, ok := s.brandRecipient(db, event.CreatedByID)
	if !ok {
		return
	}
	influencerUser, ok := s.influencerUser(db, profile.ID)
	if !ok {
		return
	}

	s.send(db, email.TemplateInvitation, influencerUser.Email, "You are invited: "+event.Title, email.TemplateData{
		"BrandName":      brand.CompanyName,
		"InfluencerName": influencerUser.Name,
		"EventTitle":     event.Title,
		"EventID":        event.ID,
		"Message":        derefString(interest.Message),
	})
}

func (s *notificationService) InterestApproved(db *gorm.DB, event *models.Event, interest *models.EventInterest) {
	influencerUser, ok := s.influencerUser(db, interest.InfluencerID)
	if !ok {
		return
	}

	s.send(db, email.TemplateInterestApproved, influencerUser.Email, "Application approved: "+event.Title, email.TemplateData{
		"InfluencerName": influencerUser.Name,
		"EventTitle":     event.Title,
		"EventID":        event.ID,
	})
}

func (s *notificationService) ProfileApproved(db *gorm.DB, profile *models.InfluencerProfile) {
	influencerUser, ok := s.influencerUser(db, profile.ID)
	if !ok {
		return
	}

	s.send(db, email.TemplateProfileApproved, influencerUser.Email, "Your profile is approved", email.TemplateData{
		"InfluencerName": influencerUser.Name,
	})
}

func (s *notificationService) ProfileWaitListed(db *gorm.DB, profile *models.InfluencerProfile, reason string) {
	influencerUser, ok := s.influencerUser(db, profile.ID)
	if !ok {
		return
	}

	s.send(db, email.TemplateProfileWaitListed, influencerUser.Email, "Your profile is on the waiting list", email.TemplateData{
		"InfluencerName": influencerUser.Name,
		"Reason":         reason,
	})
}

// send не блокирует запрос на SMTP. Логгер с request_id/user_id берется
// до запуска горутины: контекст запроса к моменту отправки уже может быть отменен.
func (s *notificationService) send(db *gorm.DB, templateName, to, subject string, data email.TemplateData) {
	data["AppURL"] = s.appURL
	log := logger.FromContext(ctxOf(db))

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		err := s.provider.SendTemplate([]string{to}, subject, templateName, data)
		logger.NotifyLog(log, templateName, to, err)
	}()
}

func (s *notificationService) Wait() {
	s.inflight.Wait()
}

func (s *notificationService) brandRecipient(db *gorm.DB, brandProfileID string) (*models.BrandProfile, *models.User, bool) {
	brand, err := s.brandRepo.FindByID(db, brandProfileID)
	if err != nil {
		logger.CtxWarn(ctxOf(db), "notification skipped: brand profile lookup failed", "brand_profile_id", brandProfileID, "error", err)
		return nil, nil, false
	}
	user, err := s.userRepo.FindByID(db, brand.UserID)
	if err != nil {
		logger.CtxWarn(ctxOf(db), "notification skipped: brand user lookup failed", "user_id", brand.UserID, "error", err)
		return nil, nil, false
	}
	return brand, user, true
}

func (s *notificationService) influencerUser(db *gorm.DB, influencerProfileID string) (*models.User, bool) {
	profile, err := s.influencerRepo.FindByID(db, influencerProfileID)
	if err != nil {
		logger.CtxWarn(ctxOf(db), "notification skipped: influencer lookup failed", "influencer_id", influencerProfileID, "error", err)
		return nil, false
	}
	if profile.User != nil {
		return profile.User, true
	}
	user, err := s.userRepo.FindByID(db, profile.UserID)
	if err != nil {
		logger.CtxWarn(ctxOf(db), "notification skipped: influencer user lookup failed", "user_id", profile.UserID, "error", err)
		return nil, false
	}
	return user, true
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
