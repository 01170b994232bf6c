package services

import (
	"errors"
	"strings"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/config"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/validator"
	"collabhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// InterestService - отклики инфлюенсеров и приглашения брендов.
// Проверка и запись выполняются в одной транзакции под блокировкой строки события,
// так что лимит участников перепроверяется на момент коммита.
type InterestService interface {
	ExpressInterest(db *gorm.DB, rc auth.RequestContext, eventID string, req *dto.ExpressInterestRequest) (*models.EventInterest, error)
	Invite(db *gorm.DB, rc auth.RequestContext, eventID string, req *dto.InviteRequest) (*models.EventInterest, error)
	ApproveInterest(db *gorm.DB, rc auth.RequestContext, eventID, interestID string) (*models.EventInterest, error)
	CancelInterest(db *gorm.DB, rc auth.RequestContext, eventID string) error
	GetInterestState(db *gorm.DB, rc auth.RequestContext, eventID string) (*dto.InterestStateResponse, error)
	ListInterests(db *gorm.DB, rc auth.RequestContext, eventID string) (*dto.InterestListResponse, error)
}

type interestService struct {
	eventRepo      repositories.EventRepository
	interestRepo   repositories.InterestRepository
	brandRepo      repositories.BrandProfileRepository
	influencerRepo repositories.InfluencerProfileRepository
	notifier       NotificationService
	validator      *validator.Validator
	policy         config.PolicyConfig
}

func NewInterestService(
	eventRepo repositories.EventRepository,
	interestRepo repositories.InterestRepository,
	brandRepo repositories.BrandProfileRepository,
	influencerRepo repositories.InfluencerProfileRepository,
	notifier NotificationService,
	v *validator.Validator,
	policy config.PolicyConfig,
) InterestService {
	return &interestService{
		eventRepo:      eventRepo,
		interestRepo:   interestRepo,
		brandRepo:      brandRepo,
		influencerRepo: influencerRepo,
		notifier:       notifier,
		validator:      v,
		policy:         policy,
	}
}

func (s *interestService) ExpressInterest(db *gorm.DB, rc auth.RequestContext, eventID string, req *dto.ExpressInterestRequest) (*models.EventInterest, error) {
	if err := rc.Require(auth.ActionInterestExpress); err != nil {
		return nil, err
	}

	var (
		event    *models.Event
		interest *models.EventInterest
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		event, err = s.eventRepo.LockByID(tx, eventID)
		if err != nil {
			return mapRepoError(err)
		}
		if event.Status != models.EventStatusPublished {
			return apperrors.ErrEventNotFound
		}

		profile, err := s.influencerRepo.FindApprovedByUserID(tx, rc.PrincipalID)
		if err != nil {
			if errors.Is(err, repositories.ErrInfluencerProfileNotFound) {
				return apperrors.ErrInfluencerNotApproved
			}
			return apperrors.InternalError(err)
		}

		in, err := s.eligibilityInput(tx, event, profile, false)
		if err != nil {
			return err
		}
		if err := CheckEligibility(in); err != nil {
			return err
		}

		if err := s.validator.Check(req); err != nil {
			return err
		}

		interest = &models.EventInterest{
			EventID:      event.ID,
			InfluencerID: profile.ID,
			Message:      normalizeMessage(req.Message),
			Approved:     false,
		}
		return mapRepoError(s.interestRepo.Create(tx, interest))
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "interest expressed", "event_id", event.ID, "interest_id", interest.ID)
	s.notifier.InterestReceived(db, event, interest)
	return interest, nil
}

// Invite - приглашение от владельца события, одобряется сразу.
// Порог подписчиков не проверяется, лимит участников и дубликаты - да.
func (s *interestService) Invite(db *gorm.DB, rc auth.RequestContext, eventID string, req *dto.InviteRequest) (*models.EventInterest, error) {
	if err := rc.Require(auth.ActionInterestInvite); err != nil {
		return nil, err
	}

	var (
		event    *models.Event
		profile  *models.InfluencerProfile
		interest *models.EventInterest
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		brand, err := s.brandRepo.FindByUserID(tx, rc.PrincipalID)
		if err != nil {
			if errors.Is(err, repositories.ErrBrandProfileNotFound) {
				return apperrors.ErrEventNotFound
			}
			return apperrors.InternalError(err)
		}

		event, err = s.eventRepo.LockByID(tx, eventID)
		if err != nil {
			return mapRepoError(err)
		}
		if event.CreatedByID != brand.ID {
			return apperrors.ErrEventNotFound
		}
		if !event.AcceptsInvitations() {
			return apperrors.ErrEventClosed
		}

		if err := s.validator.Check(req); err != nil {
			return err
		}

		profile, err = s.influencerRepo.FindApprovedByID(tx, req.InfluencerID)
		if err != nil {
			return mapRepoError(err)
		}

		in, err := s.eligibilityInput(tx, event, profile, true)
		if err != nil {
			return err
		}
		if err := CheckEligibility(in); err != nil {
			return err
		}

		interest = &models.EventInterest{
			EventID:      event.ID,
			InfluencerID: profile.ID,
			Message:      normalizeMessage(req.Message),
			Approved:     true,
		}
		return mapRepoError(s.interestRepo.Create(tx, interest))
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "influencer invited", "event_id", event.ID, "influencer_id", profile.ID)
	s.notifier.InvitationSent(db, event, profile, interest)
	return interest, nil
}

func (s *interestService) ApproveInterest(db *gorm.DB, rc auth.RequestContext, eventID, interestID string) (*models.EventInterest, error) {
	if !rc.Can(auth.ActionEventManageAny) && !rc.Can(auth.ActionEventManageOwn) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	var (
		event    *models.Event
		interest *models.EventInterest
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		event, err = s.eventRepo.LockByID(tx, eventID)
		if err != nil {
			return mapRepoError(err)
		}

		if !rc.Can(auth.ActionEventManageAny) {
			brand, err := s.brandRepo.FindByUserID(tx, rc.PrincipalID)
			if err != nil {
				if errors.Is(err, repositories.ErrBrandProfileNotFound) {
					return apperrors.ErrEventNotFound
				}
				return apperrors.InternalError(err)
			}
			if brand.ID != event.CreatedByID {
				return apperrors.ErrEventNotFound
			}
		}

		interest, err = s.interestRepo.FindByID(tx, interestID)
		if err != nil {
			return mapRepoError(err)
		}
		if interest.EventID != event.ID {
			return apperrors.ErrInterestNotFound
		}
		if interest.Approved {
			return apperrors.ErrInterestAlreadyApproved
		}
		if !event.AcceptsInvitations() {
			return apperrors.ErrEventClosed
		}

		approved, err := s.interestRepo.CountApproved(tx, event.ID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if err := checkCapacity(event, approved); err != nil {
			return err
		}

		if err := s.interestRepo.MarkApproved(tx, interest.ID); err != nil {
			return mapRepoError(err)
		}
		interest.Approved = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "interest approved", "event_id", event.ID, "interest_id", interest.ID)
	s.notifier.InterestApproved(db, event, interest)
	return interest, nil
}

// CancelInterest - инфлюенсер отзывает свой неодобренный отклик
func (s *interestService) CancelInterest(db *gorm.DB, rc auth.RequestContext, eventID string) error {
	if err := rc.Require(auth.ActionInterestExpress); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.influencerRepo.FindByUserID(tx, rc.PrincipalID)
		if err != nil {
			if errors.Is(err, repositories.ErrInfluencerProfileNotFound) {
				return apperrors.ErrInterestNotFound
			}
			return apperrors.InternalError(err)
		}

		interest, err := s.interestRepo.FindByPair(tx, eventID, profile.ID)
		if err != nil {
			return mapRepoError(err)
		}
		if interest.Approved {
			return apperrors.ErrInterestAlreadyApproved
		}

		if err := s.interestRepo.Delete(tx, interest.ID); err != nil {
			return mapRepoError(err)
		}
		logger.CtxInfo(ctxOf(tx), "interest cancelled", "event_id", eventID, "interest_id", interest.ID)
		return nil
	})
}

// GetInterestState не возвращает ошибок для не-инфлюенсеров: просто hasInterest=false
func (s *interestService) GetInterestState(db *gorm.DB, rc auth.RequestContext, eventID string) (*dto.InterestStateResponse, error) {
	none := &dto.InterestStateResponse{HasInterest: false}
	if !rc.Is(models.UserRoleInfluencer) {
		return none, nil
	}

	profile, err := s.influencerRepo.FindByUserID(db, rc.PrincipalID)
	if err != nil {
		if errors.Is(err, repositories.ErrInfluencerProfileNotFound) {
			return none, nil
		}
		return nil, apperrors.InternalError(err)
	}

	interest, err := s.interestRepo.FindByPair(db, eventID, profile.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterestNotFound) {
			return none, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.InterestStateResponse{HasInterest: true, Interest: interest}, nil
}

// ListInterests: ADMIN - любое событие, BRAND - только свои.
// Инфлюенсеры допускаются к опубликованным событиям, если это разрешено политикой.
func (s *interestService) ListInterests(db *gorm.DB, rc auth.RequestContext, eventID string) (*dto.InterestListResponse, error) {
	var (
		event *models.Event
		err   error
	)

	switch {
	case rc.Can(auth.ActionInterestListAny):
		event, err = s.eventRepo.FindByID(db, eventID)
	case rc.Can(auth.ActionInterestListOwn):
		var brand *models.BrandProfile
		brand, err = s.brandRepo.FindByUserID(db, rc.PrincipalID)
		if errors.Is(err, repositories.ErrBrandProfileNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		if err == nil {
			event, err = s.eventRepo.FindOwnedByID(db, eventID, brand.ID)
		}
	case rc.Is(models.UserRoleInfluencer) && s.policy.OpenInterestListing:
		event, err = s.eventRepo.FindPublishedByID(db, eventID)
	default:
		return nil, apperrors.ErrInsufficientPermissions
	}
	if err != nil {
		return nil, mapRepoError(err)
	}

	interests, err := s.interestRepo.ListByEvent(db, event.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if interests == nil {
		interests = []models.EventInterest{}
	}
	return &dto.InterestListResponse{Interests: interests}, nil
}

func (s *interestService) eligibilityInput(tx *gorm.DB, event *models.Event, profile *models.InfluencerProfile, invitation bool) (EligibilityInput, error) {
	exists, err := s.interestRepo.ExistsForPair(tx, event.ID, profile.ID)
	if err != nil {
		return EligibilityInput{}, apperrors.InternalError(err)
	}
	approved, err := s.interestRepo.CountApproved(tx, event.ID)
	if err != nil {
		return EligibilityInput{}, apperrors.InternalError(err)
	}
	return EligibilityInput{
		Event:         event,
		Profile:       profile,
		ApprovedCount: approved,
		Exists:        exists,
		IsInvitation:  invitation,
	}, nil
}

func normalizeMessage(message *string) *string {
	if message == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*message)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
