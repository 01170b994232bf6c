package services

import (
	"strings"
	"time"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/validator"
	"collabhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ApprovalService - очередь модерации профилей инфлюенсеров.
// PENDING/REJECTED -> APPROVED, PENDING -> REJECTED, REJECTED -> REJECTED (новая причина).
type ApprovalService interface {
	Approve(db *gorm.DB, rc auth.RequestContext, profileID string) (*models.InfluencerProfile, error)
	WaitList(db *gorm.DB, rc auth.RequestContext, profileID string, req *dto.WaitingListRequest) (*models.InfluencerProfile, error)
	ListQueue(db *gorm.DB, rc auth.RequestContext, query *dto.ApprovalQueueQuery) (*dto.ApprovalQueueResponse, error)
}

type approvalService struct {
	influencerRepo repositories.InfluencerProfileRepository
	notifier       NotificationService
	validator      *validator.Validator
	now            func() time.Time
}

func NewApprovalService(
	influencerRepo repositories.InfluencerProfileRepository,
	notifier NotificationService,
	v *validator.Validator,
) ApprovalService {
	return &approvalService{
		influencerRepo: influencerRepo,
		notifier:       notifier,
		validator:      v,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *approvalService) Approve(db *gorm.DB, rc auth.RequestContext, profileID string) (*models.InfluencerProfile, error) {
	if err := rc.Require(auth.ActionApprovalQueue); err != nil {
		return nil, err
	}

	var profile *models.InfluencerProfile
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		profile, err = s.influencerRepo.FindByID(tx, profileID)
		if err != nil {
			return mapRepoError(err)
		}
		if profile.ApprovalStatus == models.ApprovalStatusApproved {
			return apperrors.ErrAlreadyApproved
		}

		approvedAt := s.now()
		if err := s.influencerRepo.SetApproval(tx, profile.ID, models.ApprovalStatusApproved, &approvedAt, nil); err != nil {
			return mapRepoError(err)
		}
		profile.ApprovalStatus = models.ApprovalStatusApproved
		profile.ApprovedAt = &approvedAt
		profile.RejectionReason = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "influencer approved", "influencer_id", profile.ID)
	s.notifier.ProfileApproved(db, profile)
	return profile, nil
}

// WaitList переводит профиль в REJECTED ("лист ожидания").
// Пустая причина допустима. Одобренный профиль сюда не переводится.
func (s *approvalService) WaitList(db *gorm.DB, rc auth.RequestContext, profileID string, req *dto.WaitingListRequest) (*models.InfluencerProfile, error) {
	if err := rc.Require(auth.ActionApprovalQueue); err != nil {
		return nil, err
	}
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)

	var profile *models.InfluencerProfile
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		profile, err = s.influencerRepo.FindByID(tx, profileID)
		if err != nil {
			return mapRepoError(err)
		}
		if profile.ApprovalStatus == models.ApprovalStatusApproved {
			return apperrors.ErrInvalidApprovalTransition
		}

		if err := s.influencerRepo.SetApproval(tx, profile.ID, models.ApprovalStatusRejected, nil, &reason); err != nil {
			return mapRepoError(err)
		}
		profile.ApprovalStatus = models.ApprovalStatusRejected
		profile.ApprovedAt = nil
		profile.RejectionReason = &reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "influencer wait-listed", "influencer_id", profile.ID)
	s.notifier.ProfileWaitListed(db, profile, reason)
	return profile, nil
}

func (s *approvalService) ListQueue(db *gorm.DB, rc auth.RequestContext, query *dto.ApprovalQueueQuery) (*dto.ApprovalQueueResponse, error) {
	if err := rc.Require(auth.ActionApprovalQueue); err != nil {
		return nil, err
	}
	if err := s.validator.Check(query); err != nil {
		return nil, err
	}

	status := models.ApprovalStatus(query.Status)
	if status == "" {
		status = models.ApprovalStatusPending
	}
	page, pageSize := normalizePage(query.Page, query.PageSize)

	profiles, total, err := s.influencerRepo.ListByStatus(db, status, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if profiles == nil {
		profiles = []models.InfluencerProfile{}
	}

	return &dto.ApprovalQueueResponse{
		Profiles: profiles,
		Total:    total,
		Page:     page,
		Pages:    dto.Pages(total, pageSize),
	}, nil
}
