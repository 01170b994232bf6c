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

type ProfileService interface {
	GetBrandProfile(db *gorm.DB, rc auth.RequestContext) (*models.BrandProfile, error)
	CreateBrandProfile(db *gorm.DB, rc auth.RequestContext, req *dto.BrandProfileRequest) (*models.BrandProfile, error)
	UpdateBrandProfile(db *gorm.DB, rc auth.RequestContext, req *dto.BrandProfileRequest) (*models.BrandProfile, error)

	GetInfluencerProfile(db *gorm.DB, rc auth.RequestContext) (*models.InfluencerProfile, error)
	UpsertInfluencerProfile(db *gorm.DB, rc auth.RequestContext, req *dto.InfluencerProfileRequest) (*models.InfluencerProfile, error)
}

type profileService struct {
	brandRepo      repositories.BrandProfileRepository
	influencerRepo repositories.InfluencerProfileRepository
	validator      *validator.Validator
	policy         config.PolicyConfig
}

func NewProfileService(
	brandRepo repositories.BrandProfileRepository,
	influencerRepo repositories.InfluencerProfileRepository,
	v *validator.Validator,
	policy config.PolicyConfig,
) ProfileService {
	return &profileService{
		brandRepo:      brandRepo,
		influencerRepo: influencerRepo,
		validator:      v,
		policy:         policy,
	}
}

// --- Brand ---

func (s *profileService) GetBrandProfile(db *gorm.DB, rc auth.RequestContext) (*models.BrandProfile, error) {
	if err := rc.Require(auth.ActionBrandProfile); err != nil {
		return nil, err
	}
	profile, err := s.brandRepo.FindByUserID(db, rc.PrincipalID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return profile, nil
}

// CreateBrandProfile - профиль создается один раз, повтор дает Conflict
func (s *profileService) CreateBrandProfile(db *gorm.DB, rc auth.RequestContext, req *dto.BrandProfileRequest) (*models.BrandProfile, error) {
	if err := rc.Require(auth.ActionBrandProfile); err != nil {
		return nil, err
	}
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}

	_, err := s.brandRepo.FindByUserID(db, rc.PrincipalID)
	switch {
	case err == nil:
		return nil, apperrors.ErrBrandProfileExists
	case !errors.Is(err, repositories.ErrBrandProfileNotFound):
		return nil, apperrors.InternalError(err)
	}

	profile := &models.BrandProfile{UserID: rc.PrincipalID}
	applyBrandRequest(profile, req)

	if err := s.brandRepo.Create(db, profile); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "brand profile created", "brand_profile_id", profile.ID)
	return profile, nil
}

func (s *profileService) UpdateBrandProfile(db *gorm.DB, rc auth.RequestContext, req *dto.BrandProfileRequest) (*models.BrandProfile, error) {
	if err := rc.Require(auth.ActionBrandProfile); err != nil {
		return nil, err
	}
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}

	profile, err := s.brandRepo.FindByUserID(db, rc.PrincipalID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	applyBrandRequest(profile, req)

	if err := s.brandRepo.Update(db, profile); err != nil {
		return nil, mapRepoError(err)
	}
	return profile, nil
}

func applyBrandRequest(profile *models.BrandProfile, req *dto.BrandProfileRequest) {
	profile.CompanyName = strings.TrimSpace(req.CompanyName)
	profile.Description = req.Description
	profile.Website = req.Website
	profile.Industry = req.Industry
	profile.Logo = req.Logo
	profile.Subscription = models.SubscriptionFree
	if req.Subscription != "" {
		profile.Subscription = models.SubscriptionPlan(req.Subscription)
	}
	profile.SubscriptionStart = req.SubscriptionStart
	profile.SubscriptionEnd = req.SubscriptionEnd
}

// --- Influencer ---

func (s *profileService) GetInfluencerProfile(db *gorm.DB, rc auth.RequestContext) (*models.InfluencerProfile, error) {
	if err := rc.Require(auth.ActionInfluencerProfile); err != nil {
		return nil, err
	}
	profile, err := s.influencerRepo.FindByUserID(db, rc.PrincipalID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return profile, nil
}

// UpsertInfluencerProfile создает профиль в статусе PENDING или обновляет его.
// При policy.reset_approval_on_edit любая правка возвращает профиль на модерацию,
// в том числе из APPROVED.
func (s *profileService) UpsertInfluencerProfile(db *gorm.DB, rc auth.RequestContext, req *dto.InfluencerProfileRequest) (*models.InfluencerProfile, error) {
	if err := rc.Require(auth.ActionInfluencerProfile); err != nil {
		return nil, err
	}
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}

	var profile *models.InfluencerProfile
	err := db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.influencerRepo.FindByUserID(tx, rc.PrincipalID)
		if errors.Is(err, repositories.ErrInfluencerProfileNotFound) {
			profile = &models.InfluencerProfile{
				UserID:         rc.PrincipalID,
				ApprovalStatus: models.ApprovalStatusPending,
			}
			applyInfluencerRequest(profile, req)
			return mapRepoError(s.influencerRepo.Create(tx, profile))
		}
		if err != nil {
			return apperrors.InternalError(err)
		}

		profile = existing
		applyInfluencerRequest(profile, req)
		if s.policy.ResetApprovalOnEdit {
			profile.ApprovalStatus = models.ApprovalStatusPending
			profile.ApprovedAt = nil
			profile.RejectionReason = nil
		}
		return mapRepoError(s.influencerRepo.Update(tx, profile))
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "influencer profile saved", "influencer_id", profile.ID, "approval_status", profile.ApprovalStatus)
	return profile, nil
}

func applyInfluencerRequest(profile *models.InfluencerProfile, req *dto.InfluencerProfileRequest) {
	profile.Bio = req.Bio
	profile.Location = req.Location
	profile.InstagramHandle = strings.TrimPrefix(strings.TrimSpace(req.InstagramHandle), "@")
	profile.TiktokHandle = strings.TrimPrefix(strings.TrimSpace(req.TiktokHandle), "@")
	profile.YoutubeHandle = strings.TrimSpace(req.YoutubeHandle)
	profile.InstagramFollowers = req.InstagramFollowers
	profile.TiktokFollowers = req.TiktokFollowers
	profile.YoutubeSubscribers = req.YoutubeSubscribers
	profile.Categories = models.EncodeStringList(req.Categories)
}
