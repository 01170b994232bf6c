package repositories

import (
	"time"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

type InfluencerProfileRepository interface {
	FindByID(db *gorm.DB, id string) (*models.InfluencerProfile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.InfluencerProfile, error)
	FindApprovedByID(db *gorm.DB, id string) (*models.InfluencerProfile, error)
	FindApprovedByUserID(db *gorm.DB, userID string) (*models.InfluencerProfile, error)
	Create(db *gorm.DB, profile *models.InfluencerProfile) error
	Update(db *gorm.DB, profile *models.InfluencerProfile) error
	SetApproval(db *gorm.DB, id string, status models.ApprovalStatus, approvedAt *time.Time, reason *string) error
	ListByStatus(db *gorm.DB, status models.ApprovalStatus, page, pageSize int) ([]models.InfluencerProfile, int64, error)
}

type InfluencerProfileRepositoryImpl struct{}

func NewInfluencerProfileRepository() InfluencerProfileRepository {
	return &InfluencerProfileRepositoryImpl{}
}

func (r *InfluencerProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	err := db.Preload("User").First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, ErrInfluencerProfileNotFound, nil)
	}
	return &profile, nil
}

func (r *InfluencerProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, translate(err, ErrInfluencerProfileNotFound, nil)
	}
	return &profile, nil
}

// FindApprovedByID не различает "нет профиля" и "не одобрен"
func (r *InfluencerProfileRepositoryImpl) FindApprovedByID(db *gorm.DB, id string) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	err := db.Preload("User").
		Where("id = ? AND approval_status = ?", id, models.ApprovalStatusApproved).
		First(&profile).Error
	if err != nil {
		return nil, translate(err, ErrInfluencerProfileNotFound, nil)
	}
	return &profile, nil
}

func (r *InfluencerProfileRepositoryImpl) FindApprovedByUserID(db *gorm.DB, userID string) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	err := db.Where("user_id = ? AND approval_status = ?", userID, models.ApprovalStatusApproved).
		First(&profile).Error
	if err != nil {
		return nil, translate(err, ErrInfluencerProfileNotFound, nil)
	}
	return &profile, nil
}

func (r *InfluencerProfileRepositoryImpl) Create(db *gorm.DB, profile *models.InfluencerProfile) error {
	return translate(db.Create(profile).Error, nil, ErrInfluencerProfileExists)
}

// Update сохраняет все редактируемые поля, включая статус одобрения
func (r *InfluencerProfileRepositoryImpl) Update(db *gorm.DB, profile *models.InfluencerProfile) error {
	result := db.Model(profile).Select(
		"bio", "location", "instagram_handle", "tiktok_handle", "youtube_handle",
		"instagram_followers", "tiktok_followers", "youtube_subscribers", "categories",
		"approval_status", "approved_at", "rejection_reason", "updated_at",
	).Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInfluencerProfileNotFound
	}
	return nil
}

func (r *InfluencerProfileRepositoryImpl) SetApproval(db *gorm.DB, id string, status models.ApprovalStatus, approvedAt *time.Time, reason *string) error {
	result := db.Model(&models.InfluencerProfile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"approval_status":  status,
		"approved_at":      approvedAt,
		"rejection_reason": reason,
		"updated_at":       time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInfluencerProfileNotFound
	}
	return nil
}

// ListByStatus - очередь модерации, старые заявки первыми
func (r *InfluencerProfileRepositoryImpl) ListByStatus(db *gorm.DB, status models.ApprovalStatus, page, pageSize int) ([]models.InfluencerProfile, int64, error) {
	byStatus := func(q *gorm.DB) *gorm.DB {
		if status != "" {
			return q.Where("approval_status = ?", status)
		}
		return q
	}

	var total int64
	if err := db.Model(&models.InfluencerProfile{}).Scopes(byStatus).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.InfluencerProfile
	err := db.Scopes(byStatus).Preload("User").
		Order("created_at ASC").
		Limit(pageSize).Offset(offset(page, pageSize)).
		Find(&profiles).Error
	return profiles, total, err
}
