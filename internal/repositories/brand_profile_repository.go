package repositories

import (
	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

type BrandProfileRepository interface {
	FindByUserID(db *gorm.DB, userID string) (*models.BrandProfile, error)
	FindByID(db *gorm.DB, id string) (*models.BrandProfile, error)
	Create(db *gorm.DB, profile *models.BrandProfile) error
	Update(db *gorm.DB, profile *models.BrandProfile) error
}

type BrandProfileRepositoryImpl struct{}

func NewBrandProfileRepository() BrandProfileRepository {
	return &BrandProfileRepositoryImpl{}
}

func (r *BrandProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, translate(err, ErrBrandProfileNotFound, nil)
	}
	return &profile, nil
}

func (r *BrandProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	err := db.First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, ErrBrandProfileNotFound, nil)
	}
	return &profile, nil
}

// Create полагается на уникальный индекс user_id: второй профиль не создается
func (r *BrandProfileRepositoryImpl) Create(db *gorm.DB, profile *models.BrandProfile) error {
	return translate(db.Create(profile).Error, nil, ErrBrandProfileExists)
}

func (r *BrandProfileRepositoryImpl) Update(db *gorm.DB, profile *models.BrandProfile) error {
	result := db.Model(profile).Select(
		"company_name", "description", "website", "industry", "logo",
		"subscription", "subscription_start", "subscription_end", "updated_at",
	).Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBrandProfileNotFound
	}
	return nil
}
