package repositories

import (
	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

type InterestRepository interface {
	Create(db *gorm.DB, interest *models.EventInterest) error
	FindByID(db *gorm.DB, id string) (*models.EventInterest, error)
	FindByPair(db *gorm.DB, eventID, influencerID string) (*models.EventInterest, error)
	ExistsForPair(db *gorm.DB, eventID, influencerID string) (bool, error)
	CountApproved(db *gorm.DB, eventID string) (int64, error)
	CountByEvent(db *gorm.DB, eventID string) (int64, error)
	MarkApproved(db *gorm.DB, id string) error
	Delete(db *gorm.DB, id string) error
	DeleteByEvent(db *gorm.DB, eventID string) (int64, error)
	ListByEvent(db *gorm.DB, eventID string) ([]models.EventInterest, error)
}

type InterestRepositoryImpl struct{}

func NewInterestRepository() InterestRepository {
	return &InterestRepositoryImpl{}
}

// Create - уникальный индекс по паре (event_id, influencer_id) защищает от гонки
func (r *InterestRepositoryImpl) Create(db *gorm.DB, interest *models.EventInterest) error {
	return translate(db.Create(interest).Error, nil, ErrInterestExists)
}

func (r *InterestRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.EventInterest, error) {
	var interest models.EventInterest
	err := db.First(&interest, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, ErrInterestNotFound, nil)
	}
	return &interest, nil
}

func (r *InterestRepositoryImpl) FindByPair(db *gorm.DB, eventID, influencerID string) (*models.EventInterest, error) {
	var interest models.EventInterest
	err := db.Where("event_id = ? AND influencer_id = ?", eventID, influencerID).First(&interest).Error
	if err != nil {
		return nil, translate(err, ErrInterestNotFound, nil)
	}
	return &interest, nil
}

func (r *InterestRepositoryImpl) ExistsForPair(db *gorm.DB, eventID, influencerID string) (bool, error) {
	var count int64
	err := db.Model(&models.EventInterest{}).
		Where("event_id = ? AND influencer_id = ?", eventID, influencerID).
		Count(&count).Error
	return count > 0, err
}

func (r *InterestRepositoryImpl) CountApproved(db *gorm.DB, eventID string) (int64, error) {
	var count int64
	err := db.Model(&models.EventInterest{}).
		Where("event_id = ? AND approved = ?", eventID, true).
		Count(&count).Error
	return count, err
}

func (r *InterestRepositoryImpl) CountByEvent(db *gorm.DB, eventID string) (int64, error) {
	var count int64
	err := db.Model(&models.EventInterest{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

// MarkApproved одобряет только неодобренный отклик
func (r *InterestRepositoryImpl) MarkApproved(db *gorm.DB, id string) error {
	result := db.Model(&models.EventInterest{}).
		Where("id = ? AND approved = ?", id, false).
		Update("approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterestNotFound
	}
	return nil
}

func (r *InterestRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.EventInterest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterestNotFound
	}
	return nil
}

func (r *InterestRepositoryImpl) DeleteByEvent(db *gorm.DB, eventID string) (int64, error) {
	result := db.Where("event_id = ?", eventID).Delete(&models.EventInterest{})
	return result.RowsAffected, result.Error
}

// ListByEvent возвращает отклики с профилем и пользователем, новые первыми
func (r *InterestRepositoryImpl) ListByEvent(db *gorm.DB, eventID string) ([]models.EventInterest, error) {
	var interests []models.EventInterest
	err := db.Preload("Influencer").Preload("Influencer.User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&interests).Error
	return interests, err
}
