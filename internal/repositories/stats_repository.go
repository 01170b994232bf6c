package repositories

import (
	"time"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

type ApplicationCounts struct {
	Total    int64
	Approved int64
}

type InfluencerApplications struct {
	InfluencerID string
	Name         string
	Applications int64
}

// StatsRepository - агрегаты по событиям одного бренда
type StatsRepository interface {
	CountEvents(db *gorm.DB, brandProfileID string, status models.EventStatus) (int64, error)
	CountApplications(db *gorm.DB, brandProfileID string) (*ApplicationCounts, error)
	ApplicationTimes(db *gorm.DB, brandProfileID string, since time.Time) ([]time.Time, error)
	TopInfluencers(db *gorm.DB, brandProfileID string, limit int) ([]InfluencerApplications, error)
}

type StatsRepositoryImpl struct{}

func NewStatsRepository() StatsRepository {
	return &StatsRepositoryImpl{}
}

func (r *StatsRepositoryImpl) CountEvents(db *gorm.DB, brandProfileID string, status models.EventStatus) (int64, error) {
	query := db.Model(&models.Event{}).Where("created_by_id = ?", brandProfileID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *StatsRepositoryImpl) CountApplications(db *gorm.DB, brandProfileID string) (*ApplicationCounts, error) {
	var counts ApplicationCounts
	err := db.Table("event_interests AS ei").
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN ei.approved THEN 1 ELSE 0 END), 0) AS approved").
		Joins("JOIN events e ON e.id = ei.event_id").
		Where("e.created_by_id = ?", brandProfileID).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// ApplicationTimes - даты откликов начиная с since. Группировка по месяцам
// делается в сервисе, чтобы не зависеть от диалекта SQL.
func (r *StatsRepositoryImpl) ApplicationTimes(db *gorm.DB, brandProfileID string, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := db.Table("event_interests AS ei").
		Joins("JOIN events e ON e.id = ei.event_id").
		Where("e.created_by_id = ? AND ei.created_at >= ?", brandProfileID, since).
		Pluck("ei.created_at", &times).Error
	return times, err
}

func (r *StatsRepositoryImpl) TopInfluencers(db *gorm.DB, brandProfileID string, limit int) ([]InfluencerApplications, error) {
	var rows []InfluencerApplications
	err := db.Table("event_interests AS ei").
		Select("ei.influencer_id AS influencer_id, u.name AS name, COUNT(*) AS applications").
		Joins("JOIN events e ON e.id = ei.event_id").
		Joins("JOIN influencer_profiles ip ON ip.id = ei.influencer_id").
		Joins("JOIN users u ON u.id = ip.user_id").
		Where("e.created_by_id = ?", brandProfileID).
		Group("ei.influencer_id, u.name").
		Order("applications DESC, u.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
