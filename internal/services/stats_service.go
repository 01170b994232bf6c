package services

import (
	"errors"
	"time"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	statsMonths         = 6
	statsTopInfluencers = 5
)

type StatsService interface {
	GetBrandStats(db *gorm.DB, rc auth.RequestContext) (*dto.BrandStatsResponse, error)
}

type statsService struct {
	statsRepo repositories.StatsRepository
	brandRepo repositories.BrandProfileRepository
	now       func() time.Time
}

func NewStatsService(statsRepo repositories.StatsRepository, brandRepo repositories.BrandProfileRepository) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		brandRepo: brandRepo,
		now:       time.Now,
	}
}

// GetBrandStats - сводка по событиям бренда. Бренд без профиля получает нули.
func (s *statsService) GetBrandStats(db *gorm.DB, rc auth.RequestContext) (*dto.BrandStatsResponse, error) {
	if err := rc.Require(auth.ActionBrandStats); err != nil {
		return nil, err
	}

	months := monthBuckets(s.now().UTC(), statsMonths)
	response := &dto.BrandStatsResponse{
		MonthlyApplications: months,
		TopInfluencers:      []dto.TopInfluencer{},
	}

	brand, err := s.brandRepo.FindByUserID(db, rc.PrincipalID)
	if errors.Is(err, repositories.ErrBrandProfileNotFound) {
		return response, nil
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if response.TotalEvents, err = s.statsRepo.CountEvents(db, brand.ID, ""); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if response.ActiveEvents, err = s.statsRepo.CountEvents(db, brand.ID, models.EventStatusPublished); err != nil {
		return nil, apperrors.InternalError(err)
	}

	counts, err := s.statsRepo.CountApplications(db, brand.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	response.TotalApplications = counts.Total
	response.ApprovedCount = counts.Approved
	response.PendingCount = counts.Total - counts.Approved

	since, err := time.Parse("2006-01", months[0].Month)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	times, err := s.statsRepo.ApplicationTimes(db, brand.ID, since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	fillMonths(months, times)

	top, err := s.statsRepo.TopInfluencers(db, brand.ID, statsTopInfluencers)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for _, t := range top {
		response.TopInfluencers = append(response.TopInfluencers, dto.TopInfluencer{
			InfluencerID: t.InfluencerID,
			Name:         t.Name,
			Applications: t.Applications,
		})
	}

	return response, nil
}

// monthBuckets - n месяцев по UTC, последний - текущий, старые первыми
func monthBuckets(now time.Time, n int) []dto.MonthlyCount {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	buckets := make([]dto.MonthlyCount, n)
	for i := 0; i < n; i++ {
		buckets[i].Month = first.AddDate(0, i-(n-1), 0).Format("2006-01")
	}
	return buckets
}

func fillMonths(buckets []dto.MonthlyCount, times []time.Time) {
	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		index[b.Month] = i
	}
	for _, t := range times {
		if i, ok := index[t.UTC().Format("2006-01")]; ok {
			buckets[i].Count++
		}
	}
}
