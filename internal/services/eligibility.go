package services

import (
	"collabhub_backend/internal/models"
	"collabhub_backend/pkg/apperrors"
)

// EligibilityInput - все, что нужно для проверки нового отклика или приглашения.
// ApprovedCount и Exists читаются в той же транзакции, что и последующая запись.
type EligibilityInput struct {
	Event         *models.Event
	Profile       *models.InfluencerProfile
	ApprovedCount int64
	Exists        bool
	IsInvitation  bool
}

// CheckEligibility - единые правила для отклика инфлюенсера и приглашения бренда:
// дубликат, порог подписчиков (только для отклика), лимит участников.
func CheckEligibility(in EligibilityInput) error {
	if in.Exists {
		return apperrors.ErrInterestExists
	}

	if !in.IsInvitation && in.Event.MinFollowers != nil {
		followers := in.Profile.EligibleFollowers()
		if followers < *in.Event.MinFollowers {
			return apperrors.ErrInsufficientFollowers.WithDetails(map[string]int{
				"required": *in.Event.MinFollowers,
				"actual":   followers,
			})
		}
	}

	return checkCapacity(in.Event, in.ApprovedCount)
}

// checkCapacity - approved не может превысить maxInfluencers
func checkCapacity(event *models.Event, approvedCount int64) error {
	if event.MaxInfluencers == nil {
		return nil
	}
	if approvedCount >= int64(*event.MaxInfluencers) {
		return apperrors.ErrEventCapacityReached.WithDetails(map[string]int64{
			"maxInfluencers": int64(*event.MaxInfluencers),
			"approved":       approvedCount,
		})
	}
	return nil
}
