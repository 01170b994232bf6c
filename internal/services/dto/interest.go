package dto

import "collabhub_backend/internal/models"

type ExpressInterestRequest struct {
	Message *string `json:"message" validate:"omitempty,max=1000"`
}

type InviteRequest struct {
	InfluencerID string  `json:"influencerId" validate:"required,uuid"`
	Message      *string `json:"message" validate:"omitempty,max=1000"`
}

type InterestStateResponse struct {
	HasInterest bool                  `json:"hasInterest"`
	Interest    *models.EventInterest `json:"interest"`
}

type InterestListResponse struct {
	Interests []models.EventInterest `json:"interests"`
}
