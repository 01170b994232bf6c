package dto

import "collabhub_backend/internal/models"

type WaitingListRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

type ApprovalQueueQuery struct {
	Status   string `form:"status" validate:"omitempty,is-approval-status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ApprovalQueueResponse struct {
	Profiles []models.InfluencerProfile `json:"profiles"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	Pages    int                        `json:"pages"`
}
