package dto

import (
	"time"

	"collabhub_backend/internal/models"
)

// --- Event Requests ---

type CreateEventRequest struct {
	Title          string     `json:"title" validate:"required,min=5,max=200"`
	Description    string     `json:"description" validate:"required,min=20,max=10000"`
	Requirements   string     `json:"requirements" validate:"omitempty,max=5000"`
	Compensation   string     `json:"compensation" validate:"required,notblank,max=500"`
	Deadline       *time.Time `json:"deadline"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Location       string     `json:"location" validate:"omitempty,max=255"`
	Status         string     `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"` // начальный статус
	MaxInfluencers *int       `json:"maxInfluencers" validate:"omitempty,min=1"`
	MinFollowers   *int       `json:"minFollowers" validate:"omitempty,min=0"`
	Categories     []string   `json:"categories" validate:"required,min=1,dive,notblank"`
	Images         []string   `json:"images" validate:"omitempty,dive,url"`
}

// UpdateEventRequest - полная замена. Images == nil оставляет прежние изображения.
type UpdateEventRequest struct {
	Title          string     `json:"title" validate:"required,min=5,max=200"`
	Description    string     `json:"description" validate:"required,min=20,max=10000"`
	Requirements   string     `json:"requirements" validate:"omitempty,max=5000"`
	Compensation   string     `json:"compensation" validate:"required,notblank,max=500"`
	Deadline       *time.Time `json:"deadline"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Location       string     `json:"location" validate:"omitempty,max=255"`
	Status         string     `json:"status" validate:"omitempty,is-event-status"`
	MaxInfluencers *int       `json:"maxInfluencers" validate:"omitempty,min=1"`
	MinFollowers   *int       `json:"minFollowers" validate:"omitempty,min=0"`
	Categories     []string   `json:"categories" validate:"required,min=1,dive,notblank"`
	Images         []string   `json:"images" validate:"omitempty,dive,url"`
}

type UpdateEventStatusRequest struct {
	Status string `json:"status" validate:"required,is-event-status"`
}

type ListEventsQuery struct {
	Status   string `form:"status" validate:"omitempty,is-event-status"`
	Category string `form:"category" validate:"omitempty,max=100"`
	Search   string `form:"search" validate:"omitempty,max=200"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// --- Event Responses ---

type EventResponse struct {
	models.Event
	InterestCount *int64 `json:"interestCount,omitempty"`
	ApprovedCount *int64 `json:"approvedCount,omitempty"`
}

type EventListResponse struct {
	Events []models.Event `json:"events"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Pages  int            `json:"pages"`
}
