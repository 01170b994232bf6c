package models

import (
	"time"

	"gorm.io/datatypes"
)

type Event struct {
	BaseModel
	CreatedByID    string         `gorm:"type:uuid;not null;index" json:"createdById"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Requirements   string         `gorm:"type:text" json:"requirements"`
	Compensation   string         `gorm:"not null" json:"compensation"`
	Deadline       *time.Time     `json:"deadline,omitempty"`
	StartDate      *time.Time     `json:"startDate,omitempty"`
	EndDate        *time.Time     `json:"endDate,omitempty"`
	Location       string         `json:"location"`
	Status         EventStatus    `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	MaxInfluencers *int           `json:"maxInfluencers"`
	MinFollowers   *int           `json:"minFollowers"`
	Categories     datatypes.JSON `gorm:"type:jsonb" json:"categories"`
	Images         datatypes.JSON `gorm:"type:jsonb" json:"images"`

	// Relations
	CreatedBy *BrandProfile `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

func (e *Event) CategoryList() []string {
	return decodeStringList(e.Categories)
}

func (e *Event) ImageList() []string {
	return decodeStringList(e.Images)
}

// AcceptsInvitations - приглашения возможны, пока событие не закрыто и не отменено
func (e *Event) AcceptsInvitations() bool {
	return !e.Status.IsTerminal()
}
