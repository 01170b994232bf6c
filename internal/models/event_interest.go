package models

// EventInterest - отклик инфлюенсера на событие или приглашение бренда.
// Пара (event_id, influencer_id) уникальна на уровне БД.
type EventInterest struct {
	BaseModel
	EventID      string  `gorm:"type:uuid;not null;uniqueIndex:idx_event_interest_pair" json:"eventId"`
	InfluencerID string  `gorm:"type:uuid;not null;uniqueIndex:idx_event_interest_pair;index" json:"influencerId"`
	Message      *string `gorm:"type:text" json:"message,omitempty"`
	Approved     bool    `gorm:"not null;default:false;index" json:"approved"`

	// Relations
	Event      *Event             `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Influencer *InfluencerProfile `gorm:"foreignKey:InfluencerID" json:"influencer,omitempty"`
}
