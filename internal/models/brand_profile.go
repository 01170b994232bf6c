package models

import "time"

type BrandProfile struct {
	BaseModel
	UserID            string           `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	CompanyName       string           `gorm:"not null" json:"companyName"`
	Description       string           `json:"description"`
	Website           string           `json:"website"`
	Industry          string           `json:"industry"`
	Logo              string           `json:"logo"`
	Subscription      SubscriptionPlan `gorm:"type:varchar(20);not null;default:'FREE'" json:"subscription"`
	SubscriptionStart *time.Time       `json:"subscriptionStart,omitempty"`
	SubscriptionEnd   *time.Time       `json:"subscriptionEnd,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
