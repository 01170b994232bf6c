package dto

import "time"

type BrandProfileRequest struct {
	CompanyName       string     `json:"companyName" validate:"required,notblank,max=200"`
	Description       string     `json:"description" validate:"omitempty,max=5000"`
	Website           string     `json:"website" validate:"omitempty,url"`
	Industry          string     `json:"industry" validate:"omitempty,max=100"`
	Logo              string     `json:"logo" validate:"omitempty,url"`
	Subscription      string     `json:"subscription" validate:"omitempty,is-subscription-plan"`
	SubscriptionStart *time.Time `json:"subscriptionStart"`
	SubscriptionEnd   *time.Time `json:"subscriptionEnd"`
}

type InfluencerProfileRequest struct {
	Bio                string   `json:"bio" validate:"omitempty,max=2000"`
	Location           string   `json:"location" validate:"omitempty,max=255"`
	InstagramHandle    string   `json:"instagramHandle" validate:"omitempty,max=100"`
	TiktokHandle       string   `json:"tiktokHandle" validate:"omitempty,max=100"`
	YoutubeHandle      string   `json:"youtubeHandle" validate:"omitempty,max=100"`
	InstagramFollowers int      `json:"instagramFollowers" validate:"gte=0"`
	TiktokFollowers    int      `json:"tiktokFollowers" validate:"gte=0"`
	YoutubeSubscribers int      `json:"youtubeSubscribers" validate:"gte=0"`
	Categories         []string `json:"categories" validate:"omitempty,dive,notblank"`
}
