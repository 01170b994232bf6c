package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type InfluencerProfile struct {
	BaseModel
	UserID             string         `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Bio                string         `json:"bio"`
	Location           string         `json:"location"`
	InstagramHandle    string         `json:"instagramHandle"`
	TiktokHandle       string         `json:"tiktokHandle"`
	YoutubeHandle      string         `json:"youtubeHandle"`
	InstagramFollowers int            `gorm:"not null;default:0" json:"instagramFollowers"`
	TiktokFollowers    int            `gorm:"not null;default:0" json:"tiktokFollowers"`
	YoutubeSubscribers int            `gorm:"not null;default:0" json:"youtubeSubscribers"`
	Categories         datatypes.JSON `gorm:"type:jsonb" json:"categories"` // ["fashion", "beauty"]
	ApprovalStatus     ApprovalStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"approvalStatus"`
	ApprovedAt         *time.Time     `json:"approvedAt,omitempty"`
	RejectionReason    *string        `json:"rejectionReason,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// EligibleFollowers - сумма подписчиков, по которой проверяется minFollowers.
// YouTube в порог не входит.
func (p *InfluencerProfile) EligibleFollowers() int {
	return p.InstagramFollowers + p.TiktokFollowers
}

func (p *InfluencerProfile) IsApproved() bool {
	return p.ApprovalStatus == ApprovalStatusApproved
}

func (p *InfluencerProfile) CategoryList() []string {
	return decodeStringList(p.Categories)
}

// decodeStringList читает jsonb-массив строк; битые данные дают пустой список
func decodeStringList(raw datatypes.JSON) []string {
	var list []string
	if len(raw) == 0 {
		return list
	}
	_ = json.Unmarshal(raw, &list)
	return list
}

// EncodeStringList сериализует список строк для jsonb-колонки
func EncodeStringList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return datatypes.JSON(b)
}
