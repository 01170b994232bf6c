package models

type Message struct {
	BaseModel
	SenderID   string `gorm:"type:uuid;not null;index:idx_messages_pair" json:"senderId"`
	ReceiverID string `gorm:"type:uuid;not null;index:idx_messages_pair;index" json:"receiverId"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Read       bool   `gorm:"not null;default:false" json:"read"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"-"`
}
