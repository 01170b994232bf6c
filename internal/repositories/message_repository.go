package repositories

import (
	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

// ConversationSummary - сводка переписки с одним собеседником
type ConversationSummary struct {
	CounterpartID string
	LastMessage   models.Message
	UnreadCount   int64
}

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	Conversation(db *gorm.DB, userID, otherID string) ([]models.Message, error)
	MarkRead(db *gorm.DB, senderID, receiverID string) (int64, error)
	Inbox(db *gorm.DB, userID string) ([]ConversationSummary, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

// Conversation - сообщения в обе стороны, старые первыми
func (r *MessageRepositoryImpl) Conversation(db *gorm.DB, userID, otherID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherID, otherID, userID,
	).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

// MarkRead отмечает прочитанными все сообщения senderID -> receiverID одним UPDATE
func (r *MessageRepositoryImpl) MarkRead(db *gorm.DB, senderID, receiverID string) (int64, error) {
	result := db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", senderID, receiverID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

// InboxLimit - сколько последних переписок возвращает Inbox
const InboxLimit = 100

type inboxGroup struct {
	CounterpartID string
	UnreadCount   int64
}

// Inbox группирует переписки пользователя по собеседнику средствами БД.
// Порядок - по времени последнего сообщения, новые первыми.
func (r *MessageRepositoryImpl) Inbox(db *gorm.DB, userID string) ([]ConversationSummary, error) {
	args := map[string]interface{}{"user": userID, "unread": false, "limit": InboxLimit}

	var groups []inboxGroup
	err := db.Raw(`
		SELECT CASE WHEN sender_id = @user THEN receiver_id ELSE sender_id END AS counterpart_id,
		       SUM(CASE WHEN receiver_id = @user AND read = @unread THEN 1 ELSE 0 END) AS unread_count
		FROM messages
		WHERE sender_id = @user OR receiver_id = @user
		GROUP BY 1
		ORDER BY MAX(created_at) DESC
		LIMIT @limit`, args).Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.CounterpartID)
	}

	var latest []models.Message
	err = db.
		Where("(sender_id = @user AND receiver_id IN @ids) OR (receiver_id = @user AND sender_id IN @ids)",
			map[string]interface{}{"user": userID, "ids": ids}).
		Where(`created_at = (SELECT MAX(x.created_at) FROM messages x
			WHERE (x.sender_id = messages.sender_id AND x.receiver_id = messages.receiver_id)
			   OR (x.sender_id = messages.receiver_id AND x.receiver_id = messages.sender_id))`).
		Order("created_at DESC, id DESC").
		Find(&latest).Error
	if err != nil {
		return nil, err
	}

	last := make(map[string]models.Message, len(latest))
	for _, m := range latest {
		counterpart := m.ReceiverID
		if m.ReceiverID == userID {
			counterpart = m.SenderID
		}
		if _, ok := last[counterpart]; !ok {
			last[counterpart] = m
		}
	}

	summaries := make([]ConversationSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, ConversationSummary{
			CounterpartID: g.CounterpartID,
			LastMessage:   last[g.CounterpartID],
			UnreadCount:   g.UnreadCount,
		})
	}
	return summaries, nil
}
