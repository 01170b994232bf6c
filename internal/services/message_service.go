package services

import (
	"strings"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/validator"
	"collabhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MessagePublisher доставляет сохраненное сообщение получателю в реальном времени.
// Реализуется websocket-хабом.
type MessagePublisher interface {
	PublishMessage(receiverID string, message *models.Message)
}

type nopPublisher struct{}

func (nopPublisher) PublishMessage(string, *models.Message) {}

type MessageService interface {
	SendMessage(db *gorm.DB, rc auth.RequestContext, req *dto.SendMessageRequest) (*models.Message, error)
	GetConversation(db *gorm.DB, rc auth.RequestContext, otherUserID string) (*dto.ConversationResponse, error)
	GetInbox(db *gorm.DB, rc auth.RequestContext, unreadOnly bool) (*dto.InboxResponse, error)
}

type messageService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	publisher   MessagePublisher
	validator   *validator.Validator
}

// NewMessageService - publisher может быть nil, тогда сообщения только сохраняются
func NewMessageService(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	publisher MessagePublisher,
	v *validator.Validator,
) MessageService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		validator:   v,
	}
}

func (s *messageService) SendMessage(db *gorm.DB, rc auth.RequestContext, req *dto.SendMessageRequest) (*models.Message, error) {
	if err := rc.Require(auth.ActionMessageSend); err != nil {
		return nil, err
	}
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.FieldError("content", "This field is required")
	}
	if req.ReceiverID == rc.PrincipalID {
		return nil, apperrors.ErrMessageToSelf
	}

	exists, err := s.userRepo.Exists(db, req.ReceiverID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !exists {
		return nil, apperrors.ErrRecipientNotFound
	}

	message := &models.Message{
		SenderID:   rc.PrincipalID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxDebug(ctxOf(db), "message stored", "message_id", message.ID, "receiver_id", message.ReceiverID)
	s.publisher.PublishMessage(message.ReceiverID, message)
	return message, nil
}

// GetConversation сначала отмечает прочитанными входящие от otherUserID,
// затем возвращает переписку. Исходящие сообщения вызывающего не трогаются.
func (s *messageService) GetConversation(db *gorm.DB, rc auth.RequestContext, otherUserID string) (*dto.ConversationResponse, error) {
	if err := rc.Require(auth.ActionMessageSend); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(db, otherUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	if _, err := s.messageRepo.MarkRead(db, otherUserID, rc.PrincipalID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	messages, err := s.messageRepo.Conversation(db, rc.PrincipalID, otherUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return &dto.ConversationResponse{Messages: messages}, nil
}

func (s *messageService) GetInbox(db *gorm.DB, rc auth.RequestContext, unreadOnly bool) (*dto.InboxResponse, error) {
	if err := rc.Require(auth.ActionMessageSend); err != nil {
		return nil, err
	}

	summaries, err := s.messageRepo.Inbox(db, rc.PrincipalID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		ids = append(ids, summary.CounterpartID)
	}
	users, err := s.userRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	response := &dto.InboxResponse{Conversations: []dto.ConversationSummary{}}
	for _, summary := range summaries {
		response.TotalUnread += summary.UnreadCount
		if unreadOnly && summary.UnreadCount == 0 {
			continue
		}

		counterpart := dto.UserSummary{ID: summary.CounterpartID}
		if user, ok := users[summary.CounterpartID]; ok {
			counterpart.Name = user.Name
			counterpart.Role = string(user.Role)
		}
		response.Conversations = append(response.Conversations, dto.ConversationSummary{
			User:        counterpart,
			LastMessage: summary.LastMessage,
			UnreadCount: summary.UnreadCount,
		})
	}
	return response, nil
}
