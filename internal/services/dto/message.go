package dto

import "collabhub_backend/internal/models"

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required,uuid"`
	Content    string `json:"content" validate:"required,max=2000"`
}

type ConversationResponse struct {
	Messages []models.Message `json:"messages"`
}

type ConversationSummary struct {
	User        UserSummary    `json:"user"`
	LastMessage models.Message `json:"lastMessage"`
	UnreadCount int64          `json:"unreadCount"`
}

type InboxResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
	TotalUnread   int64                 `json:"totalUnread"`
}
