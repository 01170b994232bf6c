package models

type UserRole string
type EventStatus string
type ApprovalStatus string
type SubscriptionPlan string

const (
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleBrand      UserRole = "BRAND"
	UserRoleInfluencer UserRole = "INFLUENCER"

	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusClosed    EventStatus = "CLOSED"
	EventStatusCancelled EventStatus = "CANCELLED"

	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"

	SubscriptionFree  SubscriptionPlan = "FREE"
	SubscriptionBasic SubscriptionPlan = "BASIC"
	SubscriptionPro   SubscriptionPlan = "PRO"
)

// IsTerminal - из CLOSED и CANCELLED переходов нет
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusClosed || s == EventStatusCancelled
}

// eventTransitions - допустимые переходы жизненного цикла события
var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusDraft:     {EventStatusPublished, EventStatusCancelled},
	EventStatusPublished: {EventStatusClosed, EventStatusCancelled},
}

// CanTransitionTo проверяет переход статуса события.
// Сохранение текущего статуса переходом не считается и разрешено всегда.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range eventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusClosed, EventStatusCancelled:
		return true
	}
	return false
}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleBrand, UserRoleInfluencer:
		return true
	}
	return false
}
