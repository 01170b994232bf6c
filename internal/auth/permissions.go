package auth

import (
	"collabhub_backend/internal/models"
	"collabhub_backend/pkg/apperrors"
)

// Action - действие, право на которое проверяется по роли
type Action string

const (
	ActionEventCreate       Action = "event:create"
	ActionEventReadAny      Action = "event:read:any"
	ActionEventReadOwn      Action = "event:read:own"
	ActionEventManageAny    Action = "event:manage:any"
	ActionEventManageOwn    Action = "event:manage:own"
	ActionInterestExpress   Action = "interest:express"
	ActionInterestInvite    Action = "interest:invite"
	ActionInterestListAny   Action = "interest:list:any"
	ActionInterestListOwn   Action = "interest:list:own"
	ActionBrandProfile      Action = "profile:brand"
	ActionInfluencerProfile Action = "profile:influencer"
	ActionBrandStats        Action = "stats:brand"
	ActionApprovalQueue     Action = "approval:manage"
	ActionMessageSend       Action = "message:send"
)

// Permissions - таблица прав по ролям. Проверки владения выполняют сервисы.
var Permissions = map[models.UserRole][]Action{
	models.UserRoleAdmin: {
		ActionEventReadAny,
		ActionEventManageAny,
		ActionInterestListAny,
		ActionApprovalQueue,
		ActionMessageSend,
	},
	models.UserRoleBrand: {
		ActionEventCreate,
		ActionEventReadOwn,
		ActionEventManageOwn,
		ActionInterestInvite,
		ActionInterestListOwn,
		ActionBrandProfile,
		ActionBrandStats,
		ActionMessageSend,
	},
	models.UserRoleInfluencer: {
		ActionInterestExpress,
		ActionInfluencerProfile,
		ActionMessageSend,
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role models.UserRole, action Action) bool {
	for _, a := range Permissions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// RequestContext - аутентифицированный участник запроса.
// Передается в сервисы по значению.
type RequestContext struct {
	PrincipalID string
	Role        models.UserRole
}

func (rc RequestContext) Can(action Action) bool {
	return HasPermission(rc.Role, action)
}

// Require возвращает ErrInsufficientPermissions, если действие не разрешено
func (rc RequestContext) Require(action Action) error {
	if !rc.Can(action) {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

func (rc RequestContext) IsAdmin() bool {
	return rc.Role == models.UserRoleAdmin
}

func (rc RequestContext) Is(role models.UserRole) bool {
	return rc.Role == role
}
