package validator

import (
	"log"
	"strings"

	"collabhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные функции валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка конфигурации, приложение не должно стартовать
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("notblank", validateNotBlank)
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-registrable-role", validateRegistrableRole)
	mustRegister("is-event-status", validateEventStatus)
	mustRegister("is-approval-status", validateApprovalStatus)
	mustRegister("is-subscription-plan", validateSubscriptionPlan)
}

// --- Функции валидации ---
// Пустые значения пропускаются, для них есть 'required'.

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserRole(value).Valid()
}

// validateRegistrableRole - администратора нельзя зарегистрировать самостоятельно
func validateRegistrableRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleBrand, models.UserRoleInfluencer:
		return true
	default:
		return false
	}
}

func validateEventStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.EventStatus(value).Valid()
}

func validateApprovalStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ApprovalStatus(value) {
	case models.ApprovalStatusPending, models.ApprovalStatusApproved, models.ApprovalStatusRejected:
		return true
	default:
		return false
	}
}

func validateSubscriptionPlan(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.SubscriptionPlan(value) {
	case models.SubscriptionFree, models.SubscriptionBasic, models.SubscriptionPro:
		return true
	default:
		return false
	}
}
