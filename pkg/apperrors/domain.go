package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для ошибок бизнес-логики.
Конфликты намеренно отдаются со статусом 400, а не 409: клиенты
различают их по полю code.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (400)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusBadRequest)
}

// ErrConflict - общая фабрика для конфликтов (400)
func ErrConflict(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных переходов статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrPreconditionFailed - не выполнено предварительное условие (400)
func ErrPreconditionFailed(domain, message string) *AppError {
	return New(CodePreconditionFailed, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Auth ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrRateLimited = New(
	CodeRateLimited,
	"request",
	"Rate limit exceeded",
	http.StatusTooManyRequests,
)

// --- Profiles ---

var ErrBrandProfileNotFound = New(CodeNotFound, "brand_profile", "Brand profile not found", http.StatusNotFound)

var ErrBrandProfileExists = New(CodeConflict, "brand_profile", "Brand profile already exists", http.StatusBadRequest)

var ErrBrandProfileRequired = New(
	CodePreconditionFailed,
	"brand_profile",
	"Create a brand profile before creating events",
	http.StatusBadRequest,
)

var ErrInfluencerProfileNotFound = New(CodeNotFound, "influencer_profile", "Influencer profile not found", http.StatusNotFound)

var ErrInfluencerNotApproved = New(
	CodeForbidden,
	"influencer_profile",
	"Influencer profile is not approved",
	http.StatusForbidden,
)

// --- Events ---

var ErrEventNotFound = New(CodeNotFound, "event", "Event not found", http.StatusNotFound)

var ErrEventNotPublished = New(
	CodeForbidden,
	"event",
	"Event is not published",
	http.StatusForbidden,
)

var ErrEventClosed = New(
	CodeInvalidStatus,
	"event",
	"Event is closed or cancelled",
	http.StatusBadRequest,
)

var ErrInvalidEventTransition = New(
	CodeInvalidStatus,
	"event",
	"Event status transition is not allowed",
	http.StatusBadRequest,
)

// --- Interests / invitations ---

var ErrInterestNotFound = New(CodeNotFound, "interest", "Interest not found", http.StatusNotFound)

var ErrInterestExists = New(
	CodeConflict,
	"interest",
	"Interest already exists for this event",
	http.StatusBadRequest,
)

var ErrInterestAlreadyApproved = New(
	CodeConflict,
	"interest",
	"Interest is already approved",
	http.StatusBadRequest,
)

var ErrInsufficientFollowers = New(
	CodeValidationFailed,
	"interest",
	"Not enough followers for this event",
	http.StatusBadRequest,
)

var ErrEventCapacityReached = New(
	CodeLimitExceeded,
	"interest",
	"Event has reached the maximum number of influencers",
	http.StatusBadRequest,
)

// --- Approval queue ---

var ErrAlreadyApproved = New(
	CodeConflict,
	"approval",
	"Influencer is already approved",
	http.StatusBadRequest,
)

var ErrInvalidApprovalTransition = New(
	CodeInvalidStatus,
	"approval",
	"Approval status transition is not allowed",
	http.StatusBadRequest,
)

// --- Messages ---

var ErrRecipientNotFound = New(CodeNotFound, "message", "Recipient not found", http.StatusNotFound)

var ErrMessageToSelf = New(
	CodeValidationFailed,
	"message",
	"Cannot send a message to yourself",
	http.StatusBadRequest,
)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)
