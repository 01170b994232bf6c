package services

import (
	"context"
	"errors"

	"collabhub_backend/internal/repositories"
	"collabhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// repoErrors - соответствие ошибок репозиториев ошибкам API
var repoErrors = map[error]*apperrors.AppError{
	repositories.ErrUserNotFound:              apperrors.ErrUserNotFound,
	repositories.ErrUserAlreadyExists:         apperrors.ErrEmailAlreadyExists,
	repositories.ErrBrandProfileNotFound:      apperrors.ErrBrandProfileNotFound,
	repositories.ErrBrandProfileExists:        apperrors.ErrBrandProfileExists,
	repositories.ErrInfluencerProfileNotFound: apperrors.ErrInfluencerProfileNotFound,
	repositories.ErrInfluencerProfileExists:   apperrors.ErrConflict("influencer_profile", "Influencer profile already exists"),
	repositories.ErrEventNotFound:             apperrors.ErrEventNotFound,
	repositories.ErrInterestNotFound:          apperrors.ErrInterestNotFound,
	repositories.ErrInterestExists:            apperrors.ErrInterestExists,
}

// mapRepoError переводит ошибку репозитория в AppError.
// Неизвестные ошибки становятся внутренними (500).
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	for repoErr, appErr := range repoErrors {
		if errors.Is(err, repoErr) {
			return appErr
		}
	}
	return apperrors.InternalError(err)
}

// ctxOf возвращает context запроса, привязанный к *gorm.DB
func ctxOf(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}
