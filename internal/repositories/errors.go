package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrUserAlreadyExists         = errors.New("user already exists")
	ErrBrandProfileNotFound      = errors.New("brand profile not found")
	ErrBrandProfileExists        = errors.New("brand profile already exists")
	ErrInfluencerProfileNotFound = errors.New("influencer profile not found")
	ErrInfluencerProfileExists   = errors.New("influencer profile already exists")
	ErrEventNotFound             = errors.New("event not found")
	ErrInterestNotFound          = errors.New("interest not found")
	ErrInterestExists            = errors.New("interest already exists")
)

// translate приводит ошибки gorm к ошибкам репозитория
func translate(err error, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case duplicate != nil && isDuplicate(err):
		return duplicate
	default:
		return err
	}
}

// isDuplicate распознает нарушение уникального индекса. Драйверы без
// трансляции ошибок отдают его только текстом.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
