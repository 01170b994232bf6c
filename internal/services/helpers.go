package services

import (
	"fmt"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/pkg/apperrors"
)

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func validateSchedule(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.FieldError("endDate", "Must not be before startDate")
	}
	return nil
}

func invalidTransition(from, to models.EventStatus) error {
	return apperrors.ErrInvalidEventTransition.WithDetails(map[string]string{
		"status": fmt.Sprintf("Cannot change status from %s to %s", from, to),
	})
}
