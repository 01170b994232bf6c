package services

import (
	"errors"
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

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EventService - жизненный цикл события: DRAFT -> PUBLISHED -> CLOSED,
// DRAFT/PUBLISHED -> CANCELLED.
type EventService interface {
	CreateEvent(db *gorm.DB, rc auth.RequestContext, req *dto.CreateEventRequest) (*models.Event, error)
	GetEvent(db *gorm.DB, rc auth.RequestContext, eventID string) (*dto.EventResponse, error)
	UpdateEvent(db *gorm.DB, rc auth.RequestContext, eventID string, req *dto.UpdateEventRequest) (*models.Event, error)
	ChangeStatus(db *gorm.DB, rc auth.RequestContext, eventID string, req *dto.UpdateEventStatusRequest) (*models.Event, error)
	DeleteEvent(db *gorm.DB, rc auth.RequestContext, eventID string) error
	ListEvents(db *gorm.DB, rc auth.RequestContext, query *dto.ListEventsQuery) (*dto.EventListResponse, error)
}

type eventService struct {
	eventRepo    repositories.EventRepository
	interestRepo repositories.InterestRepository
	brandRepo    repositories.BrandProfileRepository
	validator    *validator.Validator
}

func NewEventService(
	eventRepo repositories.EventRepository,
	interestRepo repositories.InterestRepository,
	brandRepo repositories.BrandProfileRepository,
	v *validator.Validator,
) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		interestRepo: interestRepo,
		brandRepo:    brandRepo,
		validator:    v,
	}
}

func (s *eventService) CreateEvent(db *gorm.DB, rc auth.RequestContext, req *dto.CreateEventRequest) (*models.Event, error) {
	if err := rc.Require(auth.ActionEventCreate); err != nil {
		return nil, err
	}

	brand, err := s.brandRepo.FindByUserID(db, rc.PrincipalID)
	if err != nil {
		if errors.Is(err, repositories.ErrBrandProfileNotFound) {
			return nil, apperrors.ErrBrandProfileRequired
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.validator.Check(req); err != nil {
		return nil, err
	}
	if err := validateSchedule(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	status := models.EventStatusDraft
	if req.Status != "" {
		status = models.EventStatus(req.Status)
	}

	event := &models.Event{
		CreatedByID:    brand.ID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Requirements:   req.Requirements,
		Compensation:   strings.TrimSpace(req.Compensation),
		Deadline:       req.Deadline,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Location:       req.Location,
		Status:         status,
		MaxInfluencers: req.MaxInfluencers,
		MinFollowers:   req.MinFollowers,
		Categories:     models.EncodeStringList(req.Categories),
		Images:         models.EncodeStringList(req.Images),
	}

	if err := s.eventRepo.Create(db, event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	event.CreatedBy = brand

	logger.CtxInfo(ctxOf(db), "event created", "event_id", event.ID, "status", event.Status)
	return event, nil
}

// GetEvent: ADMIN видит все, BRAND - свои и опубликованные (чужие черновики - 404),
// INFLUENCER - только опубликованные (иначе 403).
func (s *eventService) GetEvent(db *gorm.DB, rc auth.RequestContext, eventID string) (*dto.EventResponse, error) {
	event, err := s.eventRepo.FindByID(db, eventID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	full := false
	switch {
	case rc.Can(auth.ActionEventReadAny):
		full = true
	case rc.Can(auth.ActionEventReadOwn):
		full, err = s.ownsEvent(db, rc, event)
		if err != nil {
			return nil, err
		}
		if !full && event.Status != models.EventStatusPublished {
			return nil, apperrors.ErrEventNotFound
		}
	default:
		if event.Status != models.EventStatusPublished {
			return nil, apperrors.ErrEventNotPublished
		}
	}

	resp := &dto.EventResponse{Event: *event}
	if full {
		total, err := s.interestRepo.CountByEvent(db, event.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		approved, err := s.interestRepo.CountApproved(db, event.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.InterestCount = &total
		resp.ApprovedCount = &approved
	}
	return resp, nil
}

func (s *eventService) UpdateEvent(db *gorm.DB, rc auth.RequestContext, eventID string, req *dto.UpdateEventRequest) (*models.Event, error) {
	if !rc.Can(auth.ActionEventManageAny) && !rc.Can(auth.ActionEventManageOwn) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	var updated *models.Event
	err := db.Transaction(func(tx *gorm.DB) error {
		event, err := s.loadManageable(tx, rc, eventID)
		if err != nil {
			return err
		}

		if err := s.validator.Check(req); err != nil {
			return err
		}
		if err := validateSchedule(req.StartDate, req.EndDate); err != nil {
			return err
		}

		if req.Status != "" {
			next := models.EventStatus(req.Status)
			if !event.Status.CanTransitionTo(next) {
				return invalidTransition(event.Status, next)
			}
			event.Status = next
		}

		if req.MaxInfluencers != nil {
			approved, err := s.interestRepo.CountApproved(tx, event.ID)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if int64(*req.MaxInfluencers) < approved {
				return apperrors.FieldError("maxInfluencers", "Must not be lower than the number of approved influencers")
			}
		}

		event.Title = strings.TrimSpace(req.Title)
		event.Description = req.Description
		event.Requirements = req.Requirements
		event.Compensation = strings.TrimSpace(req.Compensation)
		event.Deadline = req.Deadline
		event.StartDate = req.StartDate
		event.EndDate = req.EndDate
		event.Location = req.Location
		event.MaxInfluencers = req.MaxInfluencers
		event.MinFollowers = req.MinFollowers
		event.Categories = models.EncodeStringList(req.Categories)
		if req.Images != nil {
			event.Images = models.EncodeStringList(req.Images)
		}

		if err := s.eventRepo.Update(tx, event); err != nil {
			return mapRepoError(err)
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "event updated", "event_id", updated.ID)
	return updated, nil
}

func (s *eventService) ChangeStatus(db *gorm.DB, rc auth.RequestContext, eventID string, req *dto.UpdateEventStatusRequest) (*models.Event, error) {
	if !rc.Can(auth.ActionEventManageAny) && !rc.Can(auth.ActionEventManageOwn) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}

	var event *models.Event
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		event, err = s.loadManageable(tx, rc, eventID)
		if err != nil {
			return err
		}

		next := models.EventStatus(req.Status)
		if !event.Status.CanTransitionTo(next) {
			return invalidTransition(event.Status, next)
		}
		if next == event.Status {
			return nil
		}

		if err := s.eventRepo.UpdateStatus(tx, event.ID, next); err != nil {
			return mapRepoError(err)
		}
		event.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "event status changed", "event_id", event.ID, "status", event.Status)
	return event, nil
}

// DeleteEvent удаляет отклики и событие в одной транзакции, отклики первыми
func (s *eventService) DeleteEvent(db *gorm.DB, rc auth.RequestContext, eventID string) error {
	if !rc.Can(auth.ActionEventManageAny) && !rc.Can(auth.ActionEventManageOwn) {
		return apperrors.ErrInsufficientPermissions
	}

	var removed int64
	err := db.Transaction(func(tx *gorm.DB) error {
		event, err := s.loadManageable(tx, rc, eventID)
		if err != nil {
			return err
		}

		removed, err = s.interestRepo.DeleteByEvent(tx, event.ID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		return mapRepoError(s.eventRepo.Delete(tx, event.ID))
	})
	if err != nil {
		return err
	}

	logger.CtxInfo(ctxOf(db), "event deleted", "event_id", eventID, "interests_removed", removed)
	return nil
}

func (s *eventService) ListEvents(db *gorm.DB, rc auth.RequestContext, query *dto.ListEventsQuery) (*dto.EventListResponse, error) {
	if err := s.validator.Check(query); err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)
	filter := repositories.EventFilter{
		Status:   models.EventStatus(query.Status),
		Category: strings.TrimSpace(query.Category),
		Search:   query.Search,
		Page:     page,
		PageSize: pageSize,
	}

	switch {
	case rc.Can(auth.ActionEventReadAny):
	case rc.Can(auth.ActionEventReadOwn):
		brand, err := s.brandRepo.FindByUserID(db, rc.PrincipalID)
		if errors.Is(err, repositories.ErrBrandProfileNotFound) {
			return &dto.EventListResponse{Events: []models.Event{}, Page: page}, nil
		}
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		filter.CreatedByID = brand.ID
	case rc.Is(models.UserRoleInfluencer):
		// фильтр статуса для инфлюенсера игнорируется
		filter.Status = models.EventStatusPublished
	default:
		return nil, apperrors.ErrInsufficientPermissions
	}

	events, total, err := s.eventRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if events == nil {
		events = []models.Event{}
	}

	return &dto.EventListResponse{
		Events: events,
		Total:  total,
		Page:   page,
		Pages:  dto.Pages(total, pageSize),
	}, nil
}

// loadManageable загружает событие с блокировкой, если вызывающий может им управлять.
// Чужое событие для бренда неотличимо от отсутствующего.
func (s *eventService) loadManageable(tx *gorm.DB, rc auth.RequestContext, eventID string) (*models.Event, error) {
	event, err := s.eventRepo.LockByID(tx, eventID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if rc.Can(auth.ActionEventManageAny) {
		return event, nil
	}

	owned, err := s.ownsEvent(tx, rc, event)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (s *eventService) ownsEvent(db *gorm.DB, rc auth.RequestContext, event *models.Event) (bool, error) {
	if !rc.Is(models.UserRoleBrand) {
		return false, nil
	}
	brand, err := s.brandRepo.FindByUserID(db, rc.PrincipalID)
	if errors.Is(err, repositories.ErrBrandProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return brand.ID == event.CreatedByID, nil
}
