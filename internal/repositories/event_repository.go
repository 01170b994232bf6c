package repositories

import (
	"encoding/json"
	"strings"

	"collabhub_backend/internal/database"
	"collabhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventFilter - фильтры списка событий. Пустые поля не применяются.
type EventFilter struct {
	CreatedByID string
	Status      models.EventStatus
	Category    string
	Search      string
	Page        int
	PageSize    int
}

type EventRepository interface {
	Create(db *gorm.DB, event *models.Event) error
	FindByID(db *gorm.DB, id string) (*models.Event, error)
	FindPublishedByID(db *gorm.DB, id string) (*models.Event, error)
	FindOwnedByID(db *gorm.DB, id, brandProfileID string) (*models.Event, error)
	LockByID(db *gorm.DB, id string) (*models.Event, error)
	Update(db *gorm.DB, event *models.Event) error
	UpdateStatus(db *gorm.DB, id string, status models.EventStatus) error
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, filter EventFilter) ([]models.Event, int64, error)
}

type EventRepositoryImpl struct{}

func NewEventRepository() EventRepository {
	return &EventRepositoryImpl{}
}

func (r *EventRepositoryImpl) Create(db *gorm.DB, event *models.Event) error {
	return db.Create(event).Error
}

func (r *EventRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	err := db.Preload("CreatedBy").First(&event, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, ErrEventNotFound, nil)
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindPublishedByID(db *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	err := db.Where("id = ? AND status = ?", id, models.EventStatusPublished).First(&event).Error
	if err != nil {
		return nil, translate(err, ErrEventNotFound, nil)
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindOwnedByID(db *gorm.DB, id, brandProfileID string) (*models.Event, error) {
	var event models.Event
	err := db.Where("id = ? AND created_by_id = ?", id, brandProfileID).First(&event).Error
	if err != nil {
		return nil, translate(err, ErrEventNotFound, nil)
	}
	return &event, nil
}

// LockByID читает событие с блокировкой строки до конца транзакции.
// SQLite блокирует всю базу на запись, поэтому FOR UPDATE нужен только PostgreSQL.
func (r *EventRepositoryImpl) LockByID(db *gorm.DB, id string) (*models.Event, error) {
	query := db
	if database.IsPostgres(db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var event models.Event
	err := query.First(&event, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, ErrEventNotFound, nil)
	}
	return &event, nil
}

// Update - полная замена редактируемых полей
func (r *EventRepositoryImpl) Update(db *gorm.DB, event *models.Event) error {
	result := db.Model(event).Select(
		"title", "description", "requirements", "compensation",
		"deadline", "start_date", "end_date", "location", "status",
		"max_influencers", "min_followers", "categories", "images", "updated_at",
	).Updates(event)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.EventStatus) error {
	result := db.Model(&models.Event{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete удаляет только само событие. Отклики удаляются раньше в той же транзакции.
func (r *EventRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) List(db *gorm.DB, filter EventFilter) ([]models.Event, int64, error) {
	scope := eventFilterScope(db, filter)

	var total int64
	if err := db.Model(&models.Event{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := db.Scopes(scope).Preload("CreatedBy").
		Order("created_at DESC").
		Limit(filter.PageSize).Offset(offset(filter.Page, filter.PageSize)).
		Find(&events).Error
	return events, total, err
}

func eventFilterScope(db *gorm.DB, filter EventFilter) func(*gorm.DB) *gorm.DB {
	postgres := database.IsPostgres(db)

	return func(q *gorm.DB) *gorm.DB {
		if filter.CreatedByID != "" {
			q = q.Where("events.created_by_id = ?", filter.CreatedByID)
		}
		if filter.Status != "" {
			q = q.Where("events.status = ?", filter.Status)
		}
		if filter.Category != "" {
			if postgres {
				needle, _ := json.Marshal([]string{filter.Category})
				q = q.Where("events.categories @> ?::jsonb", string(needle))
			} else {
				q = q.Where("EXISTS (SELECT 1 FROM json_each(events.categories) WHERE json_each.value = ?)", filter.Category)
			}
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
			q = q.Where(`(LOWER(events.title) LIKE ? ESCAPE '\' OR LOWER(events.description) LIKE ? ESCAPE '\')`, pattern, pattern)
		}
		return q
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike экранирует метасимволы LIKE, чтобы поиск был подстрокой, а не шаблоном
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
