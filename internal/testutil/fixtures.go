package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/config"
	"collabhub_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DefaultPassword - пароль всех пользователей из фикстур
const DefaultPassword = "password123"

// TestSecret - секрет JWT тестовой конфигурации
const TestSecret = "test-secret"

// bcrypt медленный, хеш считается один раз
var passwordHash = func() string {
	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		panic(err)
	}
	return hash
}()

// Config - конфигурация приложения для тестов
func Config() *config.Config {
	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.DSN = "sqlite://memory"
	cfg.JWT.Secret = TestSecret
	cfg.RateLimit.RPS = 1000
	cfg.RateLimit.Burst = 1000
	cfg.Email.AppURL = "http://app.test"
	return cfg
}

// Tokens - TokenManager с секретом тестовой конфигурации
func Tokens() *auth.TokenManager {
	return auth.NewTokenManager(TestSecret, time.Hour)
}

// Token выпускает access token для пользователя
func Token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := Tokens().Generate(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

// RC - контекст запроса от имени пользователя
func RC(user *models.User) auth.RequestContext {
	return auth.RequestContext{PrincipalID: user.ID, Role: user.Role}
}

func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole, name string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        strings.ToLower(fmt.Sprintf("%s_%s@test.com", role, uuid.NewString()[:8])),
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateUser(t, db, models.UserRoleAdmin, "Admin")
}

// CreateBrand создает пользователя BRAND с профилем
func CreateBrand(t *testing.T, db *gorm.DB, company string) (*models.User, *models.BrandProfile) {
	t.Helper()
	user := CreateUser(t, db, models.UserRoleBrand, company+" Owner")
	profile := &models.BrandProfile{
		UserID:       user.ID,
		CompanyName:  company,
		Subscription: models.SubscriptionFree,
	}
	require.NoError(t, db.Create(profile).Error)
	return user, profile
}

// InfluencerOption меняет профиль перед сохранением
type InfluencerOption func(*models.InfluencerProfile)

func WithFollowers(instagram, tiktok int) InfluencerOption {
	return func(p *models.InfluencerProfile) {
		p.InstagramFollowers = instagram
		p.TiktokFollowers = tiktok
	}
}

func WithApprovalStatus(status models.ApprovalStatus) InfluencerOption {
	return func(p *models.InfluencerProfile) {
		p.ApprovalStatus = status
		p.ApprovedAt = nil
		if status == models.ApprovalStatusApproved {
			now := time.Now().UTC()
			p.ApprovedAt = &now
		}
	}
}

// CreateInfluencer создает пользователя INFLUENCER с профилем.
// По умолчанию профиль одобрен и имеет 10 000 подписчиков в Instagram.
func CreateInfluencer(t *testing.T, db *gorm.DB, name string, opts ...InfluencerOption) (*models.User, *models.InfluencerProfile) {
	t.Helper()
	user := CreateUser(t, db, models.UserRoleInfluencer, name)
	profile := &models.InfluencerProfile{
		UserID:             user.ID,
		InstagramFollowers: 10000,
		Categories:         models.EncodeStringList([]string{"fashion"}),
	}
	WithApprovalStatus(models.ApprovalStatusApproved)(profile)
	for _, opt := range opts {
		opt(profile)
	}
	require.NoError(t, db.Create(profile).Error)
	return user, profile
}

// EventOption меняет событие перед сохранением
type EventOption func(*models.Event)

func WithStatus(status models.EventStatus) EventOption {
	return func(e *models.Event) { e.Status = status }
}

func WithMaxInfluencers(n int) EventOption {
	return func(e *models.Event) { e.MaxInfluencers = &n }
}

func WithMinFollowers(n int) EventOption {
	return func(e *models.Event) { e.MinFollowers = &n }
}

func WithCategories(categories ...string) EventOption {
	return func(e *models.Event) { e.Categories = models.EncodeStringList(categories) }
}

func WithTitle(title string) EventOption {
	return func(e *models.Event) { e.Title = title }
}

// CreateEvent создает опубликованное событие бренда
func CreateEvent(t *testing.T, db *gorm.DB, brand *models.BrandProfile, opts ...EventOption) *models.Event {
	t.Helper()
	event := &models.Event{
		CreatedByID:  brand.ID,
		Title:        "Summer launch campaign",
		Description:  "Promote the new summer collection on social media",
		Compensation: "500 USD",
		Status:       models.EventStatusPublished,
		Categories:   models.EncodeStringList([]string{"fashion"}),
		Images:       models.EncodeStringList(nil),
	}
	for _, opt := range opts {
		opt(event)
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

// CreateInterest создает запись отклика напрямую, минуя проверки сервиса
func CreateInterest(t *testing.T, db *gorm.DB, event *models.Event, influencer *models.InfluencerProfile, approved bool) *models.EventInterest {
	t.Helper()
	interest := &models.EventInterest{
		EventID:      event.ID,
		InfluencerID: influencer.ID,
		Approved:     approved,
	}
	require.NoError(t, db.Create(interest).Error)
	return interest
}

// CreateMessage сохраняет сообщение с заданным временем
func CreateMessage(t *testing.T, db *gorm.DB, from, to *models.User, content string, at time.Time) *models.Message {
	t.Helper()
	message := &models.Message{
		SenderID:   from.ID,
		ReceiverID: to.ID,
		Content:    content,
	}
	message.CreatedAt = at
	message.UpdatedAt = at
	require.NoError(t, db.Create(message).Error)
	return message
}
