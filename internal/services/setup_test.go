package services

import (
	"sync"
	"testing"

	"collabhub_backend/internal/config"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/testutil"
	"collabhub_backend/internal/validator"

	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu        sync.Mutex
	delivered map[string][]*models.Message
}

func (p *recordingPublisher) PublishMessage(receiverID string, message *models.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.delivered == nil {
		p.delivered = make(map[string][]*models.Message)
	}
	p.delivered[receiverID] = append(p.delivered[receiverID], message)
}

func (p *recordingPublisher) For(userID string) []*models.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.delivered[userID]
}

type testEnv struct {
	db        *gorm.DB
	services  *ServiceContainer
	mail      *testutil.RecordingProvider
	publisher *recordingPublisher
	cfg       *config.Config
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := testutil.Config()
	for _, m := range mutate {
		m(cfg)
	}

	env := &testEnv{
		db:        testutil.NewTestDB(t),
		mail:      &testutil.RecordingProvider{},
		publisher: &recordingPublisher{},
		cfg:       cfg,
	}
	env.services = NewServiceContainer(Dependencies{
		Config:        cfg,
		Tokens:        testutil.Tokens(),
		EmailProvider: env.mail,
		Publisher:     env.publisher,
		Validator:     validator.New(),
	})
	return env
}

func ptr[T any](v T) *T {
	return &v
}

// sentMail дожидается фоновых отправок и возвращает записанные письма
func (e *testEnv) sentMail() []testutil.SentEmail {
	e.services.NotificationService.Wait()
	return e.mail.Sent()
}
