package services

import (
	"testing"
	"time"

	"collabhub_backend/internal/email"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/testutil"
	"collabhub_backend/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowProvider держит каждую отправку, пока не закрыт release
type slowProvider struct {
	testutil.RecordingProvider
	release chan struct{}
}

func (p *slowProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	<-p.release
	return p.RecordingProvider.SendTemplate(to, subject, templateName, data)
}

func TestNotifications_DoNotBlockRequest(t *testing.T) {
	env := newTestEnv(t)
	provider := &slowProvider{release: make(chan struct{})}
	env.services = NewServiceContainer(Dependencies{
		Config:        env.cfg,
		Tokens:        testutil.Tokens(),
		EmailProvider: provider,
		Publisher:     env.publisher,
		Validator:     validator.New(),
	})

	_, brand := testutil.CreateBrand(t, env.db, "Acme")
	event := testutil.CreateEvent(t, env.db, brand)
	influencer, _ := testutil.CreateInfluencer(t, env.db, "Alice")

	done := make(chan error, 1)
	go func() {
		_, err := env.services.InterestService.ExpressInterest(env.db, testutil.RC(influencer), event.ID, &dto.ExpressInterestRequest{})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		close(provider.release)
		t.Fatal("interest request waited for email delivery")
	}
	assert.Empty(t, provider.Sent())

	close(provider.release)
	env.services.NotificationService.Wait()

	sent := provider.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, email.TemplateInterestReceived, sent[0].Template)
	assert.Equal(t, "Alice", sent[0].Data["InfluencerName"])
}
