package services

import (
	"testing"

	"collabhub_backend/internal/email"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/testutil"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprove(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateAdmin(t, env.db)
	user, profile := testutil.CreateInfluencer(t, env.db, "Alice", testutil.WithApprovalStatus(models.ApprovalStatusPending))

	approved, err := env.services.ApprovalService.Approve(env.db, testutil.RC(admin), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusApproved, approved.ApprovalStatus)
	assert.NotNil(t, approved.ApprovedAt)

	var stored models.InfluencerProfile
	require.NoError(t, env.db.First(&stored, "id = ?", profile.ID).Error)
	assert.Equal(t, models.ApprovalStatusApproved, stored.ApprovalStatus)
	assert.NotNil(t, stored.ApprovedAt)

	sent := env.sentMail()
	require.Len(t, sent, 1)
	assert.Equal(t, email.TemplateProfileApproved, sent[0].Template)
	assert.Equal(t, []string{user.Email}, sent[0].To)

	_, err = env.services.ApprovalService.Approve(env.db, testutil.RC(admin), profile.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)
}

func TestApprove_FromWaitingList(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateAdmin(t, env.db)
	_, profile := testutil.CreateInfluencer(t, env.db, "Alice", testutil.WithApprovalStatus(models.ApprovalStatusRejected))

	approved, err := env.services.ApprovalService.Approve(env.db, testutil.RC(admin), profile.ID)
	require.NoError(t, err)
	assert.Nil(t, approved.RejectionReason)
}

func TestApprove_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	brandUser, _ := testutil.CreateBrand(t, env.db, "Acme")
	_, profile := testutil.CreateInfluencer(t, env.db, "Alice", testutil.WithApprovalStatus(models.ApprovalStatusPending))

	_, err := env.services.ApprovalService.Approve(env.db, testutil.RC(brandUser), profile.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	_, err = env.services.ApprovalService.Approve(env.db, testutil.RC(testutil.CreateAdmin(t, env.db)), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrInfluencerProfileNotFound)
}

func TestWaitList(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateAdmin(t, env.db)
	_, pending := testutil.CreateInfluencer(t, env.db, "Alice", testutil.WithApprovalStatus(models.ApprovalStatusPending))
	_, approved := testutil.CreateInfluencer(t, env.db, "Bob")
	rc := testutil.RC(admin)

	profile, err := env.services.ApprovalService.WaitList(env.db, rc, pending.ID, &dto.WaitingListRequest{Reason: "  Too few posts  "})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusRejected, profile.ApprovalStatus)
	require.NotNil(t, profile.RejectionReason)
	assert.Equal(t, "Too few posts", *profile.RejectionReason)

	// повторный перевод обновляет причину
	profile, err = env.services.ApprovalService.WaitList(env.db, rc, pending.ID, &dto.WaitingListRequest{})
	require.NoError(t, err)
	assert.Equal(t, "", *profile.RejectionReason)

	_, err = env.services.ApprovalService.WaitList(env.db, rc, approved.ID, &dto.WaitingListRequest{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidApprovalTransition)

	sent := env.sentMail()
	require.Len(t, sent, 2)
	var reasons []interface{}
	for _, m := range sent {
		assert.Equal(t, email.TemplateProfileWaitListed, m.Template)
		reasons = append(reasons, m.Data["Reason"])
	}
	assert.ElementsMatch(t, []interface{}{"Too few posts", ""}, reasons)
}

func TestListQueue(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateAdmin(t, env.db)
	for _, name := range []string{"A", "B", "C"} {
		testutil.CreateInfluencer(t, env.db, name, testutil.WithApprovalStatus(models.ApprovalStatusPending))
	}
	testutil.CreateInfluencer(t, env.db, "D")
	rc := testutil.RC(admin)

	queue, err := env.services.ApprovalService.ListQueue(env.db, rc, &dto.ApprovalQueueQuery{PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), queue.Total)
	assert.Len(t, queue.Profiles, 2)
	assert.Equal(t, 2, queue.Pages)
	for _, p := range queue.Profiles {
		assert.Equal(t, models.ApprovalStatusPending, p.ApprovalStatus)
	}

	queue, err = env.services.ApprovalService.ListQueue(env.db, rc, &dto.ApprovalQueueQuery{Status: string(models.ApprovalStatusRejected)})
	require.NoError(t, err)
	assert.NotNil(t, queue.Profiles)
	assert.Zero(t, queue.Total)

	_, err = env.services.ApprovalService.ListQueue(env.db, rc, &dto.ApprovalQueueQuery{Status: "UNKNOWN"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}
