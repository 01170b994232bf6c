package services

import (
	"testing"

	"collabhub_backend/internal/config"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/testutil"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandProfile_CreateOnce(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, models.UserRoleBrand, "Owner")
	rc := testutil.RC(user)

	_, err := env.services.ProfileService.GetBrandProfile(env.db, rc)
	assert.ErrorIs(t, err, apperrors.ErrBrandProfileNotFound)

	profile, err := env.services.ProfileService.CreateBrandProfile(env.db, rc, &dto.BrandProfileRequest{
		CompanyName: "  Acme  ",
		Website:     "https://acme.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", profile.CompanyName)
	assert.Equal(t, models.SubscriptionFree, profile.Subscription)

	_, err = env.services.ProfileService.CreateBrandProfile(env.db, rc, &dto.BrandProfileRequest{CompanyName: "Acme 2"})
	assert.ErrorIs(t, err, apperrors.ErrBrandProfileExists)

	updated, err := env.services.ProfileService.UpdateBrandProfile(env.db, rc, &dto.BrandProfileRequest{
		CompanyName:  "Acme Corp",
		Subscription: string(models.SubscriptionPro),
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, updated.ID)
	assert.Equal(t, models.SubscriptionPro, updated.Subscription)

	stored, err := env.services.ProfileService.GetBrandProfile(env.db, rc)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", stored.CompanyName)
}

func TestBrandProfile_Validation(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, models.UserRoleBrand, "Owner")
	influencer, _ := testutil.CreateInfluencer(t, env.db, "Alice")

	_, err := env.services.ProfileService.CreateBrandProfile(env.db, testutil.RC(user), &dto.BrandProfileRequest{CompanyName: "   "})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	_, err = env.services.ProfileService.CreateBrandProfile(env.db, testutil.RC(influencer), &dto.BrandProfileRequest{CompanyName: "Acme"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestInfluencerProfile_CreatePending(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, models.UserRoleInfluencer, "Alice")
	rc := testutil.RC(user)

	profile, err := env.services.ProfileService.UpsertInfluencerProfile(env.db, rc, &dto.InfluencerProfileRequest{
		InstagramHandle:    "@alice",
		InstagramFollowers: 1200,
		Categories:         []string{"beauty"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPending, profile.ApprovalStatus)
	assert.Equal(t, "alice", profile.InstagramHandle)

	stored, err := env.services.ProfileService.GetInfluencerProfile(env.db, rc)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, stored.ID)
	assert.Equal(t, []string{"beauty"}, stored.CategoryList())
}

func TestInfluencerProfile_EditResetsApproval(t *testing.T) {
	env := newTestEnv(t)
	user, profile := testutil.CreateInfluencer(t, env.db, "Alice")

	updated, err := env.services.ProfileService.UpsertInfluencerProfile(env.db, testutil.RC(user), &dto.InfluencerProfileRequest{
		Bio:                "Travel and food",
		InstagramFollowers: 20000,
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, updated.ID)
	assert.Equal(t, models.ApprovalStatusPending, updated.ApprovalStatus)
	assert.Nil(t, updated.ApprovedAt)

	var stored models.InfluencerProfile
	require.NoError(t, env.db.First(&stored, "id = ?", profile.ID).Error)
	assert.Equal(t, models.ApprovalStatusPending, stored.ApprovalStatus)
	assert.Equal(t, 20000, stored.InstagramFollowers)
}

func TestInfluencerProfile_EditKeepsApprovalWhenDisabled(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) { cfg.Policy.ResetApprovalOnEdit = false })
	user, _ := testutil.CreateInfluencer(t, env.db, "Alice")

	updated, err := env.services.ProfileService.UpsertInfluencerProfile(env.db, testutil.RC(user), &dto.InfluencerProfileRequest{Bio: "Updated"})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusApproved, updated.ApprovalStatus)
	assert.NotNil(t, updated.ApprovedAt)
}
