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

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	registered, err := env.services.AuthService.Register(env.db, &dto.RegisterRequest{
		Email:    "Owner@Acme.com",
		Password: "supersecret",
		Name:     " Acme Owner ",
		Role:     string(models.UserRoleBrand),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "owner@acme.com", registered.User.Email)
	assert.Equal(t, "Acme Owner", registered.User.Name)

	claims, err := testutil.Tokens().Parse(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	loggedIn, err := env.services.AuthService.Login(env.db, &dto.LoginRequest{Email: "OWNER@acme.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = env.services.AuthService.Login(env.db, &dto.LoginRequest{Email: "owner@acme.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = env.services.AuthService.Login(env.db, &dto.LoginRequest{Email: "nobody@acme.com", Password: "supersecret"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegister_Errors(t *testing.T) {
	env := newTestEnv(t)
	valid := func() *dto.RegisterRequest {
		return &dto.RegisterRequest{
			Email:    "alice@example.com",
			Password: "supersecret",
			Name:     "Alice",
			Role:     string(models.UserRoleInfluencer),
		}
	}

	_, err := env.services.AuthService.Register(env.db, valid())
	require.NoError(t, err)

	t.Run("duplicate email ignores case", func(t *testing.T) {
		req := valid()
		req.Email = "ALICE@example.com"
		_, err := env.services.AuthService.Register(env.db, req)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("admin cannot self-register", func(t *testing.T) {
		req := valid()
		req.Email = "root@example.com"
		req.Role = string(models.UserRoleAdmin)
		_, err := env.services.AuthService.Register(env.db, req)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("short password", func(t *testing.T) {
		req := valid()
		req.Email = "short@example.com"
		req.Password = "short"
		_, err := env.services.AuthService.Register(env.db, req)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	brandUser, brand := testutil.CreateBrand(t, env.db, "Acme")
	influencer := testutil.CreateUser(t, env.db, models.UserRoleInfluencer, "Alice")

	me, err := env.services.AuthService.Me(env.db, testutil.RC(brandUser))
	require.NoError(t, err)
	assert.Equal(t, brandUser.ID, me.User.ID)
	require.NotNil(t, me.BrandProfile)
	assert.Equal(t, brand.ID, me.BrandProfile.ID)
	assert.Nil(t, me.InfluencerProfile)

	me, err = env.services.AuthService.Me(env.db, testutil.RC(influencer))
	require.NoError(t, err)
	assert.Nil(t, me.InfluencerProfile)
}

func TestSeedAdmin(t *testing.T) {
	env := newTestEnv(t)
	cfg := config.AdminConfig{Email: "Admin@Example.com", Password: "admin-password", Name: "Root"}

	created, err := env.services.AuthService.SeedAdmin(env.db, config.AdminConfig{})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = env.services.AuthService.SeedAdmin(env.db, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.services.AuthService.SeedAdmin(env.db, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	resp, err := env.services.AuthService.Login(env.db, &dto.LoginRequest{Email: "admin@example.com", Password: "admin-password"})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, resp.User.Role)
}
