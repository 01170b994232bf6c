package auth

import (
	"testing"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Generate("user-1", models.UserRoleBrand)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleBrand, claims.Role)
}

func TestTokenManager_RejectsForeignAndExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, err := other.Generate("user-1", models.UserRoleBrand)
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	expired := NewTokenManager("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err = expired.Generate("user-1", models.UserRoleBrand)
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))

	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long enough"))
}

func TestRequestContext_Can(t *testing.T) {
	admin := RequestContext{PrincipalID: "a", Role: models.UserRoleAdmin}
	brand := RequestContext{PrincipalID: "b", Role: models.UserRoleBrand}
	influencer := RequestContext{PrincipalID: "i", Role: models.UserRoleInfluencer}

	assert.True(t, brand.Can(ActionEventCreate))
	assert.False(t, influencer.Can(ActionEventCreate))
	assert.False(t, admin.Can(ActionEventCreate))

	assert.True(t, influencer.Can(ActionInterestExpress))
	assert.False(t, brand.Can(ActionInterestExpress))

	assert.True(t, admin.Can(ActionApprovalQueue))
	assert.ErrorIs(t, brand.Require(ActionApprovalQueue), apperrors.ErrInsufficientPermissions)

	unknown := RequestContext{PrincipalID: "x", Role: "GUEST"}
	assert.False(t, unknown.Can(ActionMessageSend))
}
