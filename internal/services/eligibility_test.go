package services

import (
	"testing"

	"collabhub_backend/internal/models"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEligibility(t *testing.T) {
	profile := &models.InfluencerProfile{InstagramFollowers: 3000, TiktokFollowers: 2000, YoutubeSubscribers: 100000}

	tests := []struct {
		name    string
		in      EligibilityInput
		wantErr error
	}{
		{
			name: "no limits",
			in:   EligibilityInput{Event: &models.Event{}, Profile: profile},
		},
		{
			name:    "duplicate pair wins over everything",
			in:      EligibilityInput{Event: &models.Event{MaxInfluencers: ptr(1)}, Profile: profile, ApprovedCount: 1, Exists: true},
			wantErr: apperrors.ErrInterestExists,
		},
		{
			name:    "followers below threshold, youtube ignored",
			in:      EligibilityInput{Event: &models.Event{MinFollowers: ptr(5001)}, Profile: profile},
			wantErr: apperrors.ErrInsufficientFollowers,
		},
		{
			name: "followers exactly at threshold",
			in:   EligibilityInput{Event: &models.Event{MinFollowers: ptr(5000)}, Profile: profile},
		},
		{
			name: "invitation skips follower threshold",
			in:   EligibilityInput{Event: &models.Event{MinFollowers: ptr(1000000)}, Profile: profile, IsInvitation: true},
		},
		{
			name:    "capacity reached",
			in:      EligibilityInput{Event: &models.Event{MaxInfluencers: ptr(2)}, Profile: profile, ApprovedCount: 2},
			wantErr: apperrors.ErrEventCapacityReached,
		},
		{
			name:    "invitation still bound by capacity",
			in:      EligibilityInput{Event: &models.Event{MaxInfluencers: ptr(1)}, Profile: profile, ApprovedCount: 1, IsInvitation: true},
			wantErr: apperrors.ErrEventCapacityReached,
		},
		{
			name: "capacity left",
			in:   EligibilityInput{Event: &models.Event{MaxInfluencers: ptr(2)}, Profile: profile, ApprovedCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEligibility(tt.in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckEligibility_FollowerDetails(t *testing.T) {
	err := CheckEligibility(EligibilityInput{
		Event:   &models.Event{MinFollowers: ptr(10000)},
		Profile: &models.InfluencerProfile{InstagramFollowers: 400, TiktokFollowers: 100},
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, map[string]int{"required": 10000, "actual": 500}, appErr.Details)
}
