package services

import (
	"testing"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/testutil"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	buckets := monthBuckets(now, 6)

	months := make([]string, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, b.Month)
		assert.Zero(t, b.Count)
	}
	assert.Equal(t, []string{"2025-10", "2025-11", "2025-12", "2026-01", "2026-02", "2026-03"}, months)
}

func TestMonthBuckets_EndOfMonth(t *testing.T) {
	// 31 марта минус месяц не должно давать март повторно
	now := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)

	buckets := monthBuckets(now, 2)
	assert.Equal(t, "2026-02", buckets[0].Month)
	assert.Equal(t, "2026-03", buckets[1].Month)
}

func TestFillMonths(t *testing.T) {
	buckets := []dto.MonthlyCount{{Month: "2026-01"}, {Month: "2026-02"}}

	fillMonths(buckets, []time.Time{
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, int64(1), buckets[0].Count)
	assert.Equal(t, int64(2), buckets[1].Count)
}

func TestGetBrandStats(t *testing.T) {
	env := newTestEnv(t)
	brandUser, brand := testutil.CreateBrand(t, env.db, "Acme")
	_, other := testutil.CreateBrand(t, env.db, "Other")

	first := testutil.CreateEvent(t, env.db, brand)
	second := testutil.CreateEvent(t, env.db, brand, testutil.WithStatus(models.EventStatusClosed))
	testutil.CreateEvent(t, env.db, brand, testutil.WithStatus(models.EventStatusDraft))
	foreign := testutil.CreateEvent(t, env.db, other)

	_, alice := testutil.CreateInfluencer(t, env.db, "Alice")
	_, bob := testutil.CreateInfluencer(t, env.db, "Bob")
	testutil.CreateInterest(t, env.db, first, alice, true)
	testutil.CreateInterest(t, env.db, second, alice, false)
	testutil.CreateInterest(t, env.db, first, bob, false)
	testutil.CreateInterest(t, env.db, foreign, bob, true)

	stats, err := env.services.StatsService.GetBrandStats(env.db, testutil.RC(brandUser))
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalEvents)
	assert.Equal(t, int64(1), stats.ActiveEvents)
	assert.Equal(t, int64(3), stats.TotalApplications)
	assert.Equal(t, int64(1), stats.ApprovedCount)
	assert.Equal(t, int64(2), stats.PendingCount)

	require.Len(t, stats.MonthlyApplications, statsMonths)
	assert.Equal(t, time.Now().UTC().Format("2006-01"), stats.MonthlyApplications[statsMonths-1].Month)
	assert.Equal(t, int64(3), stats.MonthlyApplications[statsMonths-1].Count)

	require.Len(t, stats.TopInfluencers, 2)
	assert.Equal(t, alice.ID, stats.TopInfluencers[0].InfluencerID)
	assert.Equal(t, "Alice", stats.TopInfluencers[0].Name)
	assert.Equal(t, int64(2), stats.TopInfluencers[0].Applications)
	assert.Equal(t, int64(1), stats.TopInfluencers[1].Applications)
}

func TestGetBrandStats_WithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, models.UserRoleBrand, "Fresh")

	svc := NewStatsService(repositories.NewStatsRepository(), repositories.NewBrandProfileRepository()).(*statsService)
	svc.now = func() time.Time { return time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC) }

	stats, err := svc.GetBrandStats(env.db, testutil.RC(user))
	require.NoError(t, err)
	assert.Zero(t, stats.TotalEvents)
	assert.NotNil(t, stats.TopInfluencers)
	require.Len(t, stats.MonthlyApplications, statsMonths)
	assert.Equal(t, "2026-02", stats.MonthlyApplications[0].Month)
	assert.Equal(t, "2026-07", stats.MonthlyApplications[statsMonths-1].Month)
}

func TestGetBrandStats_OnlyBrands(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateAdmin(t, env.db)

	_, err := env.services.StatsService.GetBrandStats(env.db, testutil.RC(admin))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}
