package services

import (
	"testing"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/testutil"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createEventRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:        "  Autumn street style  ",
		Description:  "Show our new autumn line in your everyday outfits",
		Compensation: "300 USD",
		Categories:   []string{"fashion", "lifestyle"},
	}
}

func updateEventRequest(event *models.Event) *dto.UpdateEventRequest {
	return &dto.UpdateEventRequest{
		Title:          event.Title,
		Description:    event.Description,
		Compensation:   event.Compensation,
		Categories:     event.CategoryList(),
		MaxInfluencers: event.MaxInfluencers,
		MinFollowers:   event.MinFollowers,
	}
}

func TestCreateEvent(t *testing.T) {
	env := newTestEnv(t)
	brandUser, brand := testutil.CreateBrand(t, env.db, "Acme")

	event, err := env.services.EventService.CreateEvent(env.db, testutil.RC(brandUser), createEventRequest())
	require.NoError(t, err)

	assert.Equal(t, brand.ID, event.CreatedByID)
	assert.Equal(t, "Autumn street style", event.Title)
	assert.Equal(t, models.EventStatusDraft, event.Status)
	assert.Equal(t, []string{"fashion", "lifestyle"}, event.CategoryList())
}

func TestCreateEvent_Errors(t *testing.T) {
	env := newTestEnv(t)
	brandUser, _ := testutil.CreateBrand(t, env.db, "Acme")
	noProfile := testutil.CreateUser(t, env.db, models.UserRoleBrand, "Fresh brand")
	influencer, _ := testutil.CreateInfluencer(t, env.db, "Alice")

	t.Run("influencer cannot create", func(t *testing.T) {
		_, err := env.services.EventService.CreateEvent(env.db, testutil.RC(influencer), createEventRequest())
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})

	t.Run("brand profile required", func(t *testing.T) {
		_, err := env.services.EventService.CreateEvent(env.db, testutil.RC(noProfile), createEventRequest())
		assert.ErrorIs(t, err, apperrors.ErrBrandProfileRequired)
	})

	t.Run("end before start", func(t *testing.T) {
		req := createEventRequest()
		start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, -1)
		req.StartDate, req.EndDate = &start, &end

		_, err := env.services.EventService.CreateEvent(env.db, testutil.RC(brandUser), req)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("closed is not an initial status", func(t *testing.T) {
		req := createEventRequest()
		req.Status = string(models.EventStatusClosed)

		_, err := env.services.EventService.CreateEvent(env.db, testutil.RC(brandUser), req)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})
}

func TestChangeStatus_Lifecycle(t *testing.T) {
	tests := []struct {
		from models.EventStatus
		to   models.EventStatus
		ok   bool
	}{
		{models.EventStatusDraft, models.EventStatusPublished, true},
		{models.EventStatusDraft, models.EventStatusCancelled, true},
		{models.EventStatusDraft, models.EventStatusClosed, false},
		{models.EventStatusPublished, models.EventStatusClosed, true},
		{models.EventStatusPublished, models.EventStatusCancelled, true},
		{models.EventStatusPublished, models.EventStatusDraft, false},
		{models.EventStatusClosed, models.EventStatusPublished, false},
		{models.EventStatusCancelled, models.EventStatusDraft, false},
		{models.EventStatusPublished, models.EventStatusPublished, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			env := newTestEnv(t)
			brandUser, brand := testutil.CreateBrand(t, env.db, "Acme")
			event := testutil.CreateEvent(t, env.db, brand, testutil.WithStatus(tt.from))

			updated, err := env.services.EventService.ChangeStatus(env.db, testutil.RC(brandUser), event.ID,
				&dto.UpdateEventStatusRequest{Status: string(tt.to)})
			if !tt.ok {
				assert.ErrorIs(t, err, apperrors.ErrInvalidEventTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)

			var stored models.Event
			require.NoError(t, env.db.First(&stored, "id = ?", event.ID).Error)
			assert.Equal(t, tt.to, stored.Status)
		})
	}
}

func TestChangeStatus_Ownership(t *testing.T) {
	env := newTestEnv(t)
	_, brand := testutil.CreateBrand(t, env.db, "Acme")
	otherUser, _ := testutil.CreateBrand(t, env.db, "Other")
	admin := testutil.CreateAdmin(t, env.db)
	event := testutil.CreateEvent(t, env.db, brand)
	req := &dto.UpdateEventStatusRequest{Status: string(models.EventStatusClosed)}

	_, err := env.services.EventService.ChangeStatus(env.db, testutil.RC(otherUser), event.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	updated, err := env.services.EventService.ChangeStatus(env.db, testutil.RC(admin), event.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusClosed, updated.Status)
}

func TestGetEvent_Visibility(t *testing.T) {
	env := newTestEnv(t)
	ownerUser, brand := testutil.CreateBrand(t, env.db, "Acme")
	otherUser, _ := testutil.CreateBrand(t, env.db, "Other")
	admin := testutil.CreateAdmin(t, env.db)
	influencer, profile := testutil.CreateInfluencer(t, env.db, "Alice")

	published := testutil.CreateEvent(t, env.db, brand)
	draft := testutil.CreateEvent(t, env.db, brand, testutil.WithStatus(models.EventStatusDraft))
	testutil.CreateInterest(t, env.db, published, profile, true)

	t.Run("owner sees counters", func(t *testing.T) {
		resp, err := env.services.EventService.GetEvent(env.db, testutil.RC(ownerUser), published.ID)
		require.NoError(t, err)
		require.NotNil(t, resp.InterestCount)
		assert.Equal(t, int64(1), *resp.InterestCount)
		assert.Equal(t, int64(1), *resp.ApprovedCount)
	})

	t.Run("admin sees drafts", func(t *testing.T) {
		resp, err := env.services.EventService.GetEvent(env.db, testutil.RC(admin), draft.ID)
		require.NoError(t, err)
		assert.NotNil(t, resp.ApprovedCount)
	})

	t.Run("other brand sees published without counters", func(t *testing.T) {
		resp, err := env.services.EventService.GetEvent(env.db, testutil.RC(otherUser), published.ID)
		require.NoError(t, err)
		assert.Nil(t, resp.InterestCount)
	})

	t.Run("other brand does not see drafts", func(t *testing.T) {
		_, err := env.services.EventService.GetEvent(env.db, testutil.RC(otherUser), draft.ID)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("influencer sees published only", func(t *testing.T) {
		resp, err := env.services.EventService.GetEvent(env.db, testutil.RC(influencer), published.ID)
		require.NoError(t, err)
		assert.Nil(t, resp.ApprovedCount)

		_, err = env.services.EventService.GetEvent(env.db, testutil.RC(influencer), draft.ID)
		assert.ErrorIs(t, err, apperrors.ErrEventNotPublished)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := env.services.EventService.GetEvent(env.db, testutil.RC(admin), "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestUpdateEvent(t *testing.T) {
	env := newTestEnv(t)
	brandUser, brand := testutil.CreateBrand(t, env.db, "Acme")
	event := testutil.CreateEvent(t, env.db, brand, testutil.WithMaxInfluencers(3))
	_, a := testutil.CreateInfluencer(t, env.db, "A")
	_, b := testutil.CreateInfluencer(t, env.db, "B")
	testutil.CreateInterest(t, env.db, event, a, true)
	testutil.CreateInterest(t, env.db, event, b, true)
	rc := testutil.RC(brandUser)

	t.Run("max below approved count", func(t *testing.T) {
		req := updateEventRequest(event)
		req.MaxInfluencers = ptr(1)

		_, err := env.services.EventService.UpdateEvent(env.db, rc, event.ID, req)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("max equal to approved count", func(t *testing.T) {
		req := updateEventRequest(event)
		req.MaxInfluencers = ptr(2)
		req.Title = "Updated summer campaign"

		updated, err := env.services.EventService.UpdateEvent(env.db, rc, event.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "Updated summer campaign", updated.Title)
		assert.Equal(t, 2, *updated.MaxInfluencers)
	})

	t.Run("invalid status change", func(t *testing.T) {
		req := updateEventRequest(event)
		req.Status = string(models.EventStatusDraft)

		_, err := env.services.EventService.UpdateEvent(env.db, rc, event.ID, req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidEventTransition)
	})
}

func TestDeleteEvent_RemovesInterests(t *testing.T) {
	env := newTestEnv(t)
	brandUser, brand := testutil.CreateBrand(t, env.db, "Acme")
	otherUser, _ := testutil.CreateBrand(t, env.db, "Other")
	event := testutil.CreateEvent(t, env.db, brand)
	_, a := testutil.CreateInfluencer(t, env.db, "A")
	testutil.CreateInterest(t, env.db, event, a, true)

	err := env.services.EventService.DeleteEvent(env.db, testutil.RC(otherUser), event.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	require.NoError(t, env.services.EventService.DeleteEvent(env.db, testutil.RC(brandUser), event.ID))

	var interests int64
	require.NoError(t, env.db.Model(&models.EventInterest{}).Where("event_id = ?", event.ID).Count(&interests).Error)
	assert.Zero(t, interests)

	_, err = env.services.EventService.GetEvent(env.db, testutil.RC(brandUser), event.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestListEvents(t *testing.T) {
	env := newTestEnv(t)
	brandUser, brand := testutil.CreateBrand(t, env.db, "Acme")
	_, other := testutil.CreateBrand(t, env.db, "Other")
	admin := testutil.CreateAdmin(t, env.db)
	influencer, _ := testutil.CreateInfluencer(t, env.db, "Alice")

	testutil.CreateEvent(t, env.db, brand, testutil.WithTitle("Fashion week coverage"))
	testutil.CreateEvent(t, env.db, brand, testutil.WithStatus(models.EventStatusDraft), testutil.WithCategories("tech"))
	testutil.CreateEvent(t, env.db, other, testutil.WithCategories("tech"), testutil.WithTitle("Gadget unboxing"))

	t.Run("brand sees own events in every status", func(t *testing.T) {
		list, err := env.services.EventService.ListEvents(env.db, testutil.RC(brandUser), &dto.ListEventsQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Total)
		assert.Len(t, list.Events, 2)
	})

	t.Run("influencer sees published only, status filter ignored", func(t *testing.T) {
		list, err := env.services.EventService.ListEvents(env.db, testutil.RC(influencer),
			&dto.ListEventsQuery{Status: string(models.EventStatusDraft)})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Total)
		for _, e := range list.Events {
			assert.Equal(t, models.EventStatusPublished, e.Status)
		}
	})

	t.Run("admin filters by category", func(t *testing.T) {
		list, err := env.services.EventService.ListEvents(env.db, testutil.RC(admin), &dto.ListEventsQuery{Category: "tech"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Total)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		list, err := env.services.EventService.ListEvents(env.db, testutil.RC(admin), &dto.ListEventsQuery{Search: "GADGET"})
		require.NoError(t, err)
		require.Len(t, list.Events, 1)
		assert.Equal(t, "Gadget unboxing", list.Events[0].Title)
	})

	t.Run("pagination", func(t *testing.T) {
		list, err := env.services.EventService.ListEvents(env.db, testutil.RC(admin), &dto.ListEventsQuery{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), list.Total)
		assert.Len(t, list.Events, 1)
		assert.Equal(t, 2, list.Page)
		assert.Equal(t, 2, list.Pages)
	})

	t.Run("brand without profile gets an empty page", func(t *testing.T) {
		fresh := testutil.CreateUser(t, env.db, models.UserRoleBrand, "Fresh")
		list, err := env.services.EventService.ListEvents(env.db, testutil.RC(fresh), &dto.ListEventsQuery{})
		require.NoError(t, err)
		assert.NotNil(t, list.Events)
		assert.Empty(t, list.Events)
	})
}

func TestListEvents_SearchMatchesLiteralText(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateAdmin(t, env.db)
	_, brand := testutil.CreateBrand(t, env.db, "Acme")

	testutil.CreateEvent(t, env.db, brand, testutil.WithTitle("Plain summer campaign"))
	testutil.CreateEvent(t, env.db, brand, testutil.WithTitle("Another plain campaign"))
	testutil.CreateEvent(t, env.db, brand, testutil.WithTitle("Spring sale 50% off"))

	cases := []struct {
		search string
		want   int64
	}{
		{search: "plain", want: 2},
		{search: "%", want: 1},
		{search: "50%", want: 1},
		{search: "_", want: 0},
		{search: `\`, want: 0},
		{search: "summer%campaign", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.search, func(t *testing.T) {
			list, err := env.services.EventService.ListEvents(env.db, testutil.RC(admin), &dto.ListEventsQuery{Search: tc.search})
			require.NoError(t, err)
			assert.Equal(t, tc.want, list.Total)
		})
	}
}
