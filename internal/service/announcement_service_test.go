package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hillcrest/activities-backend/internal/cache"
	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
	"github.com/hillcrest/activities-backend/internal/repository/memory"
)

func newAnnouncementService(t *testing.T) *AnnouncementService {
	t.Helper()
	store := memory.NewStore()
	return NewAnnouncementService(store.Announcements(),
		cache.New(nil, 0, zerolog.Nop()), zerolog.Nop())
}

func ptr[T any](v T) *T { return &v }

func TestAnnouncementCreate(t *testing.T) {
	ctx := context.Background()
	svc := newAnnouncementService(t)
	future := time.Now().Add(48 * time.Hour)

	t.Run("success", func(t *testing.T) {
		a, err := svc.Create(ctx, "mchen", "  Bake Sale  ", "Friday in the gym", nil, future)
		require.NoError(t, err)
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, "Bake Sale", a.Title, "title is stored trimmed")
		assert.Equal(t, "mchen", a.CreatedBy)
		assert.Nil(t, a.StartDate)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := svc.Create(ctx, "mchen", "   ", "body", nil, future)
		assert.ErrorIs(t, err, ErrBlankContent)
	})

	t.Run("blank body", func(t *testing.T) {
		_, err := svc.Create(ctx, "mchen", "title", "\t\n", nil, future)
		assert.ErrorIs(t, err, ErrBlankContent)
	})

	t.Run("start after expiration", func(t *testing.T) {
		start := future.Add(time.Hour)
		_, err := svc.Create(ctx, "mchen", "title", "body", &start, future)
		assert.ErrorIs(t, err, ErrBadDateRange)
	})

	t.Run("start equal to expiration", func(t *testing.T) {
		_, err := svc.Create(ctx, "mchen", "title", "body", &future, future)
		assert.ErrorIs(t, err, ErrBadDateRange)
	})
}

func TestAnnouncementVisibility(t *testing.T) {
	ctx := context.Background()
	svc := newAnnouncementService(t)
	now := time.Now()

	_, err := svc.Create(ctx, "mchen", "Current", "visible now", nil, now.Add(24*time.Hour))
	require.NoError(t, err)

	// Expired one minute ago; remains stored, just not publicly listed.
	_, err = svc.Create(ctx, "mchen", "Expired", "gone from public view", nil, now.Add(-time.Minute))
	require.NoError(t, err)

	// Scheduled to appear tomorrow.
	_, err = svc.Create(ctx, "mchen", "Scheduled", "not yet", ptr(now.Add(24*time.Hour)), now.Add(48*time.Hour))
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Current", active[0].Title)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3, "management view includes expired and scheduled")
}

func TestAnnouncementUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newAnnouncementService(t)
	future := time.Now().Add(48 * time.Hour)

	created, err := svc.Create(ctx, "mchen", "Bake Sale", "Friday", nil, future)
	require.NoError(t, err)

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		got, err := svc.Update(ctx, created.ID, model.AnnouncementUpdate{Title: ptr("Bake Sale Moved")})
		require.NoError(t, err)
		assert.Equal(t, "Bake Sale Moved", got.Title)
		assert.Equal(t, "Friday", got.Body)
		assert.Equal(t, "mchen", got.CreatedBy)
	})

	t.Run("blank after trim rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, model.AnnouncementUpdate{Body: ptr("   ")})
		assert.ErrorIs(t, err, ErrBlankContent)
	})

	t.Run("date range re-validated against stored values", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, model.AnnouncementUpdate{StartDate: ptr(future.Add(time.Hour))})
		assert.ErrorIs(t, err, ErrBadDateRange)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, "no-such-id", model.AnnouncementUpdate{Title: ptr("x")})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestAnnouncementDelete(t *testing.T) {
	ctx := context.Background()
	svc := newAnnouncementService(t)

	created, err := svc.Create(ctx, "mchen", "Bake Sale", "Friday", nil, time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), repository.ErrNotFound)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
