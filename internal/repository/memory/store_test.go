package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

func newActivity(name string, max int) *model.Activity {
	return &model.Activity{
		Name:            name,
		Description:     "test activity",
		Schedule:        "Fridays, 3:30 PM",
		MaxParticipants: max,
	}
}

func TestActivityParticipants(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Activities().Create(ctx, newActivity("Chess Club", 2)))

	t.Run("signup until full", func(t *testing.T) {
		assert.NoError(t, store.Activities().AddParticipant(ctx, "Chess Club", "a@hillcrest.edu"))
		assert.NoError(t, store.Activities().AddParticipant(ctx, "Chess Club", "b@hillcrest.edu"))

		err := store.Activities().AddParticipant(ctx, "Chess Club", "c@hillcrest.edu")
		assert.ErrorIs(t, err, repository.ErrCapacityExceeded)

		a, err := store.Activities().GetByName(ctx, "Chess Club")
		require.NoError(t, err)
		assert.Equal(t, []string{"a@hillcrest.edu", "b@hillcrest.edu"}, a.Participants)
	})

	t.Run("duplicate signup rejected", func(t *testing.T) {
		err := store.Activities().AddParticipant(ctx, "Chess Club", "a@hillcrest.edu")
		assert.ErrorIs(t, err, repository.ErrAlreadyRegistered)

		a, err := store.Activities().GetByName(ctx, "Chess Club")
		require.NoError(t, err)
		assert.Len(t, a.Participants, 2, "failed signup must not change state")
	})

	t.Run("unknown activity", func(t *testing.T) {
		err := store.Activities().AddParticipant(ctx, "Knitting Circle", "a@hillcrest.edu")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		err = store.Activities().RemoveParticipant(ctx, "Knitting Circle", "a@hillcrest.edu")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("unregister", func(t *testing.T) {
		require.NoError(t, store.Activities().RemoveParticipant(ctx, "Chess Club", "a@hillcrest.edu"))

		err := store.Activities().RemoveParticipant(ctx, "Chess Club", "a@hillcrest.edu")
		assert.ErrorIs(t, err, repository.ErrNotRegistered)

		a, err := store.Activities().GetByName(ctx, "Chess Club")
		require.NoError(t, err)
		assert.Equal(t, []string{"b@hillcrest.edu"}, a.Participants)
	})
}

func TestCapacityInvariantUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Activities().Create(ctx, newActivity("Gym Class", 5)))

	emails := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	done := make(chan error, len(emails))
	for _, e := range emails {
		go func(email string) {
			done <- store.Activities().AddParticipant(ctx, "Gym Class", email+"@hillcrest.edu")
		}(e)
	}

	var failures int
	for range emails {
		if err := <-done; err != nil {
			assert.ErrorIs(t, err, repository.ErrCapacityExceeded)
			failures++
		}
	}
	assert.Equal(t, 5, failures)

	a, err := store.Activities().GetByName(ctx, "Gym Class")
	require.NoError(t, err)
	assert.Len(t, a.Participants, a.MaxParticipants)
}

func TestActivityListSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Activities().Create(ctx, newActivity("Art Club", 10)))
	require.NoError(t, store.Activities().AddParticipant(ctx, "Art Club", "a@hillcrest.edu"))

	list, err := store.Activities().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Mutating the returned slice must not leak into the store.
	list[0].Participants[0] = "tampered"

	a, err := store.Activities().GetByName(ctx, "Art Club")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@hillcrest.edu"}, a.Participants)
}

func TestAnnouncementOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"id-b", "id-a", "id-c"} {
		a := &model.Announcement{
			ID:             id,
			Title:          "Announcement " + id,
			Body:           "body",
			CreatedBy:      "mchen",
			ExpirationDate: base.AddDate(0, 1, 0),
			CreatedAt:      base.Add(time.Duration(i/2) * time.Hour), // id-b and id-a share a timestamp
		}
		require.NoError(t, store.Announcements().Create(ctx, a))
	}

	list, err := store.Announcements().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Newest first; equal timestamps fall back to ID order.
	assert.Equal(t, "id-c", list[0].ID)
	assert.Equal(t, "id-a", list[1].ID)
	assert.Equal(t, "id-b", list[2].ID)
}

func TestAnnouncementCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	a := &model.Announcement{
		ID:             "a1",
		Title:          "Bake Sale",
		Body:           "Friday in the gym",
		CreatedBy:      "mrodriguez",
		ExpirationDate: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, store.Announcements().Create(ctx, a))
	assert.False(t, a.CreatedAt.IsZero())

	t.Run("update preserves creation metadata", func(t *testing.T) {
		upd := *a
		upd.Title = "Bake Sale Moved"
		upd.CreatedBy = "someone-else" // Must be ignored.
		require.NoError(t, store.Announcements().Update(ctx, &upd))

		got, err := store.Announcements().GetByID(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, "Bake Sale Moved", got.Title)
		assert.Equal(t, "mrodriguez", got.CreatedBy)
		assert.Equal(t, a.CreatedAt, got.CreatedAt)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Announcements().Delete(ctx, "a1"))
		assert.ErrorIs(t, store.Announcements().Delete(ctx, "a1"), repository.ErrNotFound)

		_, err := store.Announcements().GetByID(ctx, "a1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTeacherAndStudentRepositories(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	teacher := &model.Teacher{Username: "mchen", DisplayName: "Mr. Chen", PasswordHash: "x", Role: model.RoleTeacher}
	require.NoError(t, store.Teachers().Create(ctx, teacher))
	assert.ErrorIs(t, store.Teachers().Create(ctx, teacher), repository.ErrDuplicate)

	got, err := store.Teachers().GetByUsername(ctx, "mchen")
	require.NoError(t, err)
	assert.Equal(t, "Mr. Chen", got.DisplayName)

	_, err = store.Teachers().GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	s := &model.Student{Email: "amy@hillcrest.edu", Name: "Amy", Grade: 10}
	require.NoError(t, store.Students().Upsert(ctx, s))
	s.Grade = 11
	require.NoError(t, store.Students().Upsert(ctx, s))

	gotStudent, err := store.Students().GetByEmail(ctx, "amy@hillcrest.edu")
	require.NoError(t, err)
	assert.Equal(t, 11, gotStudent.Grade)
	assert.Equal(t, s.CreatedAt, gotStudent.CreatedAt)
}
