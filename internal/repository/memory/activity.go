package memory

import (
	"context"
	"sort"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// ActivityRepository is the in-memory activity backend.
type ActivityRepository struct {
	store *Store
}

func (r *ActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	activities := make([]model.Activity, 0, len(r.store.activities))
	for _, rec := range r.store.activities {
		activities = append(activities, snapshot(rec))
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].Name < activities[j].Name })
	return activities, nil
}

func (r *ActivityRepository) GetByName(ctx context.Context, name string) (*model.Activity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.activities[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a := snapshot(rec)
	return &a, nil
}

func (r *ActivityRepository) Create(ctx context.Context, a *model.Activity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.activities[a.Name]; exists {
		return repository.ErrDuplicate
	}
	ts := now()
	a.CreatedAt, a.UpdatedAt = ts, ts

	rec := &activityRecord{activity: *a}
	rec.participants = append(rec.participants, a.Participants...)
	rec.activity.Participants = nil
	r.store.activities[a.Name] = rec
	return nil
}

func (r *ActivityRepository) AddParticipant(ctx context.Context, name, email string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.activities[name]
	if !ok {
		return repository.ErrNotFound
	}
	for _, p := range rec.participants {
		if p == email {
			return repository.ErrAlreadyRegistered
		}
	}
	if len(rec.participants) >= rec.activity.MaxParticipants {
		return repository.ErrCapacityExceeded
	}
	rec.participants = append(rec.participants, email)
	rec.activity.UpdatedAt = now()
	return nil
}

func (r *ActivityRepository) RemoveParticipant(ctx context.Context, name, email string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.activities[name]
	if !ok {
		return repository.ErrNotFound
	}
	for i, p := range rec.participants {
		if p == email {
			rec.participants = append(rec.participants[:i], rec.participants[i+1:]...)
			rec.activity.UpdatedAt = now()
			return nil
		}
	}
	return repository.ErrNotRegistered
}

// snapshot copies a record so callers never alias the stored slice.
// Caller must hold at least the read lock.
func snapshot(rec *activityRecord) model.Activity {
	a := rec.activity
	a.Participants = make([]string, len(rec.participants))
	copy(a.Participants, rec.participants)
	return a
}
