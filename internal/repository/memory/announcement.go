package memory

import (
	"context"
	"sort"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// AnnouncementRepository is the in-memory announcement backend.
type AnnouncementRepository struct {
	store *Store
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]model.Announcement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	announcements := make([]model.Announcement, 0, len(r.store.announcements))
	for _, a := range r.store.announcements {
		announcements = append(announcements, *a)
	}
	// Newest first, ID as tiebreak, matching the Postgres backend's order.
	sort.Slice(announcements, func(i, j int) bool {
		if !announcements[i].CreatedAt.Equal(announcements[j].CreatedAt) {
			return announcements[i].CreatedAt.After(announcements[j].CreatedAt)
		}
		return announcements[i].ID < announcements[j].ID
	})
	return announcements, nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.announcements[a.ID]; exists {
		return repository.ErrDuplicate
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now()
	}
	cp := *a
	r.store.announcements[a.ID] = &cp
	return nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, a *model.Announcement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.announcements[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.CreatedBy = existing.CreatedBy
	cp := *a
	r.store.announcements[a.ID] = &cp
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.announcements[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.announcements, id)
	return nil
}
