package memory

import (
	"context"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// TeacherRepository is the in-memory staff account backend.
type TeacherRepository struct {
	store *Store
}

func (r *TeacherRepository) GetByUsername(ctx context.Context, username string) (*model.Teacher, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.teachers[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *TeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.teachers[t.Username]; exists {
		return repository.ErrDuplicate
	}
	ts := now()
	t.CreatedAt, t.UpdatedAt = ts, ts
	cp := *t
	r.store.teachers[t.Username] = &cp
	return nil
}
