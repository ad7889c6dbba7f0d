package memory

import (
	"context"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// StudentRepository is the in-memory roster backend.
type StudentRepository struct {
	store *Store
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.students[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *StudentRepository) Upsert(ctx context.Context, s *model.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ts := now()
	if existing, ok := r.store.students[s.Email]; ok {
		s.CreatedAt = existing.CreatedAt
	} else {
		s.CreatedAt = ts
	}
	s.UpdatedAt = ts
	cp := *s
	r.store.students[s.Email] = &cp
	return nil
}
