// Package repository defines the storage contract shared by the Postgres
// backend and the in-memory fallback. The backend is chosen once at process
// startup; the service layer only ever sees these interfaces.
package repository

import (
	"context"
	"errors"

	"github.com/hillcrest/activities-backend/internal/model"
)

// Sentinel errors surfaced by every backend.
var (
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyRegistered = errors.New("student already registered for activity")
	ErrNotRegistered     = errors.New("student not registered for activity")
	ErrCapacityExceeded  = errors.New("activity is at maximum capacity")
	ErrDuplicate         = errors.New("record already exists")
)

// ActivityRepository handles the activity catalog and participant sets.
//
// AddParticipant and RemoveParticipant must be atomic: the capacity and
// membership checks happen under the same lock (or row lock) as the
// mutation, so two concurrent signups cannot both pass the capacity check.
type ActivityRepository interface {
	List(ctx context.Context) ([]model.Activity, error)
	GetByName(ctx context.Context, name string) (*model.Activity, error)
	Create(ctx context.Context, a *model.Activity) error
	AddParticipant(ctx context.Context, name, email string) error
	RemoveParticipant(ctx context.Context, name, email string) error
}

// StudentRepository handles the student roster.
type StudentRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	Upsert(ctx context.Context, s *model.Student) error
}

// TeacherRepository handles staff accounts.
type TeacherRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.Teacher, error)
	Create(ctx context.Context, t *model.Teacher) error
}

// AnnouncementRepository handles announcement records. List returns records
// ordered by creation time descending, ID as tiebreak, so the public list
// is deterministic.
type AnnouncementRepository interface {
	List(ctx context.Context) ([]model.Announcement, error)
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	Create(ctx context.Context, a *model.Announcement) error
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
}

// Store aggregates the per-collection repositories of one backend.
type Store interface {
	Activities() ActivityRepository
	Students() StudentRepository
	Teachers() TeacherRepository
	Announcements() AnnouncementRepository
}
