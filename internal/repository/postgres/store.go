// Package postgres implements the repository contract on a pgx connection
// pool. It is the primary backend; cmd/server falls back to the in-memory
// store when the pool cannot be established at startup.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hillcrest/activities-backend/internal/repository"
)

// Store bundles the pgx-backed repositories.
type Store struct {
	activities    *ActivityRepository
	students      *StudentRepository
	teachers      *TeacherRepository
	announcements *AnnouncementRepository
}

// NewStore creates a Store on top of an established pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		activities:    NewActivityRepository(pool),
		students:      NewStudentRepository(pool),
		teachers:      NewTeacherRepository(pool),
		announcements: NewAnnouncementRepository(pool),
	}
}

func (s *Store) Activities() repository.ActivityRepository        { return s.activities }
func (s *Store) Students() repository.StudentRepository           { return s.students }
func (s *Store) Teachers() repository.TeacherRepository           { return s.teachers }
func (s *Store) Announcements() repository.AnnouncementRepository { return s.announcements }
