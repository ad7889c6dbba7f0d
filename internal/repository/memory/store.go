// Package memory implements the repository contract on mutex-guarded maps.
// It is the fallback backend used when Postgres is unreachable at startup,
// and the backend the unit tests run against. Semantics match the Postgres
// implementation exactly, including the signup atomicity guarantees.
package memory

import (
	"sync"
	"time"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// Store keeps every collection in process memory behind a single mutex.
// One lock is plenty at this scale and makes the capacity invariant trivial
// to uphold: the check and the mutation happen in the same critical section.
type Store struct {
	mu            sync.RWMutex
	activities    map[string]*activityRecord
	students      map[string]*model.Student
	teachers      map[string]*model.Teacher
	announcements map[string]*model.Announcement

	activitiesRepo    *ActivityRepository
	studentsRepo      *StudentRepository
	teachersRepo      *TeacherRepository
	announcementsRepo *AnnouncementRepository
}

// activityRecord stores the participant set with insertion order preserved,
// mirroring the signed_up_at ordering of the Postgres backend.
type activityRecord struct {
	activity     model.Activity
	participants []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	s := &Store{
		activities:    make(map[string]*activityRecord),
		students:      make(map[string]*model.Student),
		teachers:      make(map[string]*model.Teacher),
		announcements: make(map[string]*model.Announcement),
	}
	s.activitiesRepo = &ActivityRepository{store: s}
	s.studentsRepo = &StudentRepository{store: s}
	s.teachersRepo = &TeacherRepository{store: s}
	s.announcementsRepo = &AnnouncementRepository{store: s}
	return s
}

func (s *Store) Activities() repository.ActivityRepository        { return s.activitiesRepo }
func (s *Store) Students() repository.StudentRepository           { return s.studentsRepo }
func (s *Store) Teachers() repository.TeacherRepository           { return s.teachersRepo }
func (s *Store) Announcements() repository.AnnouncementRepository { return s.announcementsRepo }

func now() time.Time {
	return time.Now().UTC()
}
