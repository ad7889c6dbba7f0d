package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hillcrest/activities-backend/internal/cache"
	"github.com/hillcrest/activities-backend/internal/config"
	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// ActivityService implements activity listing and signup rules.
type ActivityService struct {
	activities repository.ActivityRepository
	students   repository.StudentRepository
	cache      *cache.Cache
	log        zerolog.Logger
}

// NewActivityService creates a new ActivityService.
func NewActivityService(
	activities repository.ActivityRepository,
	students repository.StudentRepository,
	c *cache.Cache,
	log zerolog.Logger,
) *ActivityService {
	return &ActivityService{
		activities: activities,
		students:   students,
		cache:      c,
		log:        log.With().Str("component", "activity_service").Logger(),
	}
}

// List returns the full catalog with derived participant counts,
// served through the read cache when Redis is configured.
func (s *ActivityService) List(ctx context.Context) ([]model.Activity, error) {
	key := config.CacheKey.ActivityListKey()

	var cached []model.Activity
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range activities {
		activities[i].ParticipantCount = len(activities[i].Participants)
	}

	s.cache.SetJSON(ctx, key, activities)
	return activities, nil
}

// Signup registers a student email for an activity. The repository enforces
// the capacity and duplicate invariants atomically; on success a minimal
// roster entry is upserted for emails the school has not seen before.
func (s *ActivityService) Signup(ctx context.Context, activityName, email string) error {
	email = normalizeEmail(email)

	if err := s.activities.AddParticipant(ctx, activityName, email); err != nil {
		return err
	}

	if _, err := s.students.GetByEmail(ctx, email); err == repository.ErrNotFound {
		student := &model.Student{Email: email, Name: nameFromEmail(email)}
		if err := s.students.Upsert(ctx, student); err != nil {
			// The signup itself succeeded; a roster hiccup is not worth failing it.
			s.log.Warn().Err(err).Str("email", email).Msg("Roster upsert failed")
		}
	}

	s.cache.Invalidate(ctx, config.CacheKey.ActivityListKey())
	s.log.Info().Str("activity", activityName).Str("email", email).Msg("Student signed up")
	return nil
}

// Unregister removes a student email from an activity.
func (s *ActivityService) Unregister(ctx context.Context, activityName, email string) error {
	email = normalizeEmail(email)

	if err := s.activities.RemoveParticipant(ctx, activityName, email); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, config.CacheKey.ActivityListKey())
	s.log.Info().Str("activity", activityName).Str("email", email).Msg("Student unregistered")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nameFromEmail derives a readable placeholder name from the local part of
// an email, for roster entries created implicitly on first signup.
func nameFromEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)

	words := strings.Fields(local)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
