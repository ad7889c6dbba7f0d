package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hillcrest/activities-backend/internal/cache"
	"github.com/hillcrest/activities-backend/internal/config"
	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// Announcement validation errors.
var (
	ErrBlankContent = errors.New("title and body must not be empty or contain only whitespace")
	ErrBadDateRange = errors.New("start_date must be before expiration_date")
)

// AnnouncementService implements the announcement lifecycle. Active vs
// expired is never stored; it is recomputed from expiration_date (and the
// optional start_date) on every read.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	cache         *cache.Cache
	log           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(
	announcements repository.AnnouncementRepository,
	c *cache.Cache,
	log zerolog.Logger,
) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
		cache:         c,
		log:           log.With().Str("component", "announcement_service").Logger(),
	}
}

// ListActive returns announcements currently visible to the public:
// not expired, past their start date when one is set. Newest first.
func (s *AnnouncementService) ListActive(ctx context.Context) ([]model.Announcement, error) {
	key := config.CacheKey.ActiveAnnouncementsKey()

	var cached []model.Announcement
	if s.cache.GetJSON(ctx, key, &cached) {
		return filterActive(cached, time.Now().UTC()), nil
	}

	all, err := s.announcements.List(ctx)
	if err != nil {
		return nil, err
	}

	// Cache the full list; the active filter is re-applied per read so a
	// cached entry cannot keep an expired announcement visible past the TTL.
	s.cache.SetJSON(ctx, key, all)
	return filterActive(all, time.Now().UTC()), nil
}

// ListAll returns every announcement regardless of expiration, for the
// authenticated management view.
func (s *AnnouncementService) ListAll(ctx context.Context) ([]model.Announcement, error) {
	return s.announcements.List(ctx)
}

// Create validates and stores a new announcement authored by the teacher.
func (s *AnnouncementService) Create(ctx context.Context, teacher string, title, body string, startDate *time.Time, expirationDate time.Time) (*model.Announcement, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, ErrBlankContent
	}
	if startDate != nil && !startDate.Before(expirationDate) {
		return nil, ErrBadDateRange
	}

	a := &model.Announcement{
		ID:             uuid.New().String(),
		Title:          title,
		Body:           body,
		CreatedBy:      teacher,
		StartDate:      startDate,
		ExpirationDate: expirationDate,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, model.AnnouncementCreated, a.ID, a)
	return a, nil
}

// Update applies a partial update. Absent fields keep their stored values;
// the combined record is re-validated before writing.
func (s *AnnouncementService) Update(ctx context.Context, id string, upd model.AnnouncementUpdate) (*model.Announcement, error) {
	a, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		a.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Body != nil {
		a.Body = strings.TrimSpace(*upd.Body)
	}
	if upd.StartDate != nil {
		a.StartDate = upd.StartDate
	}
	if upd.ExpirationDate != nil {
		a.ExpirationDate = *upd.ExpirationDate
	}

	if a.Title == "" || a.Body == "" {
		return nil, ErrBlankContent
	}
	if a.StartDate != nil && !a.StartDate.Before(a.ExpirationDate) {
		return nil, ErrBadDateRange
	}

	if err := s.announcements.Update(ctx, a); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, model.AnnouncementUpdated, a.ID, a)
	return a, nil
}

// Delete removes an announcement permanently. Expiration never deletes;
// this is the only path that does.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if err := s.announcements.Delete(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx, model.AnnouncementDeleted, id, nil)
	return nil
}

// afterMutation invalidates the public-list cache and broadcasts the event
// on the live feed channel.
func (s *AnnouncementService) afterMutation(ctx context.Context, action model.AnnouncementEventAction, id string, a *model.Announcement) {
	s.cache.Invalidate(ctx, config.CacheKey.ActiveAnnouncementsKey())
	s.cache.Publish(ctx, config.CacheKey.AnnouncementEventsChannel(), model.AnnouncementEvent{
		Action:       action,
		ID:           id,
		Announcement: a,
	})
	s.log.Info().Str("action", string(action)).Str("id", id).Msg("Announcement mutated")
}

func filterActive(all []model.Announcement, now time.Time) []model.Announcement {
	active := make([]model.Announcement, 0, len(all))
	for _, a := range all {
		if a.ActiveAt(now) {
			active = append(active, a)
		}
	}
	return active
}
