package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// AnnouncementRepository handles announcement data access.
type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

// List retrieves every announcement, newest first, ID as tiebreak.
func (r *AnnouncementRepository) List(ctx context.Context) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, body, created_by, start_date, expiration_date, created_at
		 FROM announcements ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []model.Announcement
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedBy, &a.StartDate, &a.ExpirationDate, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// GetByID retrieves one announcement.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	a := &model.Announcement{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, body, created_by, start_date, expiration_date, created_at
		 FROM announcements WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Body, &a.CreatedBy, &a.StartDate, &a.ExpirationDate, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Create inserts a new announcement. The caller assigns the ID.
func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO announcements (id, title, body, created_by, start_date, expiration_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		a.ID, a.Title, a.Body, a.CreatedBy, a.StartDate, a.ExpirationDate,
	).Scan(&a.CreatedAt)
}

// Update rewrites the mutable fields of an announcement.
func (r *AnnouncementRepository) Update(ctx context.Context, a *model.Announcement) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE announcements SET title = $1, body = $2, start_date = $3, expiration_date = $4
		 WHERE id = $5`,
		a.Title, a.Body, a.StartDate, a.ExpirationDate, a.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an announcement by ID.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
