package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// ActivityRepository handles activity and participant data access.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// List retrieves every activity with its full participant set, ordered by name.
func (r *ActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, description, schedule, max_participants, created_at, updated_at
		 FROM activities ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []model.Activity
	index := make(map[string]int)
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Participants = []string{}
		index[a.Name] = len(activities)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := r.pool.Query(ctx,
		`SELECT activity_name, email FROM activity_participants ORDER BY signed_up_at ASC, email ASC`)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var name, email string
		if err := prows.Scan(&name, &email); err != nil {
			return nil, err
		}
		if i, ok := index[name]; ok {
			activities[i].Participants = append(activities[i].Participants, email)
		}
	}
	return activities, prows.Err()
}

// GetByName retrieves one activity with its participant set.
func (r *ActivityRepository) GetByName(ctx context.Context, name string) (*model.Activity, error) {
	a := &model.Activity{Participants: []string{}}
	err := r.pool.QueryRow(ctx,
		`SELECT name, description, schedule, max_participants, created_at, updated_at
		 FROM activities WHERE name = $1`, name,
	).Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT email FROM activity_participants WHERE activity_name = $1 ORDER BY signed_up_at ASC, email ASC`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		a.Participants = append(a.Participants, email)
	}
	return a, rows.Err()
}

// Create inserts a new activity. Only seeding calls this; there is no
// activity CRUD endpoint.
func (r *ActivityRepository) Create(ctx context.Context, a *model.Activity) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO activities (name, description, schedule, max_participants)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		a.Name, a.Description, a.Schedule, a.MaxParticipants,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// AddParticipant signs a student up inside a transaction. The activity row
// is locked first so the membership and capacity checks cannot race with a
// concurrent signup for the same activity.
func (r *ActivityRepository) AddParticipant(ctx context.Context, name, email string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var maxParticipants int
	err = tx.QueryRow(ctx,
		`SELECT max_participants FROM activities WHERE name = $1 FOR UPDATE`, name,
	).Scan(&maxParticipants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}

	var registered bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM activity_participants WHERE activity_name = $1 AND email = $2)`,
		name, email,
	).Scan(&registered)
	if err != nil {
		return err
	}
	if registered {
		return repository.ErrAlreadyRegistered
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM activity_participants WHERE activity_name = $1`, name,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count >= maxParticipants {
		return repository.ErrCapacityExceeded
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO activity_participants (activity_name, email) VALUES ($1, $2)`,
		name, email,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RemoveParticipant unregisters a student inside a transaction.
func (r *ActivityRepository) RemoveParticipant(ctx context.Context, name, email string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM activities WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM activity_participants WHERE activity_name = $1 AND email = $2`,
		name, email,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotRegistered
	}

	return tx.Commit(ctx)
}
