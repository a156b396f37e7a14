package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"jahayeon_backend/internal/model"
)

// eventRepository implements EventRepository using sqlx.
//
// The join/complete operations are single conditional UPDATEs: the guard
// lives in the WHERE clause, so concurrent requests against the same row
// cannot both pass a capacity or duplicate check. A rejected guard surfaces
// as updated=false rather than an error; the service layer diagnoses why.
type eventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, description, host_name, destination, author_id, expiry, max_users, answer_key, lat, lng, started_user_ids, completed_user_ids, created_at`

func (r *eventRepository) Create(ctx context.Context, e *model.Event) error {
	query := `
		INSERT INTO events (title, description, host_name, destination, author_id, expiry, max_users, answer_key, lat, lng, started_user_ids, completed_user_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, '{}', '{}')
		RETURNING id, started_user_ids, completed_user_ids, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		e.Title,
		e.Description,
		e.HostName,
		e.Destination,
		e.AuthorID,
		e.Expiry,
		e.MaxUsers,
		e.AnswerKey,
		e.Lat,
		e.Lng,
	).Scan(&e.ID, &e.StartedUserIDs, &e.CompletedUserIDs, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var e model.Event
	err := r.db.GetContext(ctx, &e, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}
	return &e, nil
}

func (r *eventRepository) ListOpen(ctx context.Context, now time.Time) ([]model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE expiry > $1 AND cardinality(completed_user_ids) < max_users
		ORDER BY created_at DESC
	`

	var events []model.Event
	err := r.db.SelectContext(ctx, &events, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list open events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) ListByParticipant(ctx context.Context, userID string) ([]model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE $1 = ANY(started_user_ids) OR $1 = ANY(completed_user_ids)
		ORDER BY created_at DESC
	`

	var events []model.Event
	err := r.db.SelectContext(ctx, &events, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by participant: %w", err)
	}
	return events, nil
}

func (r *eventRepository) ListCompletedIDs(ctx context.Context, userID string) ([]int64, error) {
	query := `
		SELECT id FROM events
		WHERE $1 = ANY(completed_user_ids)
		ORDER BY created_at DESC
	`

	var ids []int64
	err := r.db.SelectContext(ctx, &ids, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed event ids: %w", err)
	}
	return ids, nil
}

func (r *eventRepository) AppendStarted(ctx context.Context, id int64, userID string, now time.Time) (*model.Event, bool, error) {
	query := `
		UPDATE events
		SET started_user_ids = array_append(started_user_ids, $2)
		WHERE id = $1
		  AND expiry > $3
		  AND NOT ($2 = ANY(started_user_ids))
		  AND NOT ($2 = ANY(completed_user_ids))
		  AND cardinality(started_user_ids) < max_users
		RETURNING ` + eventColumns + `
	`

	var e model.Event
	err := r.db.GetContext(ctx, &e, query, id, userID, now)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to append started user: %w", err)
	}
	return &e, true, nil
}

func (r *eventRepository) MoveToCompleted(ctx context.Context, id int64, userID string) (*model.Event, bool, error) {
	query := `
		UPDATE events
		SET started_user_ids = array_remove(started_user_ids, $2),
		    completed_user_ids = array_append(completed_user_ids, $2)
		WHERE id = $1
		  AND $2 = ANY(started_user_ids)
		  AND NOT ($2 = ANY(completed_user_ids))
		RETURNING ` + eventColumns + `
	`

	var e model.Event
	err := r.db.GetContext(ctx, &e, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to move user to completed: %w", err)
	}
	return &e, true, nil
}
