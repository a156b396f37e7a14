package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"jahayeon_backend/internal/model"
)

// partyRepository implements PartyRepository using sqlx.
//
// Lifecycle transitions are conditional UPDATEs keyed on the current state,
// so a party can only move RECRUITING -> ONGOING -> COMPLETED once no matter
// how many requests race on it.
type partyRepository struct {
	db *sqlx.DB
}

// NewPartyRepository creates a new party repository
func NewPartyRepository(db *sqlx.DB) PartyRepository {
	return &partyRepository{db: db}
}

const partyColumns = `id, title, description, organizer_id, destination, meet_at, max_users, lat, lng, parking_name, parking_lat, parking_lng, participant_ids, omw_ids, finished_ids, state, started_at, completed_at, created_at`

func (r *partyRepository) Create(ctx context.Context, p *model.Party) error {
	query := `
		INSERT INTO parties (title, description, organizer_id, destination, meet_at, max_users, lat, lng, parking_name, parking_lat, parking_lng, participant_ids, omw_ids, finished_ids, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, '{}', '{}', '{}', $12)
		RETURNING id, participant_ids, omw_ids, finished_ids, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		p.Title,
		p.Description,
		p.OrganizerID,
		p.Destination,
		p.MeetAt,
		p.MaxUsers,
		p.Lat,
		p.Lng,
		p.ParkingName,
		p.ParkingLat,
		p.ParkingLng,
		p.State,
	).Scan(&p.ID, &p.ParticipantIDs, &p.OMWIDs, &p.FinishedIDs, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert party: %w", err)
	}
	return nil
}

func (r *partyRepository) GetByID(ctx context.Context, id int64) (*model.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE id = $1`

	var p model.Party
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPartyNotFound
		}
		return nil, fmt.Errorf("failed to get party by id: %w", err)
	}
	return &p, nil
}

func (r *partyRepository) ListActive(ctx context.Context) ([]model.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE state <> $1
		ORDER BY created_at DESC
	`

	var parties []model.Party
	err := r.db.SelectContext(ctx, &parties, query, model.PartyCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list active parties: %w", err)
	}
	return parties, nil
}

func (r *partyRepository) ListIDsByMember(ctx context.Context, userID string) ([]int64, error) {
	query := `
		SELECT id FROM parties
		WHERE organizer_id = $1 OR $1 = ANY(participant_ids)
		ORDER BY created_at DESC
	`

	var ids []int64
	err := r.db.SelectContext(ctx, &ids, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list party ids by member: %w", err)
	}
	return ids, nil
}

func (r *partyRepository) AppendParticipant(ctx context.Context, id int64, userID string) (*model.Party, bool, error) {
	query := `
		UPDATE parties
		SET participant_ids = array_append(participant_ids, $2)
		WHERE id = $1
		  AND state = $3
		  AND organizer_id <> $2
		  AND NOT ($2 = ANY(participant_ids))
		  AND cardinality(participant_ids) + 1 < max_users
		RETURNING ` + partyColumns + `
	`

	var p model.Party
	err := r.db.GetContext(ctx, &p, query, id, userID, model.PartyRecruiting)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to append participant: %w", err)
	}
	return &p, true, nil
}

func (r *partyRepository) Start(ctx context.Context, id int64, organizerID string) (*model.Party, bool, error) {
	query := `
		UPDATE parties
		SET state = $3,
		    started_at = NOW(),
		    omw_ids = array_prepend(organizer_id, participant_ids)
		WHERE id = $1 AND organizer_id = $2 AND state = $4
		RETURNING ` + partyColumns + `
	`

	var p model.Party
	err := r.db.GetContext(ctx, &p, query, id, organizerID, model.PartyOngoing, model.PartyRecruiting)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to start party: %w", err)
	}
	return &p, true, nil
}

func (r *partyRepository) FinishRide(ctx context.Context, id int64, userID string) (*model.Party, bool, error) {
	query := `
		UPDATE parties
		SET omw_ids = array_remove(omw_ids, $2),
		    finished_ids = array_append(finished_ids, $2)
		WHERE id = $1 AND state = $3 AND $2 = ANY(omw_ids)
		RETURNING ` + partyColumns + `
	`

	var p model.Party
	err := r.db.GetContext(ctx, &p, query, id, userID, model.PartyOngoing)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to finish ride: %w", err)
	}
	return &p, true, nil
}

func (r *partyRepository) End(ctx context.Context, id int64, organizerID string) (*model.Party, bool, error) {
	query := `
		UPDATE parties
		SET state = $3, completed_at = NOW()
		WHERE id = $1 AND organizer_id = $2 AND state = $4
		RETURNING ` + partyColumns + `
	`

	var p model.Party
	err := r.db.GetContext(ctx, &p, query, id, organizerID, model.PartyCompleted, model.PartyOngoing)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to end party: %w", err)
	}
	return &p, true, nil
}
