package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"jahayeon_backend/internal/model"
)

type imageRepository struct {
	db *sqlx.DB
}

// NewImageRepository creates a new image repository
func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, img *model.Image) error {
	query := `
		INSERT INTO images (event_id, party_id, url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, img.EventID, img.PartyID, img.URL).
		Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}
	return nil
}

func (r *imageRepository) ListByEventID(ctx context.Context, eventID int64) ([]model.Image, error) {
	query := `
		SELECT id, event_id, party_id, url, created_at
		FROM images
		WHERE event_id = $1
		ORDER BY created_at ASC
	`

	var images []model.Image
	err := r.db.SelectContext(ctx, &images, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images by event: %w", err)
	}
	return images, nil
}

func (r *imageRepository) FirstByEventIDs(ctx context.Context, eventIDs []int64) (map[int64]string, error) {
	if len(eventIDs) == 0 {
		return map[int64]string{}, nil
	}

	query := `
		SELECT DISTINCT ON (event_id) event_id, url
		FROM images
		WHERE event_id = ANY($1)
		ORDER BY event_id, created_at ASC
	`

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get event thumbnails: %w", err)
	}
	defer rows.Close()

	thumbnails := make(map[int64]string)
	for rows.Next() {
		var eventID int64
		var url string
		if err := rows.Scan(&eventID, &url); err != nil {
			return nil, fmt.Errorf("failed to scan thumbnail row: %w", err)
		}
		thumbnails[eventID] = url
	}
	return thumbnails, rows.Err()
}

func (r *imageRepository) ListByPartyID(ctx context.Context, partyID int64) ([]model.Image, error) {
	query := `
		SELECT id, event_id, party_id, url, created_at
		FROM images
		WHERE party_id = $1
		ORDER BY created_at ASC
	`

	var images []model.Image
	err := r.db.SelectContext(ctx, &images, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images by party: %w", err)
	}
	return images, nil
}
