package repository

import (
	"context"
	"time"

	"jahayeon_backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByProvider(ctx context.Context, userID, provider string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateNickname(ctx context.Context, userID, nickname string) error
	// AwardEventCompletion bumps level by 5 and num_events by 1.
	AwardEventCompletion(ctx context.Context, userID string) error
	// AwardPartyCompletion bumps level by 5 and num_parties by 1 for every rider.
	AwardPartyCompletion(ctx context.Context, userIDs []string) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	// ListOpen returns events that have not expired and still have room in
	// the completed list.
	ListOpen(ctx context.Context, now time.Time) ([]model.Event, error)
	// ListByParticipant returns events where the user started or completed.
	ListByParticipant(ctx context.Context, userID string) ([]model.Event, error)
	// ListCompletedIDs returns ids of events the user completed, newest first.
	ListCompletedIDs(ctx context.Context, userID string) ([]int64, error)
	// AppendStarted atomically adds the user to started_user_ids, guarded
	// against expiry, capacity and duplicates. Returns false when the guard
	// rejected the update.
	AppendStarted(ctx context.Context, id int64, userID string, now time.Time) (*model.Event, bool, error)
	// MoveToCompleted atomically moves the user from started to completed.
	// Returns false when the user was not in started or already completed.
	MoveToCompleted(ctx context.Context, id int64, userID string) (*model.Event, bool, error)
}

type PartyRepository interface {
	Create(ctx context.Context, party *model.Party) error
	GetByID(ctx context.Context, id int64) (*model.Party, error)
	// ListActive returns parties that are not COMPLETED.
	ListActive(ctx context.Context) ([]model.Party, error)
	// ListIDsByMember returns ids of parties where the user is organizer or
	// participant, newest first.
	ListIDsByMember(ctx context.Context, userID string) ([]int64, error)
	// AppendParticipant atomically adds the user while RECRUITING with
	// capacity left and no duplicate. Returns false when the guard rejected.
	AppendParticipant(ctx context.Context, id int64, userID string) (*model.Party, bool, error)
	// Start transitions RECRUITING -> ONGOING and seeds omw_ids with the
	// organizer and all participants. Organizer-only, single transition.
	Start(ctx context.Context, id int64, organizerID string) (*model.Party, bool, error)
	// FinishRide atomically moves the user from omw_ids to finished_ids.
	FinishRide(ctx context.Context, id int64, userID string) (*model.Party, bool, error)
	// End transitions ONGOING -> COMPLETED. Organizer-only, single transition.
	End(ctx context.Context, id int64, organizerID string) (*model.Party, bool, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	ListByEventID(ctx context.Context, eventID int64) ([]model.Image, error)
	// FirstByEventIDs returns the first stored image per event, for list
	// thumbnails.
	FirstByEventIDs(ctx context.Context, eventIDs []int64) (map[int64]string, error)
	ListByPartyID(ctx context.Context, partyID int64) ([]model.Image, error)
}
