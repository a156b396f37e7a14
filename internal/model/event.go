package model

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// Event is a time-boxed mission with a shared secret answer key. Users join
// (enter started_user_ids) and later complete by submitting the 4-digit key.
type Event struct {
	ID               int64          `db:"id" json:"id"`
	Title            string         `db:"title" json:"title"`
	Description      *string        `db:"description" json:"description"`
	HostName         *string        `db:"host_name" json:"host_name"`
	Destination      *string        `db:"destination" json:"destination"`
	AuthorID         string         `db:"author_id" json:"author_id"`
	Expiry           time.Time      `db:"expiry" json:"expiry"`
	MaxUsers         int            `db:"max_users" json:"max_users"`
	AnswerKey        string         `db:"answer_key" json:"-"` // server secret
	Lat              float64        `db:"lat" json:"lat"`
	Lng              float64        `db:"lng" json:"lng"`
	StartedUserIDs   pq.StringArray `db:"started_user_ids" json:"started_user_ids"`
	CompletedUserIDs pq.StringArray `db:"completed_user_ids" json:"completed_user_ids"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// HasStarted reports whether the user is in the started list.
func (e *Event) HasStarted(userID string) bool {
	for _, id := range e.StartedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasCompleted reports whether the user is in the completed list.
func (e *Event) HasCompleted(userID string) bool {
	for _, id := range e.CompletedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsExpired reports whether the event's expiry has passed.
func (e *Event) IsExpired(now time.Time) bool {
	return now.After(e.Expiry)
}

// CreateEventRequest is the payload of POST /events/.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	HostName    *string   `json:"host_name"`
	Destination *string   `json:"destination"`
	Expiry      time.Time `json:"expiry"`
	MaxUsers    int       `json:"max_users"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
}

// EventResponse reshapes an Event for the client: list lengths are surfaced
// as counts and attached images are resolved to URLs.
type EventResponse struct {
	Event
	NumStarted   int      `json:"num_started"`
	NumCompleted int      `json:"num_completed"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	ImageURLs    []string `json:"image_urls,omitempty"`
}

// NewEventResponse derives the counts from the id lists.
func NewEventResponse(e Event) EventResponse {
	return EventResponse{
		Event:        e,
		NumStarted:   len(e.StartedUserIDs),
		NumCompleted: len(e.CompletedUserIDs),
	}
}

var (
	// ErrInvalidInput is wrapped by validation failures on create requests
	ErrInvalidInput = errors.New("invalid input")

	// ErrEventNotFound is returned when an event cannot be found
	ErrEventNotFound = errors.New("event not found")

	// ErrEventExpired is returned when joining after the expiry
	ErrEventExpired = errors.New("event expired")

	// ErrEventFull is returned when the started list is at max_users
	ErrEventFull = errors.New("event is full")

	// ErrAlreadyJoined is returned on a duplicate join
	ErrAlreadyJoined = errors.New("user already joined")

	// ErrNotJoined is returned when completing without having joined
	ErrNotJoined = errors.New("user has not joined")

	// ErrAlreadyCompleted is returned when completing twice
	ErrAlreadyCompleted = errors.New("user already completed")

	// ErrWrongAnswerKey is returned when the submitted key does not match
	ErrWrongAnswerKey = errors.New("incorrect answer key")
)
