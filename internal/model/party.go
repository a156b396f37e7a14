package model

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// PartyState is the three-stage ride lifecycle.
type PartyState int

const (
	PartyRecruiting PartyState = 0
	PartyOngoing    PartyState = 1
	PartyCompleted  PartyState = 2
)

// String renders the state the way the client expects it.
func (s PartyState) String() string {
	switch s {
	case PartyRecruiting:
		return "RECRUITING"
	case PartyOngoing:
		return "ONGOING"
	case PartyCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// Party is a group ride. The organizer recruits participants, starts the
// ride (everyone becomes "on my way"), riders finish individually, and the
// organizer ends the ride with a group photo.
type Party struct {
	ID             int64          `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	Description    *string        `db:"description" json:"description"`
	OrganizerID    string         `db:"organizer_id" json:"organizer_id"`
	Destination    *string        `db:"destination" json:"destination"`
	MeetAt         time.Time      `db:"meet_at" json:"meet_at"`
	MaxUsers       int            `db:"max_users" json:"max_users"`
	Lat            float64        `db:"lat" json:"lat"`
	Lng            float64        `db:"lng" json:"lng"`
	ParkingName    string         `db:"parking_name" json:"parking_name"`
	ParkingLat     float64        `db:"parking_lat" json:"parking_lat"`
	ParkingLng     float64        `db:"parking_lng" json:"parking_lng"`
	ParticipantIDs pq.StringArray `db:"participant_ids" json:"participant_ids"`
	OMWIDs         pq.StringArray `db:"omw_ids" json:"omw_ids"`
	FinishedIDs    pq.StringArray `db:"finished_ids" json:"finished_ids"`
	State          PartyState     `db:"state" json:"-"`
	StartedAt      *time.Time     `db:"started_at" json:"started_at"`
	CompletedAt    *time.Time     `db:"completed_at" json:"completed_at"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// IsMember reports whether the user is the organizer or a participant.
func (p *Party) IsMember(userID string) bool {
	if userID == p.OrganizerID {
		return true
	}
	for _, id := range p.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsOnTheWay reports whether the user is still riding.
func (p *Party) IsOnTheWay(userID string) bool {
	for _, id := range p.OMWIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasFinished reports whether the user has ended their ride.
func (p *Party) HasFinished(userID string) bool {
	for _, id := range p.FinishedIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the participant list (plus organizer) is at capacity.
func (p *Party) IsFull() bool {
	return len(p.ParticipantIDs)+1 >= p.MaxUsers
}

// Riders returns everyone who took part in the ride once it started: the
// union of still-riding and finished users. Award grants on party end apply
// to this set.
func (p *Party) Riders() []string {
	seen := make(map[string]bool, len(p.OMWIDs)+len(p.FinishedIDs))
	var riders []string
	for _, id := range append(append([]string{}, p.OMWIDs...), p.FinishedIDs...) {
		if !seen[id] {
			seen[id] = true
			riders = append(riders, id)
		}
	}
	return riders
}

// AvailableAction is what the viewing user can do next with a party.
type AvailableAction string

const (
	ActionJoin    AvailableAction = "JOIN"
	ActionStart   AvailableAction = "START"
	ActionEnd     AvailableAction = "END"
	ActionEndRide AvailableAction = "ENDRIDE"
	ActionWait    AvailableAction = "WAIT"
	ActionNone    AvailableAction = "NONE"
)

// ActionFor derives the viewer's available action from their role and the
// party state. Organizers drive the lifecycle; riders can only end their own
// ride while the party is ongoing.
func (p *Party) ActionFor(userID string) AvailableAction {
	switch p.State {
	case PartyRecruiting:
		if userID == p.OrganizerID {
			return ActionStart
		}
		if p.IsMember(userID) {
			return ActionWait
		}
		if p.IsFull() {
			return ActionNone
		}
		return ActionJoin
	case PartyOngoing:
		if userID == p.OrganizerID {
			return ActionEnd
		}
		if p.IsOnTheWay(userID) {
			return ActionEndRide
		}
		if p.HasFinished(userID) {
			return ActionWait
		}
		return ActionNone
	default:
		return ActionNone
	}
}

// CreatePartyRequest is the payload of POST /parties/.
type CreatePartyRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Destination *string   `json:"destination"`
	MeetAt      time.Time `json:"meet_at"`
	MaxUsers    int       `json:"max_users"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
}

// PartyResponse reshapes a Party for the client: the numeric state becomes
// its string name and the organizer is counted as a participant.
type PartyResponse struct {
	Party
	State           string          `json:"state"`
	NumParticipants int             `json:"num_participants"`
	AvailableAction AvailableAction `json:"available_action,omitempty"`
	PhotoURL        *string         `json:"photo_url,omitempty"`
}

// NewPartyResponse derives the client-facing fields.
func NewPartyResponse(p Party) PartyResponse {
	return PartyResponse{
		Party:           p,
		State:           p.State.String(),
		NumParticipants: len(p.ParticipantIDs) + 1,
	}
}

var (
	// ErrPartyNotFound is returned when a party cannot be found
	ErrPartyNotFound = errors.New("party not found")

	// ErrPartyNotRecruiting is returned when join/start requires RECRUITING
	ErrPartyNotRecruiting = errors.New("party is not recruiting")

	// ErrPartyNotOngoing is returned when end/endride requires ONGOING
	ErrPartyNotOngoing = errors.New("party is not ongoing")

	// ErrPartyFull is returned when the party is at capacity
	ErrPartyFull = errors.New("party is full")

	// ErrNotOrganizer is returned when a lifecycle action needs the organizer
	ErrNotOrganizer = errors.New("only the organizer may do this")

	// ErrNotOnTheWay is returned when endride is called by a non-rider
	ErrNotOnTheWay = errors.New("user is not on the way")
)
