package model

import "testing"

func TestPartyState_String(t *testing.T) {
	tests := []struct {
		state PartyState
		want  string
	}{
		{PartyRecruiting, "RECRUITING"},
		{PartyOngoing, "ONGOING"},
		{PartyCompleted, "COMPLETED"},
		{PartyState(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("PartyState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestParty_ActionFor(t *testing.T) {
	tests := []struct {
		name   string
		party  Party
		viewer string
		want   AvailableAction
	}{
		{
			name:   "organizer can start while recruiting",
			party:  Party{OrganizerID: "org", State: PartyRecruiting, MaxUsers: 4},
			viewer: "org",
			want:   ActionStart,
		},
		{
			name:   "participant waits while recruiting",
			party:  Party{OrganizerID: "org", State: PartyRecruiting, MaxUsers: 4, ParticipantIDs: []string{"u1"}},
			viewer: "u1",
			want:   ActionWait,
		},
		{
			name:   "outsider can join while recruiting",
			party:  Party{OrganizerID: "org", State: PartyRecruiting, MaxUsers: 4},
			viewer: "u2",
			want:   ActionJoin,
		},
		{
			name:   "outsider gets nothing when full",
			party:  Party{OrganizerID: "org", State: PartyRecruiting, MaxUsers: 2, ParticipantIDs: []string{"u1"}},
			viewer: "u2",
			want:   ActionNone,
		},
		{
			name:   "organizer can end while ongoing",
			party:  Party{OrganizerID: "org", State: PartyOngoing},
			viewer: "org",
			want:   ActionEnd,
		},
		{
			name:   "rider on the way can end their ride",
			party:  Party{OrganizerID: "org", State: PartyOngoing, OMWIDs: []string{"u1"}},
			viewer: "u1",
			want:   ActionEndRide,
		},
		{
			name:   "finished rider waits for the party to end",
			party:  Party{OrganizerID: "org", State: PartyOngoing, FinishedIDs: []string{"u1"}},
			viewer: "u1",
			want:   ActionWait,
		},
		{
			name:   "anyone gets nothing once completed",
			party:  Party{OrganizerID: "org", State: PartyCompleted},
			viewer: "org",
			want:   ActionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.party.ActionFor(tt.viewer); got != tt.want {
				t.Errorf("ActionFor(%q) = %q, want %q", tt.viewer, got, tt.want)
			}
		})
	}
}

func TestParty_Riders(t *testing.T) {
	p := Party{
		OMWIDs:      []string{"a", "b"},
		FinishedIDs: []string{"b", "c"},
	}

	riders := p.Riders()
	if len(riders) != 3 {
		t.Fatalf("Riders() returned %d ids, want 3: %v", len(riders), riders)
	}
	seen := map[string]bool{}
	for _, id := range riders {
		if seen[id] {
			t.Errorf("Riders() returned duplicate id %q", id)
		}
		seen[id] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !seen[want] {
			t.Errorf("Riders() missing %q", want)
		}
	}
}

func TestParty_IsFull(t *testing.T) {
	// The organizer occupies a seat, so max_users=3 means room for two
	// participants.
	p := Party{MaxUsers: 3, ParticipantIDs: []string{"u1"}}
	if p.IsFull() {
		t.Error("party with one participant of two seats should not be full")
	}
	p.ParticipantIDs = append(p.ParticipantIDs, "u2")
	if !p.IsFull() {
		t.Error("party with two participants of two seats should be full")
	}
}
