package model

import (
	"strings"
	"time"
)

// Match is a pelada: a single organized game at a venue. MaxPlayers is always
// twice PlayersPerSide; it is the cap on the confirmed roster, not on how many
// people may ask to join.
type Match struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	Address        string    `json:"address,omitempty"`
	Date           time.Time `json:"date"`
	Price          int       `json:"price"` // in cents
	MaxPlayers     int       `json:"maxPlayers"`
	PlayersPerSide int       `json:"playersPerSide"`
	Public         bool      `json:"public"`
	OrganizerID    string    `json:"organizerId"`
	Created        time.Time `json:"created"`
	Updated        time.Time `json:"updated"`
}

// IsOrganizer reports whether userID created this match. The organizer is the
// only user allowed to edit, delete, approve, reject or toggle payments.
func (m *Match) IsOrganizer(userID string) bool {
	return m.OrganizerID != "" && m.OrganizerID == userID
}

type ParticipationStatus string

const (
	StatusWaiting   ParticipationStatus = "waiting"
	StatusConfirmed ParticipationStatus = "confirmed"
)

func ParseParticipationStatus(s string) ParticipationStatus {
	switch strings.ToLower(s) {
	case "confirmed":
		return StatusConfirmed
	default:
		// "joined" shows up in rows written by an old client version, it
		// never counted against capacity so it maps to waiting.
		return StatusWaiting
	}
}

// Participation is one roster row: a (match, user) pair with its status.
// There is at most one row per pair, enforced by a unique constraint.
type Participation struct {
	ID       string              `json:"id"`
	MatchID  string              `json:"matchId"`
	UserID   string              `json:"userId"`
	Status   ParticipationStatus `json:"status"`
	Paid     bool                `json:"paid"`
	JoinedAt time.Time           `json:"joinedAt"`

	// Player is the joined profile row, populated on reads.
	Player *Player `json:"player,omitempty"`
}

// MatchDetails is a match with its full roster, the shape the detail page
// consumes. ConfirmedCount is derived, not stored.
type MatchDetails struct {
	Match
	Participants []Participation `json:"participants"`
}

func (d *MatchDetails) ConfirmedCount() int {
	n := 0
	for _, p := range d.Participants {
		if p.Status == StatusConfirmed {
			n++
		}
	}
	return n
}

func (d *MatchDetails) WaitingList() []Participation {
	waiting := make([]Participation, 0, len(d.Participants))
	for _, p := range d.Participants {
		if p.Status == StatusWaiting {
			waiting = append(waiting, p)
		}
	}
	return waiting
}
