package model

import (
	"strings"
	"time"
)

// Attributes are the six technical skills that make up a player profile.
// Each value is an integer in [0, 100].
type Attributes struct {
	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Defending int `json:"defending"`
	Physical  int `json:"physical"`
}

// Player is a rated profile. Overall is precomputed by the profile subsystem
// and is never recalculated here; the team sorter treats it as opaque input.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Nickname   string     `json:"nickname,omitempty"`
	Position   Position   `json:"position"`
	Overall    int        `json:"overall"`
	Attributes Attributes `json:"attributes"`
	AvatarURL  string     `json:"avatarUrl,omitempty"`
	Created    time.Time  `json:"created"`
	Updated    time.Time  `json:"updated"`
}

// DisplayName prefers the nickname when one is set.
func (p *Player) DisplayName() string {
	if nn := strings.TrimSpace(p.Nickname); nn != "" {
		return nn
	}
	return p.Name
}

func (p *Player) FormattedCreatedTime() string {
	if p.Created.IsZero() {
		return "unknown"
	}
	return p.Created.Format(time.DateTime)
}
