package model

import (
	"strings"
	"time"
)

// ReactionKind is a closed set. Reactions are counted per kind, there is no
// per-kind behavior beyond the counter.
type ReactionKind string

const (
	ReactionUnknown  ReactionKind = ""
	ReactionBall     ReactionKind = "ball"
	ReactionRedCard  ReactionKind = "red_card"
	ReactionApplause ReactionKind = "applause"
)

func ParseReactionKind(s string) ReactionKind {
	switch strings.ToLower(s) {
	case "ball":
		return ReactionBall
	case "red_card", "redcard":
		return ReactionRedCard
	case "applause":
		return ReactionApplause
	default:
		return ReactionUnknown
	}
}

// FeedPost is one entry in a match's internal feed. ImageURL, when set, points
// at an already-uploaded blob; this service never handles the bytes.
type FeedPost struct {
	ID       string    `json:"id"`
	MatchID  string    `json:"matchId"`
	AuthorID string    `json:"authorId"`
	Content  string    `json:"content"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Created  time.Time `json:"created"`

	Author    *Player              `json:"author,omitempty"`
	Reactions map[ReactionKind]int `json:"reactions"`
	// UserReaction is the viewing user's own reaction, if any.
	UserReaction ReactionKind `json:"userReaction,omitempty"`
}
