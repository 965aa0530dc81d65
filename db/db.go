package db

import (
	"context"
	"errors"

	"github.com/fabianojp06/pelada-hero/model"
)

var (
	ErrPlayerNotFound        = errors.New("player not found")
	ErrMatchNotFound         = errors.New("match not found")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrPostNotFound          = errors.New("feed post not found")
	// ErrDuplicateParticipation is returned when inserting a second roster row
	// for the same (match, user) pair. Detection relies on the unique
	// constraint, never on a read-then-write.
	ErrDuplicateParticipation = errors.New("user already has a participation for this match")
	// ErrMatchFull is returned when a confirm is attempted with the confirmed
	// roster already at max_players. Confirms serialize on the match row, so
	// two racing confirms on the last slot cannot both succeed.
	ErrMatchFull = errors.New("match is full")
)

type DB interface {
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	SavePlayer(ctx context.Context, p *model.Player) error

	AddMatch(ctx context.Context, m *model.Match) error
	GetMatch(ctx context.Context, id string) (*model.Match, error)
	// GetMatchDetails returns the match with its full roster, each row joined
	// with the player profile.
	GetMatchDetails(ctx context.Context, id string) (*model.MatchDetails, error)
	ListMatches(ctx context.Context, publicOnly bool) ([]model.Match, error)
	// ListMatchesForUser returns matches the user created plus matches the
	// user has a participation row in, deduplicated.
	ListMatchesForUser(ctx context.Context, userID string) ([]model.Match, error)
	UpdateMatch(ctx context.Context, m *model.Match) error
	// DeleteMatch removes the match. Participations, feed posts and reactions
	// go with it via ON DELETE CASCADE.
	DeleteMatch(ctx context.Context, id string) error

	AddParticipation(ctx context.Context, p *model.Participation) error
	GetParticipation(ctx context.Context, matchID, participationID string) (*model.Participation, error)
	// ConfirmParticipation flips a waiting row to confirmed, but only while
	// the confirmed count is below maxPlayers. Confirms for the same match
	// serialize, so the count each one checks includes every earlier confirm.
	ConfirmParticipation(ctx context.Context, matchID, participationID string, maxPlayers int) error
	// DeleteParticipation removes a waiting row only; a row in any other
	// status is reported as not found and left untouched.
	DeleteParticipation(ctx context.Context, matchID, participationID string) error
	DeleteParticipationForUser(ctx context.Context, matchID, userID string) error
	SetParticipationPaid(ctx context.Context, matchID, participationID string, paid bool) error
	// ListConfirmedPlayers is the sorter input: profiles of every confirmed
	// participant, in join order.
	ListConfirmedPlayers(ctx context.Context, matchID string) ([]model.Player, error)

	AddFeedPost(ctx context.Context, p *model.FeedPost) error
	GetFeedPost(ctx context.Context, id string) (*model.FeedPost, error)
	// ListFeedPosts returns a match's posts newest first, with per-kind
	// reaction counts and the viewer's own reaction filled in.
	ListFeedPosts(ctx context.Context, matchID, viewerID string) ([]model.FeedPost, error)
	// ToggleReaction applies the toggle rule: same kind again removes the
	// reaction, a different kind replaces it. Returns the resulting kind,
	// ReactionUnknown when removed.
	ToggleReaction(ctx context.Context, postID, userID string, kind model.ReactionKind) (model.ReactionKind, error)
}
