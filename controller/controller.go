package controller

import (
	"context"

	"github.com/itbasis/go-clock"

	"github.com/fabianojp06/pelada-hero/db"
	"github.com/fabianojp06/pelada-hero/model"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	SavePlayer(ctx context.Context, p *model.Player) error

	CreateMatch(ctx context.Context, m *model.Match, organizerID string) (*model.Match, error)
	GetMatch(ctx context.Context, id string) (*model.MatchDetails, error)
	ListMatches(ctx context.Context, publicOnly bool) ([]model.Match, error)
	ListUserMatches(ctx context.Context, userID string) ([]model.Match, error)
	UpdateMatch(ctx context.Context, m *model.Match, callerID string) (*model.Match, error)
	DeleteMatch(ctx context.Context, matchID, callerID string) error

	// Roster transitions. Each one is a single atomic store operation; it
	// either fully applies or fully fails with one of the errors in errors.go.
	JoinMatch(ctx context.Context, matchID, userID string) (*model.Participation, error)
	LeaveMatch(ctx context.Context, matchID, userID string) error
	ApproveParticipant(ctx context.Context, matchID, participationID, callerID string) error
	RejectParticipant(ctx context.Context, matchID, participationID, callerID string) error
	TogglePayment(ctx context.Context, matchID, participationID, callerID string) error

	// SortTeams partitions the match's confirmed roster into teams. Pure
	// computation over the roster snapshot; nothing is persisted.
	SortTeams(ctx context.Context, matchID string, mode model.SortMode) (*model.TeamDraw, error)

	AddFeedPost(ctx context.Context, matchID, authorID, content, imageURL string) (*model.FeedPost, error)
	ListFeed(ctx context.Context, matchID, viewerID string) ([]model.FeedPost, error)
	ReactToPost(ctx context.Context, postID, userID string, kind model.ReactionKind) (model.ReactionKind, error)
}

type controller struct {
	clock clock.Clock
	db    db.DB
}

func New(clock clock.Clock, db db.DB) (C, error) {
	c := &controller{
		clock: clock,
		db:    db,
	}
	return c, nil
}
