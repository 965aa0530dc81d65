package mockcontroller

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fabianojp06/pelada-hero/model"
)

type C struct {
	mock.Mock
}

func (c *C) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := c.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (c *C) SavePlayer(ctx context.Context, p *model.Player) error {
	args := c.Called(ctx, p)
	return args.Error(0)
}

func (c *C) CreateMatch(ctx context.Context, m *model.Match, organizerID string) (*model.Match, error) {
	args := c.Called(ctx, m, organizerID)

	var r *model.Match
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Match)
	}
	return r, args.Error(1)
}

func (c *C) GetMatch(ctx context.Context, id string) (*model.MatchDetails, error) {
	args := c.Called(ctx, id)

	var d *model.MatchDetails
	if args.Get(0) != nil {
		d = args.Get(0).(*model.MatchDetails)
	}
	return d, args.Error(1)
}

func (c *C) ListMatches(ctx context.Context, publicOnly bool) ([]model.Match, error) {
	args := c.Called(ctx, publicOnly)

	var r []model.Match
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Match)
	}
	return r, args.Error(1)
}

func (c *C) ListUserMatches(ctx context.Context, userID string) ([]model.Match, error) {
	args := c.Called(ctx, userID)

	var r []model.Match
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Match)
	}
	return r, args.Error(1)
}

func (c *C) UpdateMatch(ctx context.Context, m *model.Match, callerID string) (*model.Match, error) {
	args := c.Called(ctx, m, callerID)

	var r *model.Match
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Match)
	}
	return r, args.Error(1)
}

func (c *C) DeleteMatch(ctx context.Context, matchID, callerID string) error {
	args := c.Called(ctx, matchID, callerID)
	return args.Error(0)
}

func (c *C) JoinMatch(ctx context.Context, matchID, userID string) (*model.Participation, error) {
	args := c.Called(ctx, matchID, userID)

	var p *model.Participation
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Participation)
	}
	return p, args.Error(1)
}

func (c *C) LeaveMatch(ctx context.Context, matchID, userID string) error {
	args := c.Called(ctx, matchID, userID)
	return args.Error(0)
}

func (c *C) ApproveParticipant(ctx context.Context, matchID, participationID, callerID string) error {
	args := c.Called(ctx, matchID, participationID, callerID)
	return args.Error(0)
}

func (c *C) RejectParticipant(ctx context.Context, matchID, participationID, callerID string) error {
	args := c.Called(ctx, matchID, participationID, callerID)
	return args.Error(0)
}

func (c *C) TogglePayment(ctx context.Context, matchID, participationID, callerID string) error {
	args := c.Called(ctx, matchID, participationID, callerID)
	return args.Error(0)
}

func (c *C) SortTeams(ctx context.Context, matchID string, mode model.SortMode) (*model.TeamDraw, error) {
	args := c.Called(ctx, matchID, mode)

	var d *model.TeamDraw
	if args.Get(0) != nil {
		d = args.Get(0).(*model.TeamDraw)
	}
	return d, args.Error(1)
}

func (c *C) AddFeedPost(ctx context.Context, matchID, authorID, content, imageURL string) (*model.FeedPost, error) {
	args := c.Called(ctx, matchID, authorID, content, imageURL)

	var p *model.FeedPost
	if args.Get(0) != nil {
		p = args.Get(0).(*model.FeedPost)
	}
	return p, args.Error(1)
}

func (c *C) ListFeed(ctx context.Context, matchID, viewerID string) ([]model.FeedPost, error) {
	args := c.Called(ctx, matchID, viewerID)

	var r []model.FeedPost
	if args.Get(0) != nil {
		r = args.Get(0).([]model.FeedPost)
	}
	return r, args.Error(1)
}

func (c *C) ReactToPost(ctx context.Context, postID, userID string, kind model.ReactionKind) (model.ReactionKind, error) {
	args := c.Called(ctx, postID, userID, kind)
	return args.Get(0).(model.ReactionKind), args.Error(1)
}
