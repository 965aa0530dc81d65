package mockdb

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fabianojp06/pelada-hero/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := db.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (db *DB) SavePlayer(ctx context.Context, p *model.Player) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) AddMatch(ctx context.Context, m *model.Match) error {
	args := db.Called(ctx, m)
	return args.Error(0)
}

func (db *DB) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	args := db.Called(ctx, id)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (db *DB) GetMatchDetails(ctx context.Context, id string) (*model.MatchDetails, error) {
	args := db.Called(ctx, id)

	var d *model.MatchDetails
	if args.Get(0) != nil {
		d = args.Get(0).(*model.MatchDetails)
	}
	return d, args.Error(1)
}

func (db *DB) ListMatches(ctx context.Context, publicOnly bool) ([]model.Match, error) {
	args := db.Called(ctx, publicOnly)

	var r []model.Match
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Match)
	}
	return r, args.Error(1)
}

func (db *DB) ListMatchesForUser(ctx context.Context, userID string) ([]model.Match, error) {
	args := db.Called(ctx, userID)

	var r []model.Match
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Match)
	}
	return r, args.Error(1)
}

func (db *DB) UpdateMatch(ctx context.Context, m *model.Match) error {
	args := db.Called(ctx, m)
	return args.Error(0)
}

func (db *DB) DeleteMatch(ctx context.Context, id string) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) AddParticipation(ctx context.Context, p *model.Participation) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) GetParticipation(ctx context.Context, matchID, participationID string) (*model.Participation, error) {
	args := db.Called(ctx, matchID, participationID)

	var p *model.Participation
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Participation)
	}
	return p, args.Error(1)
}

func (db *DB) ConfirmParticipation(ctx context.Context, matchID, participationID string, maxPlayers int) error {
	args := db.Called(ctx, matchID, participationID, maxPlayers)
	return args.Error(0)
}

func (db *DB) DeleteParticipation(ctx context.Context, matchID, participationID string) error {
	args := db.Called(ctx, matchID, participationID)
	return args.Error(0)
}

func (db *DB) DeleteParticipationForUser(ctx context.Context, matchID, userID string) error {
	args := db.Called(ctx, matchID, userID)
	return args.Error(0)
}

func (db *DB) SetParticipationPaid(ctx context.Context, matchID, participationID string, paid bool) error {
	args := db.Called(ctx, matchID, participationID, paid)
	return args.Error(0)
}

func (db *DB) ListConfirmedPlayers(ctx context.Context, matchID string) ([]model.Player, error) {
	args := db.Called(ctx, matchID)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (db *DB) AddFeedPost(ctx context.Context, p *model.FeedPost) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) GetFeedPost(ctx context.Context, id string) (*model.FeedPost, error) {
	args := db.Called(ctx, id)

	var p *model.FeedPost
	if args.Get(0) != nil {
		p = args.Get(0).(*model.FeedPost)
	}
	return p, args.Error(1)
}

func (db *DB) ListFeedPosts(ctx context.Context, matchID, viewerID string) ([]model.FeedPost, error) {
	args := db.Called(ctx, matchID, viewerID)

	var r []model.FeedPost
	if args.Get(0) != nil {
		r = args.Get(0).([]model.FeedPost)
	}
	return r, args.Error(1)
}

func (db *DB) ToggleReaction(ctx context.Context, postID, userID string, kind model.ReactionKind) (model.ReactionKind, error) {
	args := db.Called(ctx, postID, userID, kind)
	return args.Get(0).(model.ReactionKind), args.Error(1)
}
