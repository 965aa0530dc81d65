package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/fabianojp06/pelada-hero/model"
)

const maxPostLength = 2000

func (c *controller) AddFeedPost(ctx context.Context, matchID, authorID, content, imageURL string) (*model.FeedPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: post content must be provided", ErrInvalidInput)
	}
	if len(content) > maxPostLength {
		return nil, fmt.Errorf("%w: post content is too long (max %d characters)", ErrInvalidInput, maxPostLength)
	}

	// Posting requires the match to exist but not roster membership;
	// organizers post without ever holding a roster row.
	if _, err := c.db.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}

	p := &model.FeedPost{
		MatchID:   matchID,
		AuthorID:  authorID,
		Content:   content,
		ImageURL:  imageURL,
		Reactions: map[model.ReactionKind]int{},
	}
	if err := c.db.AddFeedPost(ctx, p); err != nil {
		return nil, fmt.Errorf("error adding feed post: %w", err)
	}
	return p, nil
}

func (c *controller) ListFeed(ctx context.Context, matchID, viewerID string) ([]model.FeedPost, error) {
	if _, err := c.db.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}
	return c.db.ListFeedPosts(ctx, matchID, viewerID)
}

// ReactToPost applies toggle semantics: reacting with the kind already set
// removes it, a different kind replaces the old one. Returns the reaction the
// user ends up with, ReactionUnknown when cleared.
func (c *controller) ReactToPost(ctx context.Context, postID, userID string, kind model.ReactionKind) (model.ReactionKind, error) {
	if kind == model.ReactionUnknown {
		return model.ReactionUnknown, fmt.Errorf("%w: unknown reaction kind", ErrInvalidInput)
	}
	if _, err := c.db.GetFeedPost(ctx, postID); err != nil {
		return model.ReactionUnknown, err
	}
	return c.db.ToggleReaction(ctx, postID, userID, kind)
}
