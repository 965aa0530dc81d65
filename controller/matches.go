package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/fabianojp06/pelada-hero/model"
)

func (c *controller) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	return c.db.GetPlayer(ctx, id)
}

func (c *controller) SavePlayer(ctx context.Context, p *model.Player) error {
	if p == nil {
		return fmt.Errorf("%w: player must be provided", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: player name must be provided", ErrInvalidInput)
	}
	return c.db.SavePlayer(ctx, p)
}

func (c *controller) CreateMatch(ctx context.Context, m *model.Match, organizerID string) (*model.Match, error) {
	if err := validateMatch(m); err != nil {
		return nil, err
	}
	if organizerID == "" {
		return nil, fmt.Errorf("%w: organizer must be provided", ErrInvalidInput)
	}

	m.OrganizerID = organizerID
	// max_players is derived, never taken from the client.
	m.MaxPlayers = m.PlayersPerSide * 2

	if err := c.db.AddMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("error creating match: %w", err)
	}
	return m, nil
}

func (c *controller) GetMatch(ctx context.Context, id string) (*model.MatchDetails, error) {
	return c.db.GetMatchDetails(ctx, id)
}

func (c *controller) ListMatches(ctx context.Context, publicOnly bool) ([]model.Match, error) {
	return c.db.ListMatches(ctx, publicOnly)
}

func (c *controller) ListUserMatches(ctx context.Context, userID string) ([]model.Match, error) {
	return c.db.ListMatchesForUser(ctx, userID)
}

func (c *controller) UpdateMatch(ctx context.Context, m *model.Match, callerID string) (*model.Match, error) {
	if err := validateMatch(m); err != nil {
		return nil, err
	}

	current, err := c.db.GetMatch(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if !current.IsOrganizer(callerID) {
		return nil, ErrForbidden
	}

	m.OrganizerID = current.OrganizerID
	m.MaxPlayers = m.PlayersPerSide * 2

	if err := c.db.UpdateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("error updating match: %w", err)
	}
	return m, nil
}

// DeleteMatch removes the match; participations, feed posts and reactions are
// cascaded by the store's foreign keys, not by logic here.
func (c *controller) DeleteMatch(ctx context.Context, matchID, callerID string) error {
	current, err := c.db.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !current.IsOrganizer(callerID) {
		return ErrForbidden
	}
	return c.db.DeleteMatch(ctx, matchID)
}

func validateMatch(m *model.Match) error {
	if m == nil {
		return fmt.Errorf("%w: match must be provided", ErrInvalidInput)
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: match title must be provided", ErrInvalidInput)
	}
	if strings.TrimSpace(m.Location) == "" {
		return fmt.Errorf("%w: match location must be provided", ErrInvalidInput)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: match date must be provided", ErrInvalidInput)
	}
	if m.PlayersPerSide < 1 {
		return fmt.Errorf("%w: players per side must be at least 1", ErrInvalidInput)
	}
	if m.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	return nil
}
