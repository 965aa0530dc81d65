package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/fabianojp06/pelada-hero/db"
	"github.com/fabianojp06/pelada-hero/model"
)

// The roster state machine. A (match, user) pair moves through:
//
//	none -> waiting -> confirmed -> none    (public matches)
//	none -> confirmed -> none               (private matches)
//
// Capacity is enforced lazily, at approval time only: the waiting list may
// grow past the remaining slots, but a confirm never lands once the confirmed
// roster holds max_players.

// JoinMatch creates the participation row. Public matches gate entry behind
// organizer approval, so the row starts as waiting; private matches trust the
// invite and auto-confirm.
func (c *controller) JoinMatch(ctx context.Context, matchID, userID string) (*model.Participation, error) {
	m, err := c.db.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	status := model.StatusConfirmed
	if m.Public {
		status = model.StatusWaiting
	}

	p := &model.Participation{
		MatchID: matchID,
		UserID:  userID,
		Status:  status,
	}
	if err := c.db.AddParticipation(ctx, p); err != nil {
		if errors.Is(err, db.ErrDuplicateParticipation) {
			return nil, ErrAlreadyJoined
		}
		return nil, fmt.Errorf("error joining match: %w", err)
	}
	return p, nil
}

// LeaveMatch deletes the row regardless of its current status.
func (c *controller) LeaveMatch(ctx context.Context, matchID, userID string) error {
	err := c.db.DeleteParticipationForUser(ctx, matchID, userID)
	if errors.Is(err, db.ErrParticipationNotFound) {
		return ErrNotJoined
	}
	return err
}

// ApproveParticipant flips a waiting row to confirmed. The capacity check
// happens inside the store's guarded update, against the confirmed count at
// that instant; when two approvals race on the last slot, at most one wins.
func (c *controller) ApproveParticipant(ctx context.Context, matchID, participationID, callerID string) error {
	m, err := c.requireOrganizer(ctx, matchID, callerID)
	if err != nil {
		return err
	}

	err = c.db.ConfirmParticipation(ctx, matchID, participationID, m.MaxPlayers)
	switch {
	case errors.Is(err, db.ErrMatchFull):
		return ErrMatchFull
	case errors.Is(err, db.ErrParticipationNotFound):
		return ErrNotJoined
	}
	return err
}

// RejectParticipant removes a waiting request. The waiting precondition is
// part of the store's delete statement, so a participant approved from
// another session is never deleted by a stale reject; a confirmed or missing
// row both come back as not joined.
func (c *controller) RejectParticipant(ctx context.Context, matchID, participationID, callerID string) error {
	if _, err := c.requireOrganizer(ctx, matchID, callerID); err != nil {
		return err
	}

	err := c.db.DeleteParticipation(ctx, matchID, participationID)
	if errors.Is(err, db.ErrParticipationNotFound) {
		return ErrNotJoined
	}
	return err
}

// TogglePayment flips is_paid on a confirmed row. It never touches roster
// membership or capacity.
func (c *controller) TogglePayment(ctx context.Context, matchID, participationID, callerID string) error {
	if _, err := c.requireOrganizer(ctx, matchID, callerID); err != nil {
		return err
	}

	p, err := c.db.GetParticipation(ctx, matchID, participationID)
	if err != nil {
		if errors.Is(err, db.ErrParticipationNotFound) {
			return ErrNotJoined
		}
		return err
	}
	if p.Status != model.StatusConfirmed {
		return ErrNotJoined
	}

	err = c.db.SetParticipationPaid(ctx, matchID, participationID, !p.Paid)
	if errors.Is(err, db.ErrParticipationNotFound) {
		return ErrStoreConflict
	}
	return err
}

func (c *controller) requireOrganizer(ctx context.Context, matchID, callerID string) (*model.Match, error) {
	m, err := c.db.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsOrganizer(callerID) {
		return nil, ErrForbidden
	}
	return m, nil
}
