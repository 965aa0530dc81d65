package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fabianojp06/pelada-hero/model"
)

func (db *postgresDB) AddParticipation(ctx context.Context, p *model.Participation) error {
	if p == nil {
		return errors.New("AddParticipation - participation is nil")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.JoinedAt = db.clock.Now().UTC()

	const query = `INSERT INTO user_matches (id, match_id, user_id, status, is_paid, joined_at)
		VALUES (@id, @matchID, @userID, @status, @isPaid, @joinedAt)`

	args := pgx.NamedArgs{
		"id":      p.ID,
		"matchID": p.MatchID,
		"userID":  p.UserID,
		"status":  string(p.Status),
		"isPaid":  p.Paid,
		"joinedAt": pgtype.Timestamptz{
			Time:             p.JoinedAt,
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateParticipation
		}
		return fmt.Errorf("error inserting participation (%s, %s): %w", p.MatchID, p.UserID, err)
	}
	return nil
}

func (db *postgresDB) GetParticipation(ctx context.Context, matchID, participationID string) (*model.Participation, error) {
	const query = `SELECT id, match_id, user_id, status, is_paid, joined_at
					FROM user_matches WHERE id=@id AND match_id=@matchID`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": participationID, "matchID": matchID})
	p, err := scanParticipation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParticipationNotFound
		}
		return nil, fmt.Errorf("error scanning participation %s: %w", participationID, err)
	}
	return p, nil
}

// ConfirmParticipation is the one transition with a capacity rule. Confirms
// for the same match serialize on the match row: two UPDATEs of different
// waiting rows take no conflicting locks on their own, and each one's count
// subquery runs against a snapshot that cannot see the other's uncommitted
// confirm, so without the lock both would pass the guard on the last slot.
// Queued behind the lock, the later confirm counts the earlier one.
func (db *postgresDB) ConfirmParticipation(ctx context.Context, matchID, participationID string, maxPlayers int) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lockedID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM matches WHERE id=@matchID FOR UPDATE`,
		pgx.NamedArgs{"matchID": matchID}).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("error locking match (%s): %w", matchID, err)
	}

	const query = `UPDATE user_matches
			SET status='confirmed'
			WHERE id=@id AND match_id=@matchID AND status='waiting'
				AND (SELECT count(*) FROM user_matches
						WHERE match_id=@matchID AND status='confirmed') < @maxPlayers`

	args := pgx.NamedArgs{
		"id":         participationID,
		"matchID":    matchID,
		"maxPlayers": maxPlayers,
	}
	tag, err := tx.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error confirming participation (%s): %w", participationID, err)
	}
	if tag.RowsAffected() == 0 {
		// Nothing updated: either the row is gone (or not waiting), or the
		// match is at capacity. Look at the row to report the right failure.
		row := tx.QueryRow(ctx,
			`SELECT id, match_id, user_id, status, is_paid, joined_at
				FROM user_matches WHERE id=@id AND match_id=@matchID`,
			pgx.NamedArgs{"id": participationID, "matchID": matchID})
		p, err := scanParticipation(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrParticipationNotFound
			}
			return fmt.Errorf("error scanning participation %s: %w", participationID, err)
		}
		if p.Status != model.StatusWaiting {
			return ErrParticipationNotFound
		}
		return ErrMatchFull
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing confirm (%s): %w", participationID, err)
	}
	return nil
}

// DeleteParticipation removes a waiting row. The status predicate lives in
// the statement so a row approved concurrently is never deleted: by the time
// the DELETE runs, a confirmed row no longer matches.
func (db *postgresDB) DeleteParticipation(ctx context.Context, matchID, participationID string) error {
	const query = `DELETE FROM user_matches
			WHERE id=@id AND match_id=@matchID AND status='waiting'`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": participationID, "matchID": matchID})
	if err != nil {
		return fmt.Errorf("error deleting participation (%s): %w", participationID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrParticipationNotFound
	}
	return nil
}

func (db *postgresDB) DeleteParticipationForUser(ctx context.Context, matchID, userID string) error {
	const query = `DELETE FROM user_matches WHERE match_id=@matchID AND user_id=@userID`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"matchID": matchID, "userID": userID})
	if err != nil {
		return fmt.Errorf("error deleting participation for user (%s, %s): %w", matchID, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrParticipationNotFound
	}
	return nil
}

func (db *postgresDB) SetParticipationPaid(ctx context.Context, matchID, participationID string, paid bool) error {
	const query = `UPDATE user_matches
			SET is_paid=@isPaid
			WHERE id=@id AND match_id=@matchID AND status='confirmed'`

	args := pgx.NamedArgs{
		"id":      participationID,
		"matchID": matchID,
		"isPaid":  paid,
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating payment flag (%s): %w", participationID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrParticipationNotFound
	}
	return nil
}

func (db *postgresDB) ListConfirmedPlayers(ctx context.Context, matchID string) ([]model.Player, error) {
	const query = `SELECT p.id, p.name, p.nickname, p.position, p.overall,
						p.pace, p.shooting, p.passing, p.dribbling, p.defending, p.physical,
						p.avatar_url, p.created, p.updated
					FROM user_matches um
					JOIN players p ON p.id = um.user_id
					WHERE um.match_id=@matchID AND um.status='confirmed'
					ORDER BY um.joined_at ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"matchID": matchID})
	if err != nil {
		return nil, fmt.Errorf("error listing confirmed players for match %s: %w", matchID, err)
	}
	defer rows.Close()

	results := make([]model.Player, 0, 8)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func scanParticipation(row pgx.Row) (*model.Participation, error) {
	var result model.Participation
	var status string
	var joinedAt pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.MatchID,
		&result.UserID,
		&status,
		&result.Paid,
		&joinedAt)

	if err != nil {
		return nil, err
	}

	result.Status = model.ParseParticipationStatus(status)
	result.JoinedAt = joinedAt.Time

	return &result, nil
}

func scanParticipationWithPlayer(row pgx.Row) (*model.Participation, error) {
	var result model.Participation
	var player model.Player
	var status string
	var joinedAt pgtype.Timestamptz
	var pos DBPosition
	var nickname, avatarURL sql.NullString
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.MatchID,
		&result.UserID,
		&status,
		&result.Paid,
		&joinedAt,
		&player.ID,
		&player.Name,
		&nickname,
		&pos,
		&player.Overall,
		&player.Attributes.Pace,
		&player.Attributes.Shooting,
		&player.Attributes.Passing,
		&player.Attributes.Dribbling,
		&player.Attributes.Defending,
		&player.Attributes.Physical,
		&avatarURL,
		&created,
		&updated)

	if err != nil {
		return nil, err
	}

	result.Status = model.ParseParticipationStatus(status)
	result.JoinedAt = joinedAt.Time
	player.Position = pos.position
	player.Nickname = valueOrEmpty(nickname)
	player.AvatarURL = valueOrEmpty(avatarURL)
	player.Created = created.Time
	player.Updated = updated.Time
	result.Player = &player

	return &result, nil
}
