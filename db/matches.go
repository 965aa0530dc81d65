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

const matchColumns = `id, title, location, address, date, price,
					max_players, players_per_side, is_public, organizer_id,
					created, updated`

func (db *postgresDB) AddMatch(ctx context.Context, m *model.Match) error {
	if m == nil {
		return errors.New("AddMatch - match is nil")
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Created = db.clock.Now().UTC()

	const query = `INSERT INTO matches (
			id, title, location, address, date, price,
			max_players, players_per_side, is_public, organizer_id, created, updated
		) VALUES (
			@id, @title, @location, @address, @date, @price,
			@maxPlayers, @playersPerSide, @isPublic, @organizerID, @created, @created
		)`

	args := namedArgsForMatch(m)
	args["created"] = pgtype.Timestamptz{
		Time:             m.Created,
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting match (%s): %w", m.ID, err)
	}
	return nil
}

func (db *postgresDB) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE id=@id`, matchColumns)

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("error scanning match %s: %w", id, err)
	}
	return m, nil
}

func (db *postgresDB) GetMatchDetails(ctx context.Context, id string) (*model.MatchDetails, error) {
	m, err := db.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	const query = `SELECT um.id, um.match_id, um.user_id, um.status, um.is_paid, um.joined_at,
						p.id, p.name, p.nickname, p.position, p.overall,
						p.pace, p.shooting, p.passing, p.dribbling, p.defending, p.physical,
						p.avatar_url, p.created, p.updated
					FROM user_matches um
					JOIN players p ON p.id = um.user_id
					WHERE um.match_id=@matchID
					ORDER BY um.joined_at ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"matchID": id})
	if err != nil {
		return nil, fmt.Errorf("error querying participations for match %s: %w", id, err)
	}
	defer rows.Close()

	details := &model.MatchDetails{Match: *m}
	for rows.Next() {
		p, err := scanParticipationWithPlayer(rows)
		if err != nil {
			return nil, err
		}
		details.Participants = append(details.Participants, *p)
	}
	return details, rows.Err()
}

func (db *postgresDB) ListMatches(ctx context.Context, publicOnly bool) ([]model.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches ORDER BY date ASC`, matchColumns)
	if publicOnly {
		query = fmt.Sprintf(`SELECT %s FROM matches WHERE is_public ORDER BY date ASC`, matchColumns)
	}

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

func (db *postgresDB) ListMatchesForUser(ctx context.Context, userID string) ([]model.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches
					WHERE organizer_id=@userID
						OR id IN (SELECT match_id FROM user_matches WHERE user_id=@userID)
					ORDER BY date ASC`, matchColumns)

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("error listing matches for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

func (db *postgresDB) UpdateMatch(ctx context.Context, m *model.Match) error {
	const query = `UPDATE matches
			SET title=@title,
				location=@location,
				address=@address,
				date=@date,
				price=@price,
				max_players=@maxPlayers,
				players_per_side=@playersPerSide,
				is_public=@isPublic,
				updated=@updated
			WHERE id=@id`

	args := namedArgsForMatch(m)
	args["updated"] = pgtype.Timestamptz{
		Time:             db.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating match (%s): %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (db *postgresDB) DeleteMatch(ctx context.Context, id string) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM matches WHERE id=@id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting match (%s): %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func collectMatches(rows pgx.Rows) ([]model.Match, error) {
	results := make([]model.Match, 0, 8)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *m)
	}
	return results, rows.Err()
}

func scanMatch(row pgx.Row) (*model.Match, error) {
	var result model.Match
	var address sql.NullString
	var date, created, updated pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.Title,
		&result.Location,
		&address,
		&date,
		&result.Price,
		&result.MaxPlayers,
		&result.PlayersPerSide,
		&result.Public,
		&result.OrganizerID,
		&created,
		&updated)

	if err != nil {
		return nil, err
	}

	result.Address = valueOrEmpty(address)
	result.Date = date.Time
	result.Created = created.Time
	result.Updated = updated.Time

	return &result, nil
}

func namedArgsForMatch(m *model.Match) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":       m.ID,
		"title":    m.Title,
		"location": m.Location,
		"address": sql.NullString{
			String: m.Address,
			Valid:  m.Address != "",
		},
		"date": pgtype.Timestamptz{
			Time:             m.Date,
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
		"price":          m.Price,
		"maxPlayers":     m.MaxPlayers,
		"playersPerSide": m.PlayersPerSide,
		"isPublic":       m.Public,
		"organizerID":    m.OrganizerID,
	}
}
