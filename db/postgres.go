package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fabianojp06/pelada-hero/model"
)

const pgUniqueViolation = "23505"

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	const query = `SELECT id, name, nickname, position, overall,
						pace, shooting, passing, dribbling, defending, physical,
						avatar_url, created, updated
					FROM players WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %s: %w", id, err)
	}
	return p, nil
}

func (db *postgresDB) SavePlayer(ctx context.Context, p *model.Player) error {
	if p == nil {
		return errors.New("SavePlayer - player is nil")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	const query = `INSERT INTO players (
			id, name, nickname, position, overall,
			pace, shooting, passing, dribbling, defending, physical, avatar_url
		) VALUES (
			@id, @name, @nickname, @position, @overall,
			@pace, @shooting, @passing, @dribbling, @defending, @physical, @avatarURL
		)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name,
			nickname=EXCLUDED.nickname,
			position=EXCLUDED.position,
			overall=EXCLUDED.overall,
			pace=EXCLUDED.pace,
			shooting=EXCLUDED.shooting,
			passing=EXCLUDED.passing,
			dribbling=EXCLUDED.dribbling,
			defending=EXCLUDED.defending,
			physical=EXCLUDED.physical,
			avatar_url=EXCLUDED.avatar_url,
			updated=@updated`

	args := pgx.NamedArgs{
		"id":   p.ID,
		"name": p.Name,
		"nickname": sql.NullString{
			String: p.Nickname,
			Valid:  p.Nickname != "",
		},
		"position":  &DBPosition{position: p.Position},
		"overall":   p.Overall,
		"pace":      p.Attributes.Pace,
		"shooting":  p.Attributes.Shooting,
		"passing":   p.Attributes.Passing,
		"dribbling": p.Attributes.Dribbling,
		"defending": p.Attributes.Defending,
		"physical":  p.Attributes.Physical,
		"avatarURL": sql.NullString{
			String: p.AvatarURL,
			Valid:  p.AvatarURL != "",
		},
		"updated": pgtype.Timestamptz{
			Time:             db.clock.Now().UTC(),
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
	}

	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving player (%s): %w", p.ID, err)
	}
	return nil
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player
	var pos DBPosition
	var nickname, avatarURL sql.NullString
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.Name,
		&nickname,
		&pos,
		&result.Overall,
		&result.Attributes.Pace,
		&result.Attributes.Shooting,
		&result.Attributes.Passing,
		&result.Attributes.Dribbling,
		&result.Attributes.Defending,
		&result.Attributes.Physical,
		&avatarURL,
		&created,
		&updated)

	if err != nil {
		return nil, err
	}

	result.Position = pos.position
	result.Nickname = valueOrEmpty(nickname)
	result.AvatarURL = valueOrEmpty(avatarURL)
	result.Created = created.Time
	result.Updated = updated.Time

	return &result, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

type DBPosition struct {
	position model.Position
}

func (p *DBPosition) ScanText(v pgtype.Text) error {
	p.position = model.ParsePosition(v.String)
	return nil
}

func (p *DBPosition) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: string(p.position),
		Valid:  true,
	}, nil
}
