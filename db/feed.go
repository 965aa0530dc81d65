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

func (db *postgresDB) AddFeedPost(ctx context.Context, p *model.FeedPost) error {
	if p == nil {
		return errors.New("AddFeedPost - post is nil")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Created = db.clock.Now().UTC()

	const query = `INSERT INTO feed_posts (id, match_id, author_id, content, image_url, created)
		VALUES (@id, @matchID, @authorID, @content, @imageURL, @created)`

	args := pgx.NamedArgs{
		"id":       p.ID,
		"matchID":  p.MatchID,
		"authorID": p.AuthorID,
		"content":  p.Content,
		"imageURL": sql.NullString{
			String: p.ImageURL,
			Valid:  p.ImageURL != "",
		},
		"created": pgtype.Timestamptz{
			Time:             p.Created,
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting feed post (%s): %w", p.ID, err)
	}
	return nil
}

func (db *postgresDB) GetFeedPost(ctx context.Context, id string) (*model.FeedPost, error) {
	const query = `SELECT id, match_id, author_id, content, image_url, created
					FROM feed_posts WHERE id=@id`

	var result model.FeedPost
	var imageURL sql.NullString
	var created pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(
		&result.ID,
		&result.MatchID,
		&result.AuthorID,
		&result.Content,
		&imageURL,
		&created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("error scanning feed post %s: %w", id, err)
	}

	result.ImageURL = valueOrEmpty(imageURL)
	result.Created = created.Time
	return &result, nil
}

func (db *postgresDB) ListFeedPosts(ctx context.Context, matchID, viewerID string) ([]model.FeedPost, error) {
	const query = `SELECT fp.id, fp.match_id, fp.author_id, fp.content, fp.image_url, fp.created,
						p.id, p.name, p.nickname, p.position, p.overall,
						p.pace, p.shooting, p.passing, p.dribbling, p.defending, p.physical,
						p.avatar_url, p.created, p.updated
					FROM feed_posts fp
					JOIN players p ON p.id = fp.author_id
					WHERE fp.match_id=@matchID
					ORDER BY fp.created DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"matchID": matchID})
	if err != nil {
		return nil, fmt.Errorf("error listing feed posts for match %s: %w", matchID, err)
	}
	defer rows.Close()

	posts := make([]model.FeedPost, 0, 8)
	for rows.Next() {
		p, err := scanFeedPostWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.fillReactions(ctx, matchID, viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (db *postgresDB) fillReactions(ctx context.Context, matchID, viewerID string, posts []model.FeedPost) error {
	const query = `SELECT pr.post_id, pr.user_id, pr.reaction_type
					FROM post_reactions pr
					JOIN feed_posts fp ON fp.id = pr.post_id
					WHERE fp.match_id=@matchID`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"matchID": matchID})
	if err != nil {
		return fmt.Errorf("error listing reactions for match %s: %w", matchID, err)
	}
	defer rows.Close()

	byPost := make(map[string]int, len(posts))
	for i := range posts {
		posts[i].Reactions = map[model.ReactionKind]int{}
		byPost[posts[i].ID] = i
	}

	for rows.Next() {
		var postID, userID, kind string
		if err := rows.Scan(&postID, &userID, &kind); err != nil {
			return fmt.Errorf("error scanning reaction: %w", err)
		}
		i, ok := byPost[postID]
		if !ok {
			continue
		}
		k := model.ParseReactionKind(kind)
		if k == model.ReactionUnknown {
			continue
		}
		posts[i].Reactions[k]++
		if userID == viewerID {
			posts[i].UserReaction = k
		}
	}
	return rows.Err()
}

// ToggleReaction runs in a transaction: the read decides between insert,
// delete and update, and the commit makes the whole toggle one store
// operation as far as callers are concerned.
func (db *postgresDB) ToggleReaction(ctx context.Context, postID, userID string, kind model.ReactionKind) (model.ReactionKind, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return model.ReactionUnknown, err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"postID": postID,
		"userID": userID,
		"kind":   string(kind),
	}

	var existing string
	err = tx.QueryRow(ctx,
		`SELECT reaction_type FROM post_reactions WHERE post_id=@postID AND user_id=@userID FOR UPDATE`,
		args).Scan(&existing)

	result := kind
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		args["id"] = uuid.NewString()
		_, err = tx.Exec(ctx,
			`INSERT INTO post_reactions (id, post_id, user_id, reaction_type) VALUES (@id, @postID, @userID, @kind)`,
			args)
	case err != nil:
		return model.ReactionUnknown, fmt.Errorf("error reading reaction (%s, %s): %w", postID, userID, err)
	case model.ParseReactionKind(existing) == kind:
		_, err = tx.Exec(ctx,
			`DELETE FROM post_reactions WHERE post_id=@postID AND user_id=@userID`,
			args)
		result = model.ReactionUnknown
	default:
		_, err = tx.Exec(ctx,
			`UPDATE post_reactions SET reaction_type=@kind WHERE post_id=@postID AND user_id=@userID`,
			args)
	}
	if err != nil {
		return model.ReactionUnknown, fmt.Errorf("error toggling reaction (%s, %s): %w", postID, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.ReactionUnknown, fmt.Errorf("error committing reaction toggle: %w", err)
	}
	return result, nil
}

func scanFeedPostWithAuthor(row pgx.Row) (*model.FeedPost, error) {
	var result model.FeedPost
	var author model.Player
	var imageURL, nickname, avatarURL sql.NullString
	var created, authorCreated, authorUpdated pgtype.Timestamptz
	var pos DBPosition
	err := row.Scan(
		&result.ID,
		&result.MatchID,
		&result.AuthorID,
		&result.Content,
		&imageURL,
		&created,
		&author.ID,
		&author.Name,
		&nickname,
		&pos,
		&author.Overall,
		&author.Attributes.Pace,
		&author.Attributes.Shooting,
		&author.Attributes.Passing,
		&author.Attributes.Dribbling,
		&author.Attributes.Defending,
		&author.Attributes.Physical,
		&avatarURL,
		&authorCreated,
		&authorUpdated)

	if err != nil {
		return nil, err
	}

	result.ImageURL = valueOrEmpty(imageURL)
	result.Created = created.Time
	author.Position = pos.position
	author.Nickname = valueOrEmpty(nickname)
	author.AvatarURL = valueOrEmpty(avatarURL)
	author.Created = authorCreated.Time
	author.Updated = authorUpdated.Time
	result.Author = &author

	return &result, nil
}
