package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/chirper-app/chirper/app/entity"

	"github.com/google/uuid"
)

type HashtagRepository struct {
	db *sql.DB
}

func NewHashtagRepository(db *sql.DB) *HashtagRepository {
	return &HashtagRepository{db: db}
}

// Upsert returns the hashtag for name, creating it on first use. INSERT
// IGNORE against the unique name index keeps concurrent first uses from
// creating duplicates; the follow-up select resolves whichever row won.
func (r *HashtagRepository) Upsert(ctx context.Context, name string) (*entity.Hashtag, error) {
	insert := `
		INSERT IGNORE INTO hashtags (id, name, created_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, insert, uuid.New().String(), name, time.Now()); err != nil {
		return nil, err
	}

	query := `SELECT id, name, created_at FROM hashtags WHERE name = ?`
	tag := &entity.Hashtag{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *HashtagRepository) FindByTweetID(ctx context.Context, tweetID string) ([]entity.Hashtag, error) {
	query := `
		SELECT h.id, h.name, h.created_at
		FROM hashtags h
		JOIN tweet_hashtags th ON th.hashtag_id = h.id
		WHERE th.tweet_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, tweetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []entity.Hashtag
	for rows.Next() {
		var tag entity.Hashtag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
