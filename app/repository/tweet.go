package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/chirper-app/chirper/app/entity"
)

type TweetRepository struct {
	db *sql.DB
}

func NewTweetRepository(db *sql.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *entity.Tweet) error {
	medias := tweet.Medias
	if medias == nil {
		medias = []entity.Media{}
	}
	mediasJSON, err := json.Marshal(medias)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tweets (id, user_id, type, audience, content, parent_id, medias_json, guest_views, user_views, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		tweet.ID,
		tweet.UserID,
		tweet.Type,
		tweet.Audience,
		tweet.Content,
		tweet.ParentID,
		mediasJSON,
		tweet.CreatedAt,
		tweet.UpdatedAt,
	)
	return err
}

func (r *TweetRepository) LinkHashtag(ctx context.Context, tweetID, hashtagID string) error {
	query := `INSERT IGNORE INTO tweet_hashtags (tweet_id, hashtag_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, tweetID, hashtagID)
	return err
}

func (r *TweetRepository) LinkMention(ctx context.Context, tweetID, userID string) error {
	query := `INSERT IGNORE INTO tweet_mentions (tweet_id, user_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, tweetID, userID)
	return err
}

func (r *TweetRepository) FindByID(ctx context.Context, id string) (*entity.Tweet, error) {
	query := `
		SELECT id, user_id, type, audience, content, parent_id, medias_json, guest_views, user_views, created_at, updated_at
		FROM tweets WHERE id = ?
	`
	tweet := &entity.Tweet{}
	var mediasJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tweet.ID,
		&tweet.UserID,
		&tweet.Type,
		&tweet.Audience,
		&tweet.Content,
		&tweet.ParentID,
		&mediasJSON,
		&tweet.GuestViews,
		&tweet.UserViews,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mediasJSON, &tweet.Medias); err != nil {
		return nil, err
	}
	return tweet, nil
}

// FindDetailByID joins the tweet with its engagement counters. The mention
// and hashtag lists come from their own repositories.
func (r *TweetRepository) FindDetailByID(ctx context.Context, id string) (*entity.TweetDetail, error) {
	query := `
		SELECT t.id, t.user_id, t.type, t.audience, t.content, t.parent_id, t.medias_json, t.guest_views, t.user_views, t.created_at, t.updated_at,
		       (SELECT COUNT(*) FROM bookmarks b WHERE b.tweet_id = t.id) AS bookmarks,
		       (SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id) AS likes,
		       (SELECT COUNT(*) FROM tweets c WHERE c.parent_id = t.id AND c.type = ?) AS retweet_count,
		       (SELECT COUNT(*) FROM tweets c WHERE c.parent_id = t.id AND c.type = ?) AS comment_count,
		       (SELECT COUNT(*) FROM tweets c WHERE c.parent_id = t.id AND c.type = ?) AS quote_count
		FROM tweets t WHERE t.id = ?
	`
	detail := &entity.TweetDetail{}
	var mediasJSON []byte
	err := r.db.QueryRowContext(ctx, query,
		entity.TweetTypeRetweet,
		entity.TweetTypeComment,
		entity.TweetTypeQuoteTweet,
		id,
	).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.Type,
		&detail.Audience,
		&detail.Content,
		&detail.ParentID,
		&mediasJSON,
		&detail.GuestViews,
		&detail.UserViews,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Bookmarks,
		&detail.Likes,
		&detail.RetweetCount,
		&detail.CommentCount,
		&detail.QuoteCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mediasJSON, &detail.Medias); err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *TweetRepository) FindMentions(ctx context.Context, tweetID string) ([]entity.MentionedUser, error) {
	query := `
		SELECT u.id, u.name, u.username, u.email
		FROM users u
		JOIN tweet_mentions tm ON tm.user_id = u.id
		WHERE tm.tweet_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, tweetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mentions []entity.MentionedUser
	for rows.Next() {
		var m entity.MentionedUser
		if err := rows.Scan(&m.ID, &m.Name, &m.Username, &m.Email); err != nil {
			return nil, err
		}
		mentions = append(mentions, m)
	}
	return mentions, rows.Err()
}

// IncrementViews bumps the guest or user counter and returns the updated
// counters with the new updated_at.
func (r *TweetRepository) IncrementViews(ctx context.Context, tweetID string, byUser bool) (guestViews, userViews uint64, updatedAt time.Time, err error) {
	column := "guest_views"
	if byUser {
		column = "user_views"
	}
	update := `UPDATE tweets SET ` + column + ` = ` + column + ` + 1, updated_at = ? WHERE id = ?`
	updatedAt = time.Now()
	if _, err = r.db.ExecContext(ctx, update, updatedAt, tweetID); err != nil {
		return 0, 0, time.Time{}, err
	}

	query := `SELECT guest_views, user_views FROM tweets WHERE id = ?`
	if err = r.db.QueryRowContext(ctx, query, tweetID).Scan(&guestViews, &userViews); err != nil {
		return 0, 0, time.Time{}, err
	}
	return guestViews, userViews, updatedAt, nil
}
