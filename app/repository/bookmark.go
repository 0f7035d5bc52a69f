package repository

import (
	"context"
	"database/sql"
	"time"
)

type BookmarkRepository struct {
	db *sql.DB
}

func NewBookmarkRepository(db *sql.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// Create inserts the (user, tweet) pair if absent; false means it was
// already bookmarked.
func (r *BookmarkRepository) Create(ctx context.Context, userID, tweetID string) (bool, error) {
	query := `
		INSERT IGNORE INTO bookmarks (user_id, tweet_id, created_at)
		VALUES (?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query, userID, tweetID, time.Now())
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, userID, tweetID string) (int64, error) {
	query := `DELETE FROM bookmarks WHERE user_id = ? AND tweet_id = ?`
	result, err := r.db.ExecContext(ctx, query, userID, tweetID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Create(ctx context.Context, userID, tweetID string) (bool, error) {
	query := `
		INSERT IGNORE INTO likes (user_id, tweet_id, created_at)
		VALUES (?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query, userID, tweetID, time.Now())
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *LikeRepository) Delete(ctx context.Context, userID, tweetID string) (int64, error) {
	query := `DELETE FROM likes WHERE user_id = ? AND tweet_id = ?`
	result, err := r.db.ExecContext(ctx, query, userID, tweetID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
