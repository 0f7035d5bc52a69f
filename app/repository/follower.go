package repository

import (
	"context"
	"database/sql"
	"time"
)

type FollowerRepository struct {
	db *sql.DB
}

func NewFollowerRepository(db *sql.DB) *FollowerRepository {
	return &FollowerRepository{db: db}
}

// Create inserts the edge if absent. INSERT IGNORE against the unique
// (user_id, followed_user_id) index makes the check-then-act atomic: the
// returned bool is false when the edge already existed.
func (r *FollowerRepository) Create(ctx context.Context, userID, followedUserID string) (bool, error) {
	query := `
		INSERT IGNORE INTO followers (user_id, followed_user_id, created_at)
		VALUES (?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query, userID, followedUserID, time.Now())
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *FollowerRepository) Delete(ctx context.Context, userID, followedUserID string) (int64, error) {
	query := `DELETE FROM followers WHERE user_id = ? AND followed_user_id = ?`
	result, err := r.db.ExecContext(ctx, query, userID, followedUserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
