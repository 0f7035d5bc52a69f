package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/chirper-app/chirper/app/entity"
)

const userColumns = `id, name, email, password, username, date_of_birth, verify, email_verify_token,
		       forgot_password_token, bio, location, website, avatar, cover_photo, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password, username, date_of_birth, verify, email_verify_token, forgot_password_token, bio, location, website, avatar, cover_photo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.Username,
		user.DateOfBirth,
		user.Verify,
		user.EmailVerifyToken,
		user.ForgotPasswordToken,
		user.Bio,
		user.Location,
		user.Website,
		user.Avatar,
		user.CoverPhoto,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func (r *UserRepository) scanUser(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Username,
		&user.DateOfBirth,
		&user.Verify,
		&user.EmailVerifyToken,
		&user.ForgotPasswordToken,
		&user.Bio,
		&user.Location,
		&user.Website,
		&user.Avatar,
		&user.CoverPhoto,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE username = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// FindByEmailAndPassword resolves login credentials. The password digest is
// deterministic, so equality happens in the query like the rest of the
// lookups.
func (r *UserRepository) FindByEmailAndPassword(ctx context.Context, email, passwordDigest string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE email = ? AND password = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email, passwordDigest))
}

func (r *UserRepository) UpdateEmailVerifyToken(ctx context.Context, userID, token string) error {
	query := `UPDATE users SET email_verify_token = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, token, time.Now(), userID)
	return err
}

// MarkVerified clears the stored verify token and promotes the account, the
// one-way transition of the email-verify flow.
func (r *UserRepository) MarkVerified(ctx context.Context, userID string) error {
	query := `UPDATE users SET verify = ?, email_verify_token = '', updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, entity.VerifyStatusVerified, time.Now(), userID)
	return err
}

func (r *UserRepository) UpdateForgotPasswordToken(ctx context.Context, userID, token string) error {
	query := `UPDATE users SET forgot_password_token = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, token, time.Now(), userID)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordDigest string) error {
	query := `UPDATE users SET password = ?, forgot_password_token = '', updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, passwordDigest, time.Now(), userID)
	return err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET
			name = ?,
			date_of_birth = ?,
			bio = ?,
			location = ?,
			website = ?,
			username = ?,
			avatar = ?,
			cover_photo = ?,
			updated_at = ?
		WHERE id = ?
	`
	user.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.DateOfBirth,
		user.Bio,
		user.Location,
		user.Website,
		user.Username,
		user.Avatar,
		user.CoverPhoto,
		user.UpdatedAt,
		user.ID,
	)
	return err
}
