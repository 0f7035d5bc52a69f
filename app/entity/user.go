package entity

import "time"

// VerifyStatus is the account trust tier gating sensitive actions.
type VerifyStatus int

const (
	VerifyStatusUnverified VerifyStatus = iota
	VerifyStatusVerified
	VerifyStatusBanned
)

type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Username string

	DateOfBirth time.Time
	Verify      VerifyStatus

	// EmailVerifyToken transitions from a signed token to the empty string
	// exactly once, when verification succeeds.
	EmailVerifyToken    string
	ForgotPasswordToken string

	Bio        string
	Location   string
	Website    string
	Avatar     string
	CoverPhoto string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RefreshToken struct {
	ID        uint64
	UserID    string
	Token     string
	CreatedAt time.Time
}

// Follower is one directed edge of the follow graph. At most one edge per
// ordered (UserID, FollowedUserID) pair, enforced by a unique index.
type Follower struct {
	ID             uint64
	UserID         string
	FollowedUserID string
	CreatedAt      time.Time
}
