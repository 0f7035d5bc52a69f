package service

import (
	"context"
	"errors"
	"time"

	"github.com/chirper-app/chirper/app/apperror"
	httpdto "github.com/chirper-app/chirper/app/dto/http"
	"github.com/chirper-app/chirper/app/entity"
	"github.com/chirper-app/chirper/config"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

const (
	MsgRegisterSuccess             = "Register successfully"
	MsgLoginSuccess                = "Login successfully"
	MsgOAuthSuccess                = "OAuth login successfully"
	MsgLogoutSuccess               = "Logout success"
	MsgRefreshTokenSuccess         = "Refresh token successfully"
	MsgEmailVerifySuccess          = "Email verify successfully"
	MsgEmailAlreadyVerified        = "Email verify before"
	MsgResendVerifyEmailSuccess    = "Resend email verify successfully"
	MsgCheckEmailToResetPassword   = "Check email to reset password"
	MsgVerifyForgotPasswordSuccess = "Verify forgot password successfully"
	MsgResetPasswordSuccess        = "Reset password successfully"
	MsgChangePasswordSuccess       = "Change password successfully"
	MsgFollowSuccess               = "Follow successfully"
	MsgAlreadyFollowed             = "Followed"
	MsgUnfollowSuccess             = "Unfollow successfully"
	MsgAlreadyUnfollowed           = "Already unfollowed"
	MsgGetMeSuccess                = "Get my profile successfully"
	MsgGetProfileSuccess           = "Get profile successfully"
	MsgUpdateMeSuccess             = "Update my profile successfully"

	msgUserNotFound              = "User not found"
	msgEmailExists               = "Email already exists"
	msgUsernameExists            = "Username already exists"
	msgEmailOrPasswordIncorrect  = "Email or password is incorrect"
	msgOldPasswordNotMatch       = "Old password not match"
	msgUsedRefreshToken          = "Used refresh token or not exits"
	msgUsedEmailVerifyToken      = "Used verify email token or not exits"
	msgInvalidForgotPasswordTkn  = "Invalid forgot password token"
	msgGmailNotVerified          = "Gmail is not verified"
	msgCannotFollowYourself      = "Cannot follow yourself"
)

const mysqlErrDuplicateEntry = 1062

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmailAndPassword(ctx context.Context, email, passwordDigest string) (*entity.User, error)
	UpdateEmailVerifyToken(ctx context.Context, userID, token string) error
	MarkVerified(ctx context.Context, userID string) error
	UpdateForgotPasswordToken(ctx context.Context, userID, token string) error
	UpdatePassword(ctx context.Context, userID, passwordDigest string) error
	UpdateProfile(ctx context.Context, user *entity.User) error
}

type refreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type followerRepository interface {
	Create(ctx context.Context, userID, followedUserID string) (bool, error)
	Delete(ctx context.Context, userID, followedUserID string) (int64, error)
}

type Mailer interface {
	SendVerifyEmail(to, token string)
	SendResetPassword(to, token string)
}

type googleProvider interface {
	FetchUser(ctx context.Context, code string) (*GoogleUser, error)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AsyncRunner func(task func())

type AccountServiceOption func(*AccountService)

type AccountService struct {
	cfg          *config.Config
	userRepo     userRepository
	refreshRepo  refreshTokenRepository
	followerRepo followerRepository
	tokens       *TokenService
	mailer       Mailer
	google       googleProvider
	asyncRunner  AsyncRunner
}

func NewAccountService(
	cfg *config.Config,
	userRepo userRepository,
	refreshRepo refreshTokenRepository,
	followerRepo followerRepository,
	tokens *TokenService,
	mailer Mailer,
	google googleProvider,
	opts ...AccountServiceOption,
) *AccountService {
	svc := &AccountService{
		cfg:          cfg,
		userRepo:     userRepo,
		refreshRepo:  refreshRepo,
		followerRepo: followerRepo,
		tokens:       tokens,
		mailer:       mailer,
		google:       google,
		asyncRunner: func(task func()) {
			go task()
		},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithAsyncRunner(runner AsyncRunner) AccountServiceOption {
	return func(s *AccountService) {
		if runner != nil {
			s.asyncRunner = runner
		}
	}
}

func (s *AccountService) signTokenPair(ctx context.Context, userID string, verify entity.VerifyStatus) (*TokenPair, error) {
	accessToken, err := s.tokens.Sign(userID, verify, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.Sign(userID, verify, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	if err := s.refreshRepo.Create(ctx, &entity.RefreshToken{
		UserID:    userID,
		Token:     refreshToken,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func parseDateOfBirth(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func (s *AccountService) Register(ctx context.Context, req *httpdto.RegisterRequest) (*TokenPair, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewValidation(map[string]string{"email": msgEmailExists})
	}

	// The id is generated before the insert so the email-verify token can
	// embed it.
	userID := uuid.New().String()
	emailVerifyToken, err := s.tokens.Sign(userID, entity.VerifyStatusUnverified, TokenTypeEmailVerify)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:               userID,
		Name:             req.Name,
		Email:            req.Email,
		Password:         HashPassword(req.Password, s.cfg.PasswordSecret),
		Username:         "user_" + userID[:8],
		DateOfBirth:      parseDateOfBirth(req.DateOfBirth),
		Verify:           entity.VerifyStatusUnverified,
		EmailVerifyToken: emailVerifyToken,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicateEntry(err) {
			return nil, apperror.NewValidation(map[string]string{"email": msgEmailExists})
		}
		return nil, err
	}

	s.asyncRunner(func() {
		s.mailer.SendVerifyEmail(user.Email, emailVerifyToken)
	})

	return s.signTokenPair(ctx, userID, entity.VerifyStatusUnverified)
}

func (s *AccountService) Login(ctx context.Context, req *httpdto.LoginRequest) (*TokenPair, error) {
	user, err := s.userRepo.FindByEmailAndPassword(ctx, req.Email, HashPassword(req.Password, s.cfg.PasswordSecret))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewValidation(map[string]string{"email": msgEmailOrPasswordIncorrect})
	}

	return s.signTokenPair(ctx, user.ID, user.Verify)
}

// OAuthGoogle exchanges the provider code, requires a provider-verified
// email, then logs in the matching local user or registers a fresh one with
// an unusable random password.
func (s *AccountService) OAuthGoogle(ctx context.Context, code string) (*TokenPair, bool, error) {
	info, err := s.google.FetchUser(ctx, code)
	if err != nil {
		return nil, false, err
	}
	if !info.VerifiedEmail {
		return nil, false, apperror.NewStatus(400, msgGmailNotVerified)
	}

	user, err := s.userRepo.FindByEmail(ctx, info.Email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		pair, err := s.signTokenPair(ctx, user.ID, user.Verify)
		return pair, false, err
	}

	userID := uuid.New().String()
	emailVerifyToken, err := s.tokens.Sign(userID, entity.VerifyStatusUnverified, TokenTypeEmailVerify)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	newUser := &entity.User{
		ID:    userID,
		Name:  info.Name,
		Email: info.Email,
		// Random unusable password: OAuth accounts authenticate through the
		// provider until the user resets it.
		Password:         HashPassword(uuid.New().String()+uuid.New().String(), s.cfg.PasswordSecret),
		Username:         "user_" + userID[:8],
		Verify:           entity.VerifyStatusUnverified,
		EmailVerifyToken: emailVerifyToken,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if insertErr := s.userRepo.Create(ctx, newUser); insertErr != nil {
		// Two first-time logins for the same email can race; the unique
		// email index makes one insert lose, and the loser logs in against
		// the winner's row.
		if isDuplicateEntry(insertErr) {
			user, err := s.userRepo.FindByEmail(ctx, info.Email)
			if err != nil {
				return nil, false, err
			}
			if user != nil {
				pair, err := s.signTokenPair(ctx, user.ID, user.Verify)
				return pair, false, err
			}
		}
		// The duplicate was not on email (or the winning row vanished):
		// surface the insert failure rather than a nil pair.
		return nil, false, insertErr
	}

	pair, err := s.signTokenPair(ctx, userID, entity.VerifyStatusUnverified)
	return pair, true, err
}

// validateRefreshToken is the two-step refresh gate: cryptographic check with
// the refresh secret, then presence in the persisted set (revocation is
// deletion).
func (s *AccountService) validateRefreshToken(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := s.tokens.Verify(token, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	stored, err := s.refreshRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, apperror.Unauthorized(msgUsedRefreshToken)
	}
	return claims, nil
}

func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.validateRefreshToken(ctx, refreshToken); err != nil {
		return err
	}

	_, err := s.refreshRepo.DeleteByToken(ctx, refreshToken)
	return err
}

// RefreshToken rotates the pair: the presented token is revoked and a fresh
// pair is issued against the user's current verification status.
func (s *AccountService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	deleted, err := s.refreshRepo.DeleteByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, apperror.Unauthorized(msgUsedRefreshToken)
	}

	return s.signTokenPair(ctx, user.ID, user.Verify)
}

func (s *AccountService) VerifyEmail(ctx context.Context, emailVerifyToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(emailVerifyToken, TokenTypeEmailVerify)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	if user.Verify == entity.VerifyStatusVerified {
		return nil, nil
	}
	// The stored token is cleared exactly once; a consumed token no longer
	// matches and is rejected.
	if user.EmailVerifyToken == "" || user.EmailVerifyToken != emailVerifyToken {
		return nil, apperror.Unauthorized(msgUsedEmailVerifyToken)
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.signTokenPair(ctx, user.ID, entity.VerifyStatusVerified)
}

func (s *AccountService) ResendVerifyEmail(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperror.NotFound(msgUserNotFound)
	}
	if user.Verify == entity.VerifyStatusVerified {
		return MsgEmailAlreadyVerified, nil
	}

	token, err := s.tokens.Sign(user.ID, user.Verify, TokenTypeEmailVerify)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.UpdateEmailVerifyToken(ctx, user.ID, token); err != nil {
		return "", err
	}

	s.asyncRunner(func() {
		s.mailer.SendVerifyEmail(user.Email, token)
	})

	return MsgResendVerifyEmailSuccess, nil
}

func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound(msgUserNotFound)
	}

	token, err := s.tokens.Sign(user.ID, user.Verify, TokenTypeForgotPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateForgotPasswordToken(ctx, user.ID, token); err != nil {
		return err
	}

	s.asyncRunner(func() {
		s.mailer.SendResetPassword(user.Email, token)
	})

	return nil
}

// validateForgotPasswordToken decodes the token and cross-checks it against
// the one currently stored on the user record.
func (s *AccountService) validateForgotPasswordToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.tokens.Verify(token, TokenTypeForgotPassword)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	if user.ForgotPasswordToken == "" || user.ForgotPasswordToken != token {
		return nil, apperror.Unauthorized(msgInvalidForgotPasswordTkn)
	}
	return user, nil
}

func (s *AccountService) VerifyForgotPassword(ctx context.Context, token string) error {
	_, err := s.validateForgotPasswordToken(ctx, token)
	return err
}

func (s *AccountService) ResetPassword(ctx context.Context, req *httpdto.ResetPasswordRequest) error {
	user, err := s.validateForgotPasswordToken(ctx, req.ForgotPasswordToken)
	if err != nil {
		return err
	}

	// UpdatePassword also clears the stored forgot-password token, so the
	// reset link is single use.
	if err := s.userRepo.UpdatePassword(ctx, user.ID, HashPassword(req.Password, s.cfg.PasswordSecret)); err != nil {
		return err
	}

	// A reset usually means the credential leaked: revoke every session.
	return s.refreshRepo.DeleteByUserID(ctx, user.ID)
}

func (s *AccountService) ChangePassword(ctx context.Context, userID string, req *httpdto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound(msgUserNotFound)
	}

	if HashPassword(req.OldPassword, s.cfg.PasswordSecret) != user.Password {
		return apperror.NewValidation(map[string]string{"old_password": msgOldPasswordNotMatch})
	}

	return s.userRepo.UpdatePassword(ctx, userID, HashPassword(req.Password, s.cfg.PasswordSecret))
}

func (s *AccountService) GetMe(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	return user, nil
}

func (s *AccountService) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	return user, nil
}

func (s *AccountService) UpdateMe(ctx context.Context, userID string, req *httpdto.UpdateMeRequest) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.userRepo.FindByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, apperror.NewValidation(map[string]string{"username": msgUsernameExists})
		}
		user.Username = *req.Username
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = parseDateOfBirth(*req.DateOfBirth)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Website != nil {
		user.Website = *req.Website
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.CoverPhoto != nil {
		user.CoverPhoto = *req.CoverPhoto
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if isDuplicateEntry(err) {
			return nil, apperror.NewValidation(map[string]string{"username": msgUsernameExists})
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) Follow(ctx context.Context, userID, followedUserID string) (string, error) {
	if userID == followedUserID {
		return "", apperror.NewStatus(400, msgCannotFollowYourself)
	}

	target, err := s.userRepo.FindByID(ctx, followedUserID)
	if err != nil {
		return "", err
	}
	if target == nil {
		return "", apperror.NotFound(msgUserNotFound)
	}

	created, err := s.followerRepo.Create(ctx, userID, followedUserID)
	if err != nil {
		return "", err
	}
	if !created {
		return MsgAlreadyFollowed, nil
	}
	return MsgFollowSuccess, nil
}

func (s *AccountService) Unfollow(ctx context.Context, userID, followedUserID string) (string, error) {
	deleted, err := s.followerRepo.Delete(ctx, userID, followedUserID)
	if err != nil {
		return "", err
	}
	if deleted == 0 {
		return MsgAlreadyUnfollowed, nil
	}
	return MsgUnfollowSuccess, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
