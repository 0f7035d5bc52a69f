package http

import (
	"github.com/chirper-app/chirper/app/entity"
	"github.com/chirper-app/chirper/app/validation"
	"github.com/chirper-app/chirper/config"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	DateOfBirth     string `json:"date_of_birth"`
}

func (r *RegisterRequest) Validate(policy config.PasswordPolicy) error {
	errs := validation.Errors{}
	validation.Check(errs, "name", r.Name,
		validation.Required("Name is required"),
		validation.LengthBetween(1, 100, "Name length must be from 1 to 100"),
	)
	validation.Check(errs, "email", r.Email,
		validation.Required("Email is required"),
		validation.Email("Email is invalid"),
	)
	validation.Check(errs, "password", r.Password,
		validation.Required("Password is required"),
		validation.Password(policy),
	)
	validation.Check(errs, "confirm_password", r.ConfirmPassword,
		validation.Required("Confirm password is required"),
		validation.EqualTo(r.Password, "Confirm password must match password"),
	)
	validation.Check(errs, "date_of_birth", r.DateOfBirth,
		validation.Required("Date of birth is required"),
		validation.ISODate("Date of birth must be ISO8601"),
	)
	return errs.Err()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	errs := validation.Errors{}
	validation.Check(errs, "email", r.Email,
		validation.Required("Email is required"),
		validation.Email("Email is invalid"),
	)
	validation.Check(errs, "password", r.Password,
		validation.Required("Password is required"),
	)
	return errs.Err()
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *LogoutRequest) Validate() error {
	errs := validation.Errors{}
	validation.Check(errs, "refresh_token", r.RefreshToken,
		validation.Required("Refresh token is required"),
	)
	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	errs := validation.Errors{}
	validation.Check(errs, "refresh_token", r.RefreshToken,
		validation.Required("Refresh token is required"),
	)
	return errs.Err()
}

type VerifyEmailRequest struct {
	EmailVerifyToken string `json:"email_verify_token"`
}

func (r *VerifyEmailRequest) Validate() error {
	errs := validation.Errors{}
	validation.Check(errs, "email_verify_token", r.EmailVerifyToken,
		validation.Required("Email verify token is required"),
	)
	return errs.Err()
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	errs := validation.Errors{}
	validation.Check(errs, "email", r.Email,
		validation.Required("Email is required"),
		validation.Email("Email is invalid"),
	)
	return errs.Err()
}

type VerifyForgotPasswordRequest struct {
	ForgotPasswordToken string `json:"forgot_password_token"`
}

func (r *VerifyForgotPasswordRequest) Validate() error {
	errs := validation.Errors{}
	validation.Check(errs, "forgot_password_token", r.ForgotPasswordToken,
		validation.Required("Forgot password token is required"),
	)
	return errs.Err()
}

type ResetPasswordRequest struct {
	Password            string `json:"password"`
	ConfirmPassword     string `json:"confirm_password"`
	ForgotPasswordToken string `json:"forgot_password_token"`
}

func (r *ResetPasswordRequest) Validate(policy config.PasswordPolicy) error {
	errs := validation.Errors{}
	validation.Check(errs, "password", r.Password,
		validation.Required("Password is required"),
		validation.Password(policy),
	)
	validation.Check(errs, "confirm_password", r.ConfirmPassword,
		validation.Required("Confirm password is required"),
		validation.EqualTo(r.Password, "Confirm password must match password"),
	)
	validation.Check(errs, "forgot_password_token", r.ForgotPasswordToken,
		validation.Required("Forgot password token is required"),
	)
	return errs.Err()
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ChangePasswordRequest) Validate(policy config.PasswordPolicy) error {
	errs := validation.Errors{}
	validation.Check(errs, "old_password", r.OldPassword,
		validation.Required("Old password is required"),
	)
	validation.Check(errs, "password", r.Password,
		validation.Required("Password is required"),
		validation.Password(policy),
	)
	validation.Check(errs, "confirm_password", r.ConfirmPassword,
		validation.Required("Confirm password is required"),
		validation.EqualTo(r.Password, "Confirm password must match password"),
	)
	return errs.Err()
}

// UpdateMeRequest uses pointers so absent fields stay untouched; only the
// whitelisted profile fields are bindable at all.
type UpdateMeRequest struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	Username    *string `json:"username"`
	Avatar      *string `json:"avatar"`
	CoverPhoto  *string `json:"cover_photo"`
}

func (r *UpdateMeRequest) Validate() error {
	errs := validation.Errors{}
	if r.Name != nil {
		validation.Check(errs, "name", *r.Name,
			validation.Required("Name is required"),
			validation.LengthBetween(1, 100, "Name length must be from 1 to 100"),
		)
	}
	if r.DateOfBirth != nil {
		validation.Check(errs, "date_of_birth", *r.DateOfBirth,
			validation.ISODate("Date of birth must be ISO8601"),
		)
	}
	if r.Bio != nil {
		validation.Check(errs, "bio", *r.Bio,
			validation.LengthBetween(1, 200, "Bio length must be from 1 to 200"),
		)
	}
	if r.Location != nil {
		validation.Check(errs, "location", *r.Location,
			validation.LengthBetween(1, 200, "Location length must be from 1 to 200"),
		)
	}
	if r.Website != nil {
		validation.Check(errs, "website", *r.Website,
			validation.LengthBetween(1, 400, "Website length must be from 1 to 400"),
		)
	}
	if r.Username != nil {
		validation.Check(errs, "username", *r.Username,
			validation.Username("Username must be 4-15 characters of letters, numbers or underscore"),
		)
	}
	if r.Avatar != nil {
		validation.Check(errs, "avatar", *r.Avatar,
			validation.LengthBetween(1, 400, "Avatar length must be from 1 to 400"),
		)
	}
	if r.CoverPhoto != nil {
		validation.Check(errs, "cover_photo", *r.CoverPhoto,
			validation.LengthBetween(1, 400, "Cover photo length must be from 1 to 400"),
		)
	}
	return errs.Err()
}

type FollowRequest struct {
	FollowedUserID string `json:"followed_user_id"`
}

func (r *FollowRequest) Validate() error {
	errs := validation.Errors{}
	validation.Check(errs, "followed_user_id", r.FollowedUserID,
		validation.Required("Followed user id is required"),
		validation.UUID("Followed user id is invalid"),
	)
	return errs.Err()
}

type CreateTweetRequest struct {
	Type     int            `json:"type"`
	Audience int            `json:"audience"`
	Content  string         `json:"content"`
	ParentID string         `json:"parent_id"`
	Hashtags []string       `json:"hashtags"`
	Mentions []string       `json:"mentions"`
	Medias   []entity.Media `json:"medias"`
}

func (r *CreateTweetRequest) Validate() error {
	errs := validation.Errors{}
	if r.Type < int(entity.TweetTypeTweet) || r.Type > int(entity.TweetTypeQuoteTweet) {
		errs.Add("type", "Type is invalid")
	}
	if r.Audience < int(entity.TweetAudienceEveryone) || r.Audience > int(entity.TweetAudienceTwitterCircle) {
		errs.Add("audience", "Audience is invalid")
	}

	// Retweets, comments and quote tweets must reference a parent; root
	// tweets must not.
	if r.Type == int(entity.TweetTypeTweet) {
		if r.ParentID != "" {
			errs.Add("parent_id", "Parent id must be null")
		}
	} else {
		validation.Check(errs, "parent_id", r.ParentID,
			validation.Required("Parent id is required"),
			validation.UUID("Parent id is invalid"),
		)
	}

	// Retweets carry no content of their own.
	if r.Type == int(entity.TweetTypeRetweet) {
		if r.Content != "" {
			errs.Add("content", "Content must be empty")
		}
	} else if r.Content == "" && len(r.Hashtags) == 0 && len(r.Mentions) == 0 {
		errs.Add("content", "Content is required")
	}

	for _, mention := range r.Mentions {
		if err := validation.UUID("Mentions must be an array of user ids")(mention); err != nil {
			errs.Add("mentions", err.Error())
			break
		}
	}
	for _, media := range r.Medias {
		if media.Type != entity.MediaTypeImage && media.Type != entity.MediaTypeVideo {
			errs.Add("medias", "Medias must be an array of media objects")
			break
		}
	}
	return errs.Err()
}

type BookmarkRequest struct {
	TweetID string `json:"tweet_id"`
}

func (r *BookmarkRequest) Validate() error {
	errs := validation.Errors{}
	validation.Check(errs, "tweet_id", r.TweetID,
		validation.Required("Tweet id is required"),
		validation.UUID("Tweet id is invalid"),
	)
	return errs.Err()
}

type LikeRequest struct {
	TweetID string `json:"tweet_id"`
}

func (r *LikeRequest) Validate() error {
	errs := validation.Errors{}
	validation.Check(errs, "tweet_id", r.TweetID,
		validation.Required("Tweet id is required"),
		validation.UUID("Tweet id is invalid"),
	)
	return errs.Err()
}
