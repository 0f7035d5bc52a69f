package http

import (
	"time"

	"github.com/chirper-app/chirper/app/entity"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type TokenPairResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type OAuthResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	NewUser      bool   `json:"new_user"`
}

// UserProfile is the public projection of a user: no password digest, no
// pending tokens.
type UserProfile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Verify      int       `json:"verify"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	Website     string    `json:"website"`
	Avatar      string    `json:"avatar"`
	CoverPhoto  string    `json:"cover_photo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewUserProfile(user *entity.User) *UserProfile {
	return &UserProfile{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Username:    user.Username,
		DateOfBirth: user.DateOfBirth,
		Verify:      int(user.Verify),
		Bio:         user.Bio,
		Location:    user.Location,
		Website:     user.Website,
		Avatar:      user.Avatar,
		CoverPhoto:  user.CoverPhoto,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

type UserProfileResponse struct {
	Message string       `json:"message"`
	Result  *UserProfile `json:"result"`
}

type TweetResponse struct {
	Message string       `json:"message"`
	Result  *TweetDetail `json:"result"`
}

type TweetDetail struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"user_id"`
	Type         int                    `json:"type"`
	Audience     int                    `json:"audience"`
	Content      string                 `json:"content"`
	ParentID     *string                `json:"parent_id"`
	Hashtags     []entity.Hashtag       `json:"hashtags"`
	Mentions     []entity.MentionedUser `json:"mentions"`
	Medias       []entity.Media         `json:"medias"`
	Bookmarks    uint64                 `json:"bookmarks"`
	Likes        uint64                 `json:"likes"`
	RetweetCount uint64                 `json:"retweet_count"`
	CommentCount uint64                 `json:"comment_count"`
	QuoteCount   uint64                 `json:"quote_count"`
	GuestViews   uint64                 `json:"guest_views"`
	UserViews    uint64                 `json:"user_views"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func NewTweetDetail(detail *entity.TweetDetail) *TweetDetail {
	var parentID *string
	if detail.ParentID.Valid {
		id := detail.ParentID.String
		parentID = &id
	}
	hashtags := detail.Hashtags
	if hashtags == nil {
		hashtags = []entity.Hashtag{}
	}
	mentions := detail.Mentions
	if mentions == nil {
		mentions = []entity.MentionedUser{}
	}
	medias := detail.Medias
	if medias == nil {
		medias = []entity.Media{}
	}
	return &TweetDetail{
		ID:           detail.ID,
		UserID:       detail.UserID,
		Type:         int(detail.Type),
		Audience:     int(detail.Audience),
		Content:      detail.Content,
		ParentID:     parentID,
		Hashtags:     hashtags,
		Mentions:     mentions,
		Medias:       medias,
		Bookmarks:    detail.Bookmarks,
		Likes:        detail.Likes,
		RetweetCount: detail.RetweetCount,
		CommentCount: detail.CommentCount,
		QuoteCount:   detail.QuoteCount,
		GuestViews:   detail.GuestViews,
		UserViews:    detail.UserViews,
		CreatedAt:    detail.CreatedAt,
		UpdatedAt:    detail.UpdatedAt,
	}
}

type MediaUploadResponse struct {
	Message string         `json:"message"`
	Result  []entity.Media `json:"result"`
}
