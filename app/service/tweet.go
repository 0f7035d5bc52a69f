package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/chirper-app/chirper/app/apperror"
	httpdto "github.com/chirper-app/chirper/app/dto/http"
	"github.com/chirper-app/chirper/app/entity"

	"github.com/google/uuid"
)

const (
	MsgCreateTweetSuccess = "Create tweet successfully"
	MsgGetTweetSuccess    = "Get tweet successfully"

	msgTweetNotFound       = "Tweet not found"
	msgParentTweetNotFound = "Parent tweet not found"
	msgMentionedNotFound   = "Mentioned user not found"
	msgAccessTokenRequired = "Access token is required"
)

type tweetRepository interface {
	Create(ctx context.Context, tweet *entity.Tweet) error
	LinkHashtag(ctx context.Context, tweetID, hashtagID string) error
	LinkMention(ctx context.Context, tweetID, userID string) error
	FindByID(ctx context.Context, id string) (*entity.Tweet, error)
	FindDetailByID(ctx context.Context, id string) (*entity.TweetDetail, error)
	FindMentions(ctx context.Context, tweetID string) ([]entity.MentionedUser, error)
	IncrementViews(ctx context.Context, tweetID string, byUser bool) (uint64, uint64, time.Time, error)
}

type hashtagRepository interface {
	Upsert(ctx context.Context, name string) (*entity.Hashtag, error)
	FindByTweetID(ctx context.Context, tweetID string) ([]entity.Hashtag, error)
}

type mentionedUserFinder interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

type TweetService struct {
	tweetRepo   tweetRepository
	hashtagRepo hashtagRepository
	userRepo    mentionedUserFinder
}

func NewTweetService(tweetRepo tweetRepository, hashtagRepo hashtagRepository, userRepo mentionedUserFinder) *TweetService {
	return &TweetService{
		tweetRepo:   tweetRepo,
		hashtagRepo: hashtagRepo,
		userRepo:    userRepo,
	}
}

func (s *TweetService) Create(ctx context.Context, userID string, req *httpdto.CreateTweetRequest) (*entity.TweetDetail, error) {
	if req.Type != int(entity.TweetTypeTweet) {
		parent, err := s.tweetRepo.FindByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NotFound(msgParentTweetNotFound)
		}
	}

	for _, mentionID := range req.Mentions {
		mentioned, err := s.userRepo.FindByID(ctx, mentionID)
		if err != nil {
			return nil, err
		}
		if mentioned == nil {
			return nil, apperror.NewValidation(map[string]string{"mentions": msgMentionedNotFound})
		}
	}

	now := time.Now()
	tweet := &entity.Tweet{
		ID:       uuid.New().String(),
		UserID:   userID,
		Type:     entity.TweetType(req.Type),
		Audience: entity.TweetAudience(req.Audience),
		Content:  req.Content,
		Medias:   req.Medias,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.ParentID != "" {
		tweet.ParentID = sql.NullString{String: req.ParentID, Valid: true}
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}

	// Hashtags are upserted by name on first use and linked to the tweet.
	for _, name := range req.Hashtags {
		tag, err := s.hashtagRepo.Upsert(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := s.tweetRepo.LinkHashtag(ctx, tweet.ID, tag.ID); err != nil {
			return nil, err
		}
	}
	for _, mentionID := range req.Mentions {
		if err := s.tweetRepo.LinkMention(ctx, tweet.ID, mentionID); err != nil {
			return nil, err
		}
	}

	return s.loadDetail(ctx, tweet.ID)
}

// Get returns the tweet joined with hashtags, mentions and counters, gates
// TwitterCircle-audience tweets behind authentication, and bumps the guest or
// user view counter depending on the caller.
func (s *TweetService) Get(ctx context.Context, tweetID string, viewer *TokenClaims) (*entity.TweetDetail, error) {
	detail, err := s.loadDetail(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	if detail.Audience == entity.TweetAudienceTwitterCircle && viewer == nil {
		return nil, apperror.Unauthorized(msgAccessTokenRequired)
	}

	guestViews, userViews, updatedAt, err := s.tweetRepo.IncrementViews(ctx, tweetID, viewer != nil)
	if err != nil {
		return nil, err
	}
	detail.GuestViews = guestViews
	detail.UserViews = userViews
	detail.UpdatedAt = updatedAt

	return detail, nil
}

func (s *TweetService) loadDetail(ctx context.Context, tweetID string) (*entity.TweetDetail, error) {
	detail, err := s.tweetRepo.FindDetailByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperror.NotFound(msgTweetNotFound)
	}

	if detail.Hashtags, err = s.hashtagRepo.FindByTweetID(ctx, tweetID); err != nil {
		return nil, err
	}
	if detail.Mentions, err = s.tweetRepo.FindMentions(ctx, tweetID); err != nil {
		return nil, err
	}
	return detail, nil
}
