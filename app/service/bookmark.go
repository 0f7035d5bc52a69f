package service

import (
	"context"

	"github.com/chirper-app/chirper/app/apperror"
	"github.com/chirper-app/chirper/app/entity"
)

const (
	MsgBookmarkSuccess   = "Bookmark tweet successfully"
	MsgUnbookmarkSuccess = "Unbookmark tweet successfully"
	MsgLikeSuccess       = "Like tweet successfully"
	MsgUnlikeSuccess     = "Unlike tweet successfully"
)

// pairRepository is the shape shared by the bookmark and like stores: an
// atomic insert-if-absent and an idempotent delete.
type pairRepository interface {
	Create(ctx context.Context, userID, tweetID string) (bool, error)
	Delete(ctx context.Context, userID, tweetID string) (int64, error)
}

type tweetFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Tweet, error)
}

type BookmarkService struct {
	bookmarkRepo pairRepository
	likeRepo     pairRepository
	tweetRepo    tweetFinder
}

func NewBookmarkService(bookmarkRepo, likeRepo pairRepository, tweetRepo tweetFinder) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		likeRepo:     likeRepo,
		tweetRepo:    tweetRepo,
	}
}

func (s *BookmarkService) requireTweet(ctx context.Context, tweetID string) error {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet == nil {
		return apperror.NotFound(msgTweetNotFound)
	}
	return nil
}

// Bookmark is idempotent: an already-present pair is still success.
func (s *BookmarkService) Bookmark(ctx context.Context, userID, tweetID string) error {
	if err := s.requireTweet(ctx, tweetID); err != nil {
		return err
	}
	_, err := s.bookmarkRepo.Create(ctx, userID, tweetID)
	return err
}

func (s *BookmarkService) Unbookmark(ctx context.Context, userID, tweetID string) error {
	_, err := s.bookmarkRepo.Delete(ctx, userID, tweetID)
	return err
}

func (s *BookmarkService) Like(ctx context.Context, userID, tweetID string) error {
	if err := s.requireTweet(ctx, tweetID); err != nil {
		return err
	}
	_, err := s.likeRepo.Create(ctx, userID, tweetID)
	return err
}

func (s *BookmarkService) Unlike(ctx context.Context, userID, tweetID string) error {
	_, err := s.likeRepo.Delete(ctx, userID, tweetID)
	return err
}
