package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/chirper-app/chirper/app/apperror"
	"github.com/chirper-app/chirper/app/entity"
	"github.com/chirper-app/chirper/app/service"
)

type fakePairRepo struct {
	edges map[string]bool
}

func newFakePairRepo() *fakePairRepo {
	return &fakePairRepo{edges: map[string]bool{}}
}

func (r *fakePairRepo) Create(_ context.Context, userID, tweetID string) (bool, error) {
	key := userID + "/" + tweetID
	if r.edges[key] {
		return false, nil
	}
	r.edges[key] = true
	return true, nil
}

func (r *fakePairRepo) Delete(_ context.Context, userID, tweetID string) (int64, error) {
	key := userID + "/" + tweetID
	if !r.edges[key] {
		return 0, nil
	}
	delete(r.edges, key)
	return 1, nil
}

func TestBookmarkService_BookmarkIsIdempotent(t *testing.T) {
	tweetRepo := newFakeTweetRepo()
	tweetRepo.tweets["t-1"] = &entity.Tweet{ID: "t-1"}
	bookmarks := newFakePairRepo()
	svc := service.NewBookmarkService(bookmarks, newFakePairRepo(), tweetRepo)

	for i := 0; i < 3; i++ {
		if err := svc.Bookmark(context.Background(), "user-1", "t-1"); err != nil {
			t.Fatalf("bookmark %d failed: %v", i, err)
		}
	}
	if len(bookmarks.edges) != 1 {
		t.Fatalf("expected a single edge, got %d", len(bookmarks.edges))
	}
}

func TestBookmarkService_BookmarkMissingTweet(t *testing.T) {
	svc := service.NewBookmarkService(newFakePairRepo(), newFakePairRepo(), newFakeTweetRepo())

	err := svc.Bookmark(context.Background(), "user-1", "nope")

	var statusErr *apperror.StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestBookmarkService_UnbookmarkAbsentEdgeSucceeds(t *testing.T) {
	svc := service.NewBookmarkService(newFakePairRepo(), newFakePairRepo(), newFakeTweetRepo())

	if err := svc.Unbookmark(context.Background(), "user-1", "t-1"); err != nil {
		t.Fatalf("unbookmark failed: %v", err)
	}
}

func TestBookmarkService_LikeUnlikeRoundTrip(t *testing.T) {
	tweetRepo := newFakeTweetRepo()
	tweetRepo.tweets["t-1"] = &entity.Tweet{ID: "t-1"}
	likes := newFakePairRepo()
	svc := service.NewBookmarkService(newFakePairRepo(), likes, tweetRepo)

	if err := svc.Like(context.Background(), "user-1", "t-1"); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if len(likes.edges) != 1 {
		t.Fatalf("expected a single like edge, got %d", len(likes.edges))
	}
	if err := svc.Unlike(context.Background(), "user-1", "t-1"); err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if len(likes.edges) != 0 {
		t.Fatalf("expected like edge removed, got %d", len(likes.edges))
	}
}
