package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chirper-app/chirper/app/apperror"
	httpdto "github.com/chirper-app/chirper/app/dto/http"
	"github.com/chirper-app/chirper/app/entity"
	"github.com/chirper-app/chirper/app/service"
)

type fakeTweetRepo struct {
	tweets     map[string]*entity.Tweet
	hashtags   map[string][]string
	mentions   map[string][]string
	guestViews uint64
	userViews  uint64
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{
		tweets:   map[string]*entity.Tweet{},
		hashtags: map[string][]string{},
		mentions: map[string][]string{},
	}
}

func (r *fakeTweetRepo) Create(_ context.Context, tweet *entity.Tweet) error {
	r.tweets[tweet.ID] = tweet
	return nil
}

func (r *fakeTweetRepo) LinkHashtag(_ context.Context, tweetID, hashtagID string) error {
	r.hashtags[tweetID] = append(r.hashtags[tweetID], hashtagID)
	return nil
}

func (r *fakeTweetRepo) LinkMention(_ context.Context, tweetID, userID string) error {
	r.mentions[tweetID] = append(r.mentions[tweetID], userID)
	return nil
}

func (r *fakeTweetRepo) FindByID(_ context.Context, id string) (*entity.Tweet, error) {
	return r.tweets[id], nil
}

func (r *fakeTweetRepo) FindDetailByID(_ context.Context, id string) (*entity.TweetDetail, error) {
	tweet := r.tweets[id]
	if tweet == nil {
		return nil, nil
	}
	return &entity.TweetDetail{Tweet: *tweet}, nil
}

func (r *fakeTweetRepo) FindMentions(_ context.Context, tweetID string) ([]entity.MentionedUser, error) {
	var out []entity.MentionedUser
	for _, id := range r.mentions[tweetID] {
		out = append(out, entity.MentionedUser{ID: id})
	}
	return out, nil
}

func (r *fakeTweetRepo) IncrementViews(_ context.Context, _ string, byUser bool) (uint64, uint64, time.Time, error) {
	if byUser {
		r.userViews++
	} else {
		r.guestViews++
	}
	return r.guestViews, r.userViews, time.Now(), nil
}

type fakeHashtagRepo struct {
	byName map[string]*entity.Hashtag
}

func (r *fakeHashtagRepo) Upsert(_ context.Context, name string) (*entity.Hashtag, error) {
	if r.byName == nil {
		r.byName = map[string]*entity.Hashtag{}
	}
	if tag, ok := r.byName[name]; ok {
		return tag, nil
	}
	tag := &entity.Hashtag{ID: "tag-" + name, Name: name, CreatedAt: time.Now()}
	r.byName[name] = tag
	return tag, nil
}

func (r *fakeHashtagRepo) FindByTweetID(_ context.Context, _ string) ([]entity.Hashtag, error) {
	var out []entity.Hashtag
	for _, tag := range r.byName {
		out = append(out, *tag)
	}
	return out, nil
}

type fakeUserFinder struct {
	users map[string]*entity.User
}

func (r *fakeUserFinder) FindByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func TestTweetService_CreateRootTweetWithHashtags(t *testing.T) {
	tweetRepo := newFakeTweetRepo()
	hashtagRepo := &fakeHashtagRepo{}
	svc := service.NewTweetService(tweetRepo, hashtagRepo, &fakeUserFinder{})

	detail, err := svc.Create(context.Background(), "user-1", &httpdto.CreateTweetRequest{
		Type:     int(entity.TweetTypeTweet),
		Audience: int(entity.TweetAudienceEveryone),
		Content:  "hello #go",
		Hashtags: []string{"go", "golang"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if detail.UserID != "user-1" {
		t.Fatalf("expected user-1, got %s", detail.UserID)
	}
	if len(detail.Hashtags) != 2 {
		t.Fatalf("expected 2 hashtags, got %d", len(detail.Hashtags))
	}
	if len(tweetRepo.hashtags[detail.ID]) != 2 {
		t.Fatalf("expected 2 hashtag links, got %d", len(tweetRepo.hashtags[detail.ID]))
	}
}

func TestTweetService_CreateCommentRequiresParent(t *testing.T) {
	svc := service.NewTweetService(newFakeTweetRepo(), &fakeHashtagRepo{}, &fakeUserFinder{})

	_, err := svc.Create(context.Background(), "user-1", &httpdto.CreateTweetRequest{
		Type:     int(entity.TweetTypeComment),
		Audience: int(entity.TweetAudienceEveryone),
		Content:  "reply",
		ParentID: "11111111-1111-1111-1111-111111111111",
	})

	var statusErr *apperror.StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != 404 {
		t.Fatalf("expected 404 for missing parent, got %v", err)
	}
}

func TestTweetService_CreateRejectsUnknownMention(t *testing.T) {
	svc := service.NewTweetService(newFakeTweetRepo(), &fakeHashtagRepo{}, &fakeUserFinder{})

	_, err := svc.Create(context.Background(), "user-1", &httpdto.CreateTweetRequest{
		Type:     int(entity.TweetTypeTweet),
		Audience: int(entity.TweetAudienceEveryone),
		Content:  "hi",
		Mentions: []string{"22222222-2222-2222-2222-222222222222"},
	})

	var validationErr *apperror.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validationErr.Errors["mentions"] == "" {
		t.Fatal("expected a mentions field error")
	}
}

func TestTweetService_GetCircleTweetRequiresViewer(t *testing.T) {
	tweetRepo := newFakeTweetRepo()
	tweetRepo.tweets["t-1"] = &entity.Tweet{
		ID:       "t-1",
		UserID:   "user-1",
		Audience: entity.TweetAudienceTwitterCircle,
	}
	svc := service.NewTweetService(tweetRepo, &fakeHashtagRepo{}, &fakeUserFinder{})

	_, err := svc.Get(context.Background(), "t-1", nil)

	var statusErr *apperror.StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != 401 {
		t.Fatalf("expected 401 for anonymous circle access, got %v", err)
	}

	claims := &service.TokenClaims{UserID: "user-2", Verify: entity.VerifyStatusVerified}
	if _, err := svc.Get(context.Background(), "t-1", claims); err != nil {
		t.Fatalf("authenticated get failed: %v", err)
	}
}

func TestTweetService_GetCountsGuestAndUserViews(t *testing.T) {
	tweetRepo := newFakeTweetRepo()
	tweetRepo.tweets["t-1"] = &entity.Tweet{ID: "t-1", UserID: "user-1"}
	svc := service.NewTweetService(tweetRepo, &fakeHashtagRepo{}, &fakeUserFinder{})

	detail, err := svc.Get(context.Background(), "t-1", nil)
	if err != nil {
		t.Fatalf("guest get failed: %v", err)
	}
	if detail.GuestViews != 1 || detail.UserViews != 0 {
		t.Fatalf("expected guest_views=1 user_views=0, got %d/%d", detail.GuestViews, detail.UserViews)
	}

	claims := &service.TokenClaims{UserID: "user-2"}
	detail, err = svc.Get(context.Background(), "t-1", claims)
	if err != nil {
		t.Fatalf("user get failed: %v", err)
	}
	if detail.GuestViews != 1 || detail.UserViews != 1 {
		t.Fatalf("expected guest_views=1 user_views=1, got %d/%d", detail.GuestViews, detail.UserViews)
	}
}

func TestTweetService_GetMissingTweet(t *testing.T) {
	svc := service.NewTweetService(newFakeTweetRepo(), &fakeHashtagRepo{}, &fakeUserFinder{})

	_, err := svc.Get(context.Background(), "nope", nil)

	var statusErr *apperror.StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}
