package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/chirper-app/chirper/app/entity"
	"github.com/chirper-app/chirper/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestTweetRepository_CreateMarshalsMedias(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewTweetRepository(db)

	now := time.Now()
	tweet := &entity.Tweet{
		ID:       "t-1",
		UserID:   "user-1",
		Type:     entity.TweetTypeTweet,
		Audience: entity.TweetAudienceEveryone,
		Content:  "hello",
		Medias: []entity.Media{
			{URL: "http://localhost:4000/static/image/a.jpg", Type: entity.MediaTypeImage},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(`(?s)INSERT INTO tweets`).
		WithArgs("t-1", "user-1", entity.TweetTypeTweet, entity.TweetAudienceEveryone, "hello",
			tweet.ParentID, []byte(`[{"url":"http://localhost:4000/static/image/a.jpg","type":0}]`), now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), tweet); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTweetRepository_FindByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewTweetRepository(db)

	mock.ExpectQuery(`(?s)SELECT id, user_id, type, audience, content, parent_id, medias_json, guest_views, user_views, created_at, updated_at\s+FROM tweets WHERE id = \?`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	tweet, err := repo.FindByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if tweet != nil {
		t.Fatal("expected nil for a missing tweet")
	}
}

func TestTweetRepository_IncrementViews(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewTweetRepository(db)

	mock.ExpectExec(`UPDATE tweets SET user_views = user_views \+ 1, updated_at = \? WHERE id = \?`).
		WithArgs(sqlmock.AnyArg(), "t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT guest_views, user_views FROM tweets WHERE id = \?`).
		WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"guest_views", "user_views"}).AddRow(4, 8))

	guestViews, userViews, updatedAt, err := repo.IncrementViews(context.Background(), "t-1", true)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if guestViews != 4 || userViews != 8 {
		t.Fatalf("expected 4/8, got %d/%d", guestViews, userViews)
	}
	if updatedAt.IsZero() {
		t.Fatal("expected a fresh updated_at")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFollowerRepository_CreateReportsExistingEdge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewFollowerRepository(db)

	mock.ExpectExec(`(?s)INSERT IGNORE INTO followers`).
		WithArgs("user-1", "user-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`(?s)INSERT IGNORE INTO followers`).
		WithArgs("user-1", "user-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Create(context.Background(), "user-1", "user-2")
	if err != nil || !created {
		t.Fatalf("expected first insert to create, got created=%v err=%v", created, err)
	}
	created, err = repo.Create(context.Background(), "user-1", "user-2")
	if err != nil || created {
		t.Fatalf("expected second insert to be ignored, got created=%v err=%v", created, err)
	}
}

func TestHashtagRepository_UpsertResolvesWinner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewHashtagRepository(db)

	now := time.Now()
	// The insert loses against an existing row; the select still resolves
	// the earlier winner.
	mock.ExpectExec(`(?s)INSERT IGNORE INTO hashtags`).
		WithArgs(sqlmock.AnyArg(), "golang", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT id, name, created_at FROM hashtags WHERE name = \?`).
		WithArgs("golang").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("tag-1", "golang", now))

	tag, err := repo.Upsert(context.Background(), "golang")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if tag.ID != "tag-1" || tag.Name != "golang" {
		t.Fatalf("unexpected tag %+v", tag)
	}
}

func TestUserRepository_FindByEmailMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(`(?s)FROM users WHERE email = \?`).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.FindByEmail(context.Background(), "missing@example.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user != nil {
		t.Fatal("expected nil for a missing user")
	}
}
