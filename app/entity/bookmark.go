package entity

import "time"

type Bookmark struct {
	ID        uint64
	UserID    string
	TweetID   string
	CreatedAt time.Time
}

type Like struct {
	ID        uint64
	UserID    string
	TweetID   string
	CreatedAt time.Time
}
