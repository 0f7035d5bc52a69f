package entity

import (
	"database/sql"
	"time"
)

type TweetType int

const (
	TweetTypeTweet TweetType = iota
	TweetTypeRetweet
	TweetTypeComment
	TweetTypeQuoteTweet
)

type TweetAudience int

const (
	TweetAudienceEveryone TweetAudience = iota
	TweetAudienceTwitterCircle
)

type MediaType int

const (
	MediaTypeImage MediaType = iota
	MediaTypeVideo
)

type Media struct {
	URL  string    `json:"url"`
	Type MediaType `json:"type"`
}

type Tweet struct {
	ID       string
	UserID   string
	Type     TweetType
	Audience TweetAudience
	Content  string
	// ParentID is required for retweets, comments and quote tweets; null for
	// root tweets.
	ParentID sql.NullString
	Medias   []Media

	GuestViews uint64
	UserViews  uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Hashtag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// MentionedUser is the projection of a mentioned user embedded in a tweet
// detail response.
type MentionedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TweetDetail is a tweet joined with its hashtags, mention projections and
// engagement counters.
type TweetDetail struct {
	Tweet
	Hashtags     []Hashtag
	Mentions     []MentionedUser
	Bookmarks    uint64
	Likes        uint64
	RetweetCount uint64
	CommentCount uint64
	QuoteCount   uint64
}
