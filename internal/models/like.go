package models

import "time"

// Like is one user's approval of one tweet, unique per (user, tweet) pair.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_tweet" json:"user_id"`
	TweetID   uint      `gorm:"not null;uniqueIndex:idx_like_user_tweet;index" json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`
}
