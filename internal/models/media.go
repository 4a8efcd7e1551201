package models

import "time"

// Media is an uploaded file on disk. TweetID is set once a tweet claims the
// upload as an attachment; until then the row is an orphan owned only by the
// uploader.
type Media struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Path       string    `gorm:"not null" json:"path"`
	UploaderID uint      `gorm:"not null;index" json:"uploader_id"`
	TweetID    *uint     `gorm:"index" json:"tweet_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
