package models

import "time"

// Tweet is a post owned by exactly one user. Content is immutable after
// creation; attachments are Media rows claimed at create time.
type Tweet struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	Author      User    `gorm:"foreignKey:UserID" json:"author"`
	Content     string  `gorm:"size:500;not null" json:"content"`
	Attachments []Media `gorm:"foreignKey:TweetID" json:"attachments"`
	Likes       []Like  `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE" json:"likes"`
	// LikesCount is not persisted; computed at query time.
	LikesCount int `gorm:"->" json:"likes_count"`
	// IsFollowed indicates whether the requesting user follows the author (computed).
	IsFollowed bool      `gorm:"->" json:"is_followed"`
	CreatedAt  time.Time `json:"created_at"`
}
