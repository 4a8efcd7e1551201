package models

import "time"

// Follow is a directed edge between users: the follower's feed surfaces the
// followed user's tweets preferentially. Unique per ordered pair.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"follower_user_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"followed_user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
