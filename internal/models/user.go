// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Callers authenticate with an opaque
// api key; only a keyed digest of that key is ever stored.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Login        string    `gorm:"size:50;uniqueIndex;not null" json:"login"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	Surname      string    `gorm:"size:50;not null" json:"surname"`
	APIKeyDigest string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName is the display form used in feed and profile payloads.
func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}
