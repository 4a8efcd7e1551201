package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph operations
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID uint) error
	Unfollow(ctx context.Context, followerID, followedID uint) error
	Following(ctx context.Context, userID uint) ([]*models.User, error)
	Followers(ctx context.Context, userID uint) ([]*models.User, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followedID uint) error {
	// Use INSERT ... ON CONFLICT DO NOTHING to handle race conditions
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followed_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (follower_id, followed_id) DO NOTHING`,
		followerID, followedID,
	).Error
	if isForeignKeyViolation(err) {
		return gorm.ErrRecordNotFound
	}
	return err
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID uint) error {
	// Deleting an absent edge is a no-op on purpose.
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

func (r *followRepository) Following(ctx context.Context, userID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}
