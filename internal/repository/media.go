package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// MediaRepository defines the interface for media data operations
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id uint) (*models.Media, error)
	Claim(ctx context.Context, tweetID uint, mediaIDs []uint) error
}

// mediaRepository implements MediaRepository
type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepository) GetByID(ctx context.Context, id uint) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).First(&media, id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// Claim attaches unclaimed media rows to a tweet. Ids that do not exist or
// already belong to another tweet are silently skipped.
func (r *mediaRepository) Claim(ctx context.Context, tweetID uint, mediaIDs []uint) error {
	if len(mediaIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("id IN ? AND tweet_id IS NULL", mediaIDs).
		Update("tweet_id", tweetID).Error
}
