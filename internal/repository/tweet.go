package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Tweet, error)
	Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Tweet, error)
	DeleteOwned(ctx context.Context, id, ownerID uint) (bool, error)
	Like(ctx context.Context, userID, tweetID uint) error
	Unlike(ctx context.Context, userID, tweetID uint) (bool, error)
}

// tweetRepository implements TweetRepository
type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	err := r.db.WithContext(ctx).Create(tweet).Error
	if isForeignKeyViolation(err) {
		return gorm.ErrRecordNotFound
	}
	return err
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Tweet, error) {
	var tweet models.Tweet
	err := r.applyFeedDetails(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Preload("Likes").
		Preload("Attachments").
		First(&tweet, id).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Feed returns tweets ordered for the given viewer: tweets from followed
// authors first, then by popularity, with id as a stable tiebreaker. The
// ordering is pushed down to the database so pagination stays consistent.
func (r *tweetRepository) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	err := r.applyFeedDetails(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Preload("Likes").
		Preload("Attachments").
		Order("is_followed DESC, likes_count DESC, tweets.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&tweets).Error
	return tweets, err
}

// applyFeedDetails adds subqueries to fetch the like count and the viewer's
// follow relation to the author in a single query.
func (r *tweetRepository) applyFeedDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "tweets.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM follows WHERE follows.follower_id = ? AND follows.followed_id = tweets.user_id) as is_followed",
			viewerID)
	}

	return db.Select(selectQuery + ", false as is_followed")
}

// DeleteOwned removes the tweet only if it belongs to ownerID. Returns false
// when no row matched, which callers cannot distinguish from the tweet not
// existing at all.
func (r *tweetRepository) DeleteOwned(ctx context.Context, id, ownerID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Tweet{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *tweetRepository) Like(ctx context.Context, userID, tweetID uint) error {
	// Use INSERT ... ON CONFLICT DO NOTHING to handle race conditions
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, tweet_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, tweet_id) DO NOTHING`,
		userID, tweetID,
	).Error
	if isForeignKeyViolation(err) {
		return gorm.ErrRecordNotFound
	}
	return err
}

// Unlike hard deletes the like record and reports whether a row was removed.
func (r *tweetRepository) Unlike(ctx context.Context, userID, tweetID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
