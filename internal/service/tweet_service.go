package service

import (
	"context"
	"errors"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// MaxTweetLength is the maximum tweet content length in characters.
const MaxTweetLength = 500

// TweetService provides tweet lifecycle and like toggling.
type TweetService struct {
	tweetRepo repository.TweetRepository
	mediaRepo repository.MediaRepository
}

// NewTweetService returns a new TweetService.
func NewTweetService(tweetRepo repository.TweetRepository, mediaRepo repository.MediaRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, mediaRepo: mediaRepo}
}

// CreateTweetInput is the input for creating a tweet.
type CreateTweetInput struct {
	UserID   uint
	Content  string
	MediaIDs []uint
}

// Create validates and stores a new tweet, then claims the referenced media
// uploads for it. Media ids that do not exist or already belong to another
// tweet are ignored rather than failing the whole request.
func (s *TweetService) Create(ctx context.Context, in CreateTweetInput) (uint, error) {
	span, ctx := observability.NewSpan(ctx, "tweet.create")
	defer span.End()
	span.AddAttributes(attribute.Int("tweet.media_count", len(in.MediaIDs)))

	if len([]rune(in.Content)) > MaxTweetLength {
		return 0, models.NewValidationError("tweet content exceeds 500 characters")
	}

	tweet := &models.Tweet{
		UserID:  in.UserID,
		Content: in.Content,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		span.SetError(err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError(models.ErrTypeInvalidUserID, "user does not exist")
		}
		return 0, err
	}

	if len(in.MediaIDs) > 0 {
		if err := s.mediaRepo.Claim(ctx, tweet.ID, in.MediaIDs); err != nil {
			return 0, err
		}
	}

	return tweet.ID, nil
}

// Delete removes the tweet if it belongs to userID. A missing tweet and a
// tweet owned by someone else produce the same not-found answer so the API
// does not reveal which of the two it was.
func (s *TweetService) Delete(ctx context.Context, userID, tweetID uint) error {
	deleted, err := s.tweetRepo.DeleteOwned(ctx, tweetID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError(models.ErrTypeInvalidTweetID, "tweet does not exist or is not yours")
	}
	return nil
}

// ToggleLike flips the user's like on a tweet: removes it when present,
// otherwise adds it. The remove-then-insert order keeps the toggle atomic
// under concurrent repeats of the same request.
func (s *TweetService) ToggleLike(ctx context.Context, userID, tweetID uint) error {
	span, ctx := observability.NewSpan(ctx, "tweet.toggle_like")
	defer span.End()

	removed, err := s.tweetRepo.Unlike(ctx, userID, tweetID)
	if err != nil {
		return err
	}
	if removed {
		return nil
	}

	if err := s.tweetRepo.Like(ctx, userID, tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError(models.ErrTypeInvalidTweetID, "tweet does not exist")
		}
		return err
	}
	return nil
}
