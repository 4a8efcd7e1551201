package service

import (
	"context"
	"time"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FeedService assembles the ranked tweet feed for a viewer.
type FeedService struct {
	tweetRepo repository.TweetRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(tweetRepo repository.TweetRepository) *FeedService {
	return &FeedService{tweetRepo: tweetRepo}
}

// FeedItem is the wire representation of a tweet in the feed.
type FeedItem struct {
	ID           uint    `json:"id"`
	Content      string  `json:"content"`
	Attachments  []uint  `json:"attachments"`
	Author       UserRef `json:"author"`
	Likes        []uint  `json:"likes"`
	LikesCount   int     `json:"likes_count"`
	IsSubscribed bool    `json:"is_subscribed"`
}

// List returns the viewer's feed page. Tweets from followed authors come
// first, then everything else, both ranked by like count.
func (s *FeedService) List(ctx context.Context, viewerID uint, limit, offset int) ([]FeedItem, error) {
	span, ctx := observability.NewSpan(ctx, "feed.list")
	defer span.End()
	span.AddAttributes(
		attribute.Int("feed.viewer_id", int(viewerID)),
		attribute.Int("feed.limit", limit),
		attribute.Int("feed.offset", offset),
	)

	start := time.Now()
	tweets, err := s.tweetRepo.Feed(ctx, viewerID, limit, offset)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	middleware.FeedAssemblyDuration.Observe(time.Since(start).Seconds())

	items := make([]FeedItem, 0, len(tweets))
	for _, t := range tweets {
		items = append(items, toFeedItem(t))
	}
	return items, nil
}

// Get returns a single tweet rendered for the viewer.
func (s *FeedService) Get(ctx context.Context, viewerID, tweetID uint) (*FeedItem, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID, viewerID)
	if err != nil {
		return nil, models.MapNotFound(err, models.ErrTypeInvalidTweetID, "tweet does not exist")
	}
	item := toFeedItem(tweet)
	return &item, nil
}

func toFeedItem(t *models.Tweet) FeedItem {
	attachments := make([]uint, 0, len(t.Attachments))
	for _, m := range t.Attachments {
		attachments = append(attachments, m.ID)
	}
	likes := make([]uint, 0, len(t.Likes))
	for _, l := range t.Likes {
		likes = append(likes, l.UserID)
	}
	return FeedItem{
		ID:           t.ID,
		Content:      t.Content,
		Attachments:  attachments,
		Author:       UserRef{ID: t.Author.ID, Name: t.Author.FullName()},
		Likes:        likes,
		LikesCount:   t.LikesCount,
		IsSubscribed: t.IsFollowed,
	}
}
