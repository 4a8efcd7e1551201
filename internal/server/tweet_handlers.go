package server

import (
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTweetRequest is the body for creating a tweet. The field names are
// part of the wire contract consumed by the bundled frontend.
type CreateTweetRequest struct {
	TweetData     string `json:"tweet_data"`
	TweetMediaIDs []uint `json:"tweet_media_ids"`
}

// CreateTweet handles POST /api/tweets
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req CreateTweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("invalid request body"))
	}

	tweetID, err := s.tweetService.Create(c.UserContext(), service.CreateTweetInput{
		UserID:   currentUserID(c),
		Content:  req.TweetData,
		MediaIDs: req.TweetMediaIDs,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"result":   "true",
		"tweet_id": tweetID,
	})
}

// GetFeed handles GET /api/tweets
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p := parsePagination(c, defaultFeedLimit)

	tweets, err := s.feedService.List(c.UserContext(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result": "true",
		"tweets": tweets,
	})
}

// GetTweet handles GET /api/tweets/:id
func (s *Server) GetTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tweet, err := s.feedService.Get(c.UserContext(), currentUserID(c), tweetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result": "true",
		"tweet":  tweet,
	})
}

// DeleteTweet handles DELETE /api/tweets/:id
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tweetService.Delete(c.UserContext(), currentUserID(c), tweetID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"result": "true"})
}

// ToggleLike handles POST /api/tweets/:id/likes
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tweetService.ToggleLike(c.UserContext(), currentUserID(c), tweetID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"result": "true"})
}
