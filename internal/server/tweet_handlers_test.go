package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockTweetRepository is a mock of the TweetRepository interface
type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	args := m.Called(ctx, tweet)
	if args.Error(0) == nil {
		tweet.ID = 1
	}
	return args.Error(0)
}

func (m *MockTweetRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Tweet, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tweet), args.Error(1)
}

func (m *MockTweetRepository) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Tweet, error) {
	args := m.Called(ctx, viewerID, limit, offset)
	return args.Get(0).([]*models.Tweet), args.Error(1)
}

func (m *MockTweetRepository) DeleteOwned(ctx context.Context, id, ownerID uint) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTweetRepository) Like(ctx context.Context, userID, tweetID uint) error {
	args := m.Called(ctx, userID, tweetID)
	return args.Error(0)
}

func (m *MockTweetRepository) Unlike(ctx context.Context, userID, tweetID uint) (bool, error) {
	args := m.Called(ctx, userID, tweetID)
	return args.Bool(0), args.Error(1)
}

// MockMediaRepository is a mock of the MediaRepository interface
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Create(ctx context.Context, media *models.Media) error {
	args := m.Called(ctx, media)
	if args.Error(0) == nil {
		media.ID = 1
	}
	return args.Error(0)
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id uint) (*models.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaRepository) Claim(ctx context.Context, tweetID uint, mediaIDs []uint) error {
	args := m.Called(ctx, tweetID, mediaIDs)
	return args.Error(0)
}

func newTweetTestApp(tweetRepo *MockTweetRepository, mediaRepo *MockMediaRepository) (*fiber.App, *Server) {
	s := &Server{
		tweetService: service.NewTweetService(tweetRepo, mediaRepo),
		feedService:  service.NewFeedService(tweetRepo),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	return app, s
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestCreateTweet(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(tweets *MockTweetRepository, medias *MockMediaRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"tweet_data": "hello world", "tweet_media_ids": []}`,
			mockSetup: func(tweets *MockTweetRepository, medias *MockMediaRepository) {
				tweets.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "With Media",
			body: `{"tweet_data": "with pic", "tweet_media_ids": [3]}`,
			mockSetup: func(tweets *MockTweetRepository, medias *MockMediaRepository) {
				tweets.On("Create", mock.Anything, mock.Anything).Return(nil)
				medias.On("Claim", mock.Anything, uint(1), []uint{3}).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Content Too Long",
			body:           `{"tweet_data": "` + strings.Repeat("a", 501) + `"}`,
			mockSetup:      func(*MockTweetRepository, *MockMediaRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed Body",
			body:           `{not json`,
			mockSetup:      func(*MockTweetRepository, *MockMediaRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tweets := new(MockTweetRepository)
			medias := new(MockMediaRepository)
			tt.mockSetup(tweets, medias)
			app, s := newTweetTestApp(tweets, medias)
			app.Post("/api/tweets", s.CreateTweet)

			req := httptest.NewRequest(http.MethodPost, "/api/tweets", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				body := decodeBody(t, resp)
				assert.Equal(t, "true", body["result"])
				assert.Equal(t, float64(1), body["tweet_id"])
			}
		})
	}
}

func TestGetFeed(t *testing.T) {
	tweets := new(MockTweetRepository)
	tweets.On("Feed", mock.Anything, uint(1), 20, 0).Return([]*models.Tweet{
		{
			ID:         2,
			Content:    "from a followed author",
			Author:     models.User{ID: 10, Name: "Fay", Surname: "Fox"},
			Likes:      []models.Like{{ID: 1, UserID: 1, TweetID: 2}},
			LikesCount: 1,
			IsFollowed: true,
		},
		{
			ID:         1,
			Content:    "from a stranger",
			Author:     models.User{ID: 11, Name: "Sam", Surname: "Stone"},
			LikesCount: 0,
		},
	}, nil)
	app, s := newTweetTestApp(tweets, new(MockMediaRepository))
	app.Get("/api/tweets", s.GetFeed)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tweets", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "true", body["result"])
	items := body["tweets"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	assert.Equal(t, float64(2), first["id"])
	assert.Equal(t, true, first["is_subscribed"])
	author := first["author"].(map[string]any)
	assert.Equal(t, "Fay Fox", author["name"])
	assert.Equal(t, []any{float64(1)}, first["likes"])

	second := items[1].(map[string]any)
	assert.Equal(t, false, second["is_subscribed"])
}

func TestGetFeed_Pagination(t *testing.T) {
	tweets := new(MockTweetRepository)
	// A limit above the cap is clamped to 100, a negative offset becomes 0.
	tweets.On("Feed", mock.Anything, uint(1), 100, 0).Return([]*models.Tweet{}, nil)
	app, s := newTweetTestApp(tweets, new(MockMediaRepository))
	app.Get("/api/tweets", s.GetFeed)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tweets?limit=500&offset=-3", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	tweets.AssertExpectations(t)
}

func TestDeleteTweet(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockSetup      func(tweets *MockTweetRepository)
		expectedStatus int
		expectedType   string
	}{
		{
			name: "Owned",
			path: "/api/tweets/5",
			mockSetup: func(tweets *MockTweetRepository) {
				tweets.On("DeleteOwned", mock.Anything, uint(5), uint(1)).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not Owned Or Missing",
			path: "/api/tweets/5",
			mockSetup: func(tweets *MockTweetRepository) {
				tweets.On("DeleteOwned", mock.Anything, uint(5), uint(1)).Return(false, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedType:   models.ErrTypeInvalidTweetID,
		},
		{
			name:           "Bad ID",
			path:           "/api/tweets/abc",
			mockSetup:      func(*MockTweetRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tweets := new(MockTweetRepository)
			tt.mockSetup(tweets)
			app, s := newTweetTestApp(tweets, new(MockMediaRepository))
			app.Delete("/api/tweets/:id", s.DeleteTweet)

			resp, err := app.Test(httptest.NewRequest(http.MethodDelete, tt.path, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedType != "" {
				body := decodeBody(t, resp)
				assert.Equal(t, "false", body["result"])
				assert.Equal(t, tt.expectedType, body["error_type"])
			}
		})
	}
}

func TestToggleLike(t *testing.T) {
	t.Run("Adds When Absent", func(t *testing.T) {
		tweets := new(MockTweetRepository)
		tweets.On("Unlike", mock.Anything, uint(1), uint(5)).Return(false, nil)
		tweets.On("Like", mock.Anything, uint(1), uint(5)).Return(nil)
		app, s := newTweetTestApp(tweets, new(MockMediaRepository))
		app.Post("/api/tweets/:id/likes", s.ToggleLike)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/tweets/5/likes", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		tweets.AssertExpectations(t)
	})

	t.Run("Removes When Present", func(t *testing.T) {
		tweets := new(MockTweetRepository)
		tweets.On("Unlike", mock.Anything, uint(1), uint(5)).Return(true, nil)
		app, s := newTweetTestApp(tweets, new(MockMediaRepository))
		app.Post("/api/tweets/:id/likes", s.ToggleLike)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/tweets/5/likes", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		tweets.AssertNotCalled(t, "Like", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Tweet", func(t *testing.T) {
		tweets := new(MockTweetRepository)
		tweets.On("Unlike", mock.Anything, uint(1), uint(99)).Return(false, nil)
		tweets.On("Like", mock.Anything, uint(1), uint(99)).Return(gorm.ErrRecordNotFound)
		app, s := newTweetTestApp(tweets, new(MockMediaRepository))
		app.Post("/api/tweets/:id/likes", s.ToggleLike)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/tweets/99/likes", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, models.ErrTypeInvalidTweetID, body["error_type"])
	})
}
