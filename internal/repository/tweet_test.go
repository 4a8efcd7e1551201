package repository

import (
	"context"
	"regexp"
	"testing"

	"chirp/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTweetRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	tweet := &models.Tweet{UserID: 1, Content: "hello"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tweets"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, tweet)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_Feed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	// Main query carries the like-count subquery, the follow EXISTS subquery
	// and the pushed-down ordering.
	mock.ExpectQuery(`SELECT tweets\.\*, \(SELECT COUNT\(\*\) FROM likes WHERE likes\.tweet_id = tweets\.id\) as likes_count, EXISTS\(SELECT 1 FROM follows WHERE follows\.follower_id = \$1 AND follows\.followed_id = tweets\.user_id\) as is_followed FROM "tweets" ORDER BY is_followed DESC, likes_count DESC, tweets\.id ASC LIMIT \$2`).
		WithArgs(5, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "likes_count", "is_followed"}).
			AddRow(2, 10, "followed author", 3, true).
			AddRow(1, 11, "popular stranger", 9, false))

	// Preload Author
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
		WithArgs(10, 11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "surname"}).
			AddRow(10, "Fay", "Fox").
			AddRow(11, "Sam", "Stone"))

	// Preload Likes
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "likes" WHERE "likes"."tweet_id" IN ($1,$2)`)).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tweet_id"}).
			AddRow(1, 5, 2))

	// Preload Attachments
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "media" WHERE "media"."tweet_id" IN ($1,$2)`)).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "path", "tweet_id"}))

	tweets, err := repo.Feed(ctx, 5, 20, 0)
	assert.NoError(t, err)
	assert.Len(t, tweets, 2)
	assert.True(t, tweets[0].IsFollowed)
	assert.Equal(t, 3, tweets[0].LikesCount)
	assert.Equal(t, 9, tweets[1].LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_DeleteOwned(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		rowsAffected int64
		wantDeleted  bool
	}{
		{name: "Owned", rowsAffected: 1, wantDeleted: true},
		{name: "Missing or Not Owned", rowsAffected: 0, wantDeleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tweets" WHERE id = $1 AND user_id = $2`)).
				WithArgs(1, 2).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			mock.ExpectCommit()

			deleted, err := repo.DeleteOwned(ctx, 1, 2)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTweetRepository_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes (user_id, tweet_id, created_at)`)).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Like(ctx, 2, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		rowsAffected int64
		wantRemoved  bool
	}{
		{name: "Removed", rowsAffected: 1, wantRemoved: true},
		{name: "Absent", rowsAffected: 0, wantRemoved: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND tweet_id = $2`)).
				WithArgs(2, 1).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			mock.ExpectCommit()

			removed, err := repo.Unlike(ctx, 2, 1)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, removed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTweetRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT tweets\.\*`).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(ctx, 99, 0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
