package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestFollowRepository_Follow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO follows (follower_id, followed_id, created_at)`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Follow(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Follow_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	// ON CONFLICT DO NOTHING absorbs the duplicate: zero rows, no error.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO follows (follower_id, followed_id, created_at)`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Follow(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Unfollow_Absent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "follows" WHERE follower_id = $1 AND followed_id = $2`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Unfollow(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Following(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "users".* FROM "users" JOIN follows ON follows.followed_id = users.id WHERE follows.follower_id = $1 ORDER BY users.id ASC`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "name", "surname"}).
			AddRow(2, "bob", "Bob", "Baker").
			AddRow(3, "carol", "Carol", "Chu"))

	users, err := repo.Following(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Bob Baker", users[0].FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}
