package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeAddsWhenAbsent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewInteractionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO likes (user_id, artwork_id, created_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, artwork_id) DO NOTHING",
	)).WithArgs(uint(7), uint(42), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE artworks SET likes_count = likes_count + 1 WHERE id = $1",
	)).WithArgs(uint(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT likes_count FROM artworks WHERE id = $1",
	)).WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(5))
	mock.ExpectCommit()

	active, count, err := repo.ToggleLike(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeRemovesWhenPresent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewInteractionRepository(db)

	mock.ExpectBegin()
	// Conflict: the pair already exists, so no row is inserted.
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO likes (user_id, artwork_id, created_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, artwork_id) DO NOTHING",
	)).WithArgs(uint(7), uint(42), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM likes WHERE user_id = $1 AND artwork_id = $2",
	)).WithArgs(uint(7), uint(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE artworks SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1",
	)).WithArgs(uint(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT likes_count FROM artworks WHERE id = $1",
	)).WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(4))
	mock.ExpectCommit()

	active, count, err := repo.ToggleLike(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeSkipsDecrementWhenRowAlreadyGone(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewInteractionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO likes (user_id, artwork_id, created_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, artwork_id) DO NOTHING",
	)).WithArgs(uint(7), uint(42), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// A concurrent toggle deleted the row first: no decrement happens.
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM likes WHERE user_id = $1 AND artwork_id = $2",
	)).WithArgs(uint(7), uint(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT likes_count FROM artworks WHERE id = $1",
	)).WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(4))
	mock.ExpectCommit()

	active, count, err := repo.ToggleLike(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleSaveAddsWhenAbsent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewInteractionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO saves (user_id, artwork_id, created_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, artwork_id) DO NOTHING",
	)).WithArgs(uint(3), uint(9), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM saves WHERE artwork_id = $1",
	)).WithArgs(uint(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectCommit()

	active, count, err := repo.ToggleSave(context.Background(), 3, 9)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleFollowRemovesWhenPresent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewInteractionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO follows (follower_id, followee_id, created_at) VALUES ($1, $2, $3) ON CONFLICT (follower_id, followee_id) DO NOTHING",
	)).WithArgs(uint(5), uint(8), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
	)).WithArgs(uint(5), uint(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM follows WHERE followee_id = $1",
	)).WithArgs(uint(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(99))
	mock.ExpectCommit()

	active, count, err := repo.ToggleFollow(context.Background(), 5, 8)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, 99, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeRollsBackOnCounterError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewInteractionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO likes (user_id, artwork_id, created_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, artwork_id) DO NOTHING",
	)).WithArgs(uint(7), uint(42), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE artworks SET likes_count = likes_count + 1 WHERE id = $1",
	)).WithArgs(uint(42)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, _, err := repo.ToggleLike(context.Background(), 7, 42)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
