package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"artspace/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentBumpsCounterInSameTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WithArgs(uint(42), uint(7), "love the linework", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE artworks SET comments_count = comments_count + 1 WHERE id = $1",
	)).WithArgs(uint(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &models.Comment{
		ArtworkID: 42,
		UserID:    7,
		Body:      "love the linework",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentByArtworkIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`ROW_NUMBER\(\) OVER \(PARTITION BY c\.artwork_id ORDER BY c\.created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "artwork_id", "user_id", "body", "created_at"}).
			AddRow(3, 10, 5, "newest on 10", now).
			AddRow(2, 10, 6, "older on 10", now.Add(-time.Minute)).
			AddRow(9, 11, 5, "only one on 11", now))

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(5, "alice").
			AddRow(6, "bob"))

	byArtwork, err := repo.RecentByArtworkIDs(context.Background(), []uint{10, 11}, 2)
	require.NoError(t, err)

	require.Len(t, byArtwork[10], 2)
	assert.Equal(t, "newest on 10", byArtwork[10][0].Body)
	assert.Equal(t, "alice", byArtwork[10][0].User.Username)
	assert.Equal(t, "bob", byArtwork[10][1].User.Username)
	require.Len(t, byArtwork[11], 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentByArtworkIDsEmptyInput(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewCommentRepository(db)

	byArtwork, err := repo.RecentByArtworkIDs(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.Empty(t, byArtwork)
}
