package repository

import (
	"context"
	"testing"

	"artspace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymousGetByIDReadsThroughCache(t *testing.T) {
	db := setupCachedRepoDB(t)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Artwork{}, &models.Tag{},
		&models.Like{}, &models.Save{},
	))

	author := &models.User{Username: "maya", Email: "maya@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(author).Error)
	artwork := &models.Artwork{UserID: author.ID, Title: "Tide Study", ImageURL: "/uploads/a.jpg"}
	require.NoError(t, db.Create(artwork).Error)

	repo := NewArtworkRepository(db)
	ctx := context.Background()

	first, err := repo.GetByID(ctx, artwork.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Tide Study", first.Title)

	// A direct DB change is invisible to anonymous readers until the
	// cache entry is invalidated.
	require.NoError(t, db.Model(&models.Artwork{}).Where("id = ?", artwork.ID).
		Update("title", "Tide Study II").Error)

	cached, err := repo.GetByID(ctx, artwork.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Tide Study", cached.Title)

	// Viewer-specific reads bypass the cache entirely.
	fresh, err := repo.GetByID(ctx, artwork.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tide Study II", fresh.Title)

	// Updating through the repository invalidates the entry.
	fresh.Title = "Tide Study III"
	require.NoError(t, repo.Update(ctx, fresh))
	after, err := repo.GetByID(ctx, artwork.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Tide Study III", after.Title)
}
