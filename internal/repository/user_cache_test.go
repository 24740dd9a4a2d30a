package repository

import (
	"context"
	"testing"

	"artspace/internal/cache"
	"artspace/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCachedRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestUpdateAfterCachedReadKeepsPasswordHash(t *testing.T) {
	db := setupCachedRepoDB(t)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "maya", Email: "maya@example.com", PasswordHash: "$2a$10$realhash"}
	require.NoError(t, repo.Create(ctx, user))

	// First read fills the cache; the second is served from it. The
	// cached JSON never carries the hash.
	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Empty(t, cached.PasswordHash)

	cached.Bio = "ink and wash"
	require.NoError(t, repo.Update(ctx, cached))

	var persisted models.User
	require.NoError(t, db.First(&persisted, user.ID).Error)
	assert.Equal(t, "$2a$10$realhash", persisted.PasswordHash)
	assert.Equal(t, "ink and wash", persisted.Bio)
}
