package service

import (
	"context"
	"fmt"
	"testing"

	"artspace/internal/models"
	"artspace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileByUsernameLiveCounts(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByUsernameFn = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{ID: 8, Username: username}, nil
	}
	users.countArtworksFn = func(context.Context, uint) (int64, error) { return 12, nil }

	interactions := noopInteractionRepo()
	interactions.followerCountFn = func(context.Context, uint) (int64, error) { return 150, nil }
	interactions.followingCountFn = func(context.Context, uint) (int64, error) { return 30, nil }
	interactions.isFollowingFn = func(_ context.Context, followerID, followeeID uint) (bool, error) {
		assert.Equal(t, uint(3), followerID)
		assert.Equal(t, uint(8), followeeID)
		return true, nil
	}

	s := NewUserService(users, interactions)
	profile, err := s.ProfileByUsername(context.Background(), "maya", 3)
	require.NoError(t, err)

	assert.Equal(t, int64(150), profile.FollowerCount)
	assert.Equal(t, int64(30), profile.FollowingCount)
	assert.Equal(t, int64(12), profile.ArtworkCount)
	assert.True(t, profile.ViewerFollows)
}

func TestProfileOwnViewSkipsFollowCheck(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	interactions := noopInteractionRepo()
	interactions.isFollowingFn = func(context.Context, uint, uint) (bool, error) {
		t.Fatal("follow check should not run for own profile")
		return false, nil
	}

	s := NewUserService(users, interactions)
	profile, err := s.ProfileByID(context.Background(), 8, 8)
	require.NoError(t, err)
	assert.False(t, profile.ViewerFollows)
}

func TestProfileNotFound(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) { return nil, nil }

	s := NewUserService(users, noopInteractionRepo())
	_, err := s.ProfileByUsername(context.Background(), "ghost", 0)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func TestRegisterValidatesAndNormalizes(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	var created *models.User
	users.createFn = func(_ context.Context, u *models.User) error {
		created = u
		return nil
	}

	s := NewUserService(users, noopInteractionRepo())
	_, err := s.Register(context.Background(), " maya_draws ", "Maya@Example.COM", "hash")
	require.NoError(t, err)
	assert.Equal(t, "maya_draws", created.Username)
	assert.Equal(t, "maya@example.com", created.Email)

	_, err = s.Register(context.Background(), "x", "maya@example.com", "hash")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
}

func TestRegisterMapsDuplicateToValidation(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.createFn = func(context.Context, *models.User) error {
		return fmt.Errorf("%w: users_email_key", repository.ErrDuplicate)
	}

	s := NewUserService(users, noopInteractionRepo())
	_, err := s.Register(context.Background(), "maya_draws", "maya@example.com", "hash")

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
}

func TestUpdateProfileValidation(t *testing.T) {
	t.Parallel()

	s := NewUserService(noopUserRepo(), noopInteractionRepo())

	longName := make([]byte, 81)
	for i := range longName {
		longName[i] = 'a'
	}
	_, err := s.UpdateProfile(context.Background(), 8, UpdateProfileInput{DisplayName: string(longName)})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
}
