package service

import (
	"context"
	"errors"
	"strings"

	"artspace/internal/models"
	"artspace/internal/repository"
	"artspace/internal/validation"
)

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	DisplayName string
	Bio         string
	Age         *int
	AvatarURL   string
}

// UserService owns profile reads and edits. Follower and following
// counts are always computed live from the follows table.
type UserService struct {
	users        repository.UserRepository
	interactions repository.InteractionRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, interactions repository.InteractionRepository) *UserService {
	return &UserService{users: users, interactions: interactions}
}

// ProfileByUsername loads a public profile with live counts and the
// viewer's follow state.
func (s *UserService) ProfileByUsername(ctx context.Context, username string, viewerID uint) (*models.ProfileView, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, models.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("user not found", nil)
	}
	return s.profile(ctx, user, viewerID)
}

// ProfileByID loads a public profile by ID.
func (s *UserService) ProfileByID(ctx context.Context, userID, viewerID uint) (*models.ProfileView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("user not found", nil)
	}
	return s.profile(ctx, user, viewerID)
}

func (s *UserService) profile(ctx context.Context, user *models.User, viewerID uint) (*models.ProfileView, error) {
	followers, err := s.interactions.FollowerCount(ctx, user.ID)
	if err != nil {
		return nil, models.NewInternalError("failed to count followers", err)
	}
	following, err := s.interactions.FollowingCount(ctx, user.ID)
	if err != nil {
		return nil, models.NewInternalError("failed to count following", err)
	}
	artworks, err := s.users.CountArtworks(ctx, user.ID)
	if err != nil {
		return nil, models.NewInternalError("failed to count artworks", err)
	}

	viewerFollows := false
	if viewerID != 0 && viewerID != user.ID {
		viewerFollows, err = s.interactions.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, models.NewInternalError("failed to check follow state", err)
		}
	}

	return &models.ProfileView{
		ID:             user.ID,
		Username:       user.Username,
		DisplayName:    user.DisplayOrUsername(),
		Bio:            user.Bio,
		Age:            user.Age,
		AvatarURL:      user.AvatarURL,
		FollowerCount:  followers,
		FollowingCount: following,
		ArtworkCount:   artworks,
		ViewerFollows:  viewerFollows,
		CreatedAt:      user.CreatedAt,
	}, nil
}

// UpdateProfile edits the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.ProfileView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("user not found", nil)
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if len(displayName) > 80 {
		return nil, models.NewValidationError("display name must be at most 80 characters", nil)
	}
	if len(input.Bio) > 500 {
		return nil, models.NewValidationError("bio must be at most 500 characters", nil)
	}

	if input.Age != nil && (*input.Age < 13 || *input.Age > 120) {
		return nil, models.NewValidationError("age must be between 13 and 120", nil)
	}

	user.DisplayName = displayName
	user.Bio = strings.TrimSpace(input.Bio)
	if input.Age != nil {
		user.Age = input.Age
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewValidationError("that value is already taken", err)
		}
		return nil, models.NewInternalError("failed to update profile", err)
	}
	return s.profile(ctx, user, 0)
}

// SetAdmin grants or revokes admin rights on an account.
func (s *UserService) SetAdmin(ctx context.Context, userID uint, isAdmin bool) (*models.ProfileView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("user not found", nil)
	}

	user.IsAdmin = isAdmin
	if err := s.users.Update(ctx, user); err != nil {
		return nil, models.NewInternalError("failed to update user role", err)
	}
	return s.profile(ctx, user, 0)
}

// Register creates a new account after validating the inputs. The
// caller hashes the password; this layer never sees plaintext.
func (s *UserService) Register(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error(), nil)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error(), nil)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewValidationError("username or email is already taken", err)
		}
		return nil, models.NewInternalError("failed to create account", err)
	}
	return user, nil
}
