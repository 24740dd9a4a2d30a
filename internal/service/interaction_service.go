package service

import (
	"context"
	"log/slog"

	"artspace/internal/models"
	"artspace/internal/notifications"
	"artspace/internal/observability"
	"artspace/internal/repository"
)

// InteractionService owns the like/save/follow toggles and the social
// graph reads around them.
type InteractionService struct {
	interactions repository.InteractionRepository
	artworks     repository.ArtworkRepository
	users        repository.UserRepository
	notifier     *notifications.Notifier
}

// NewInteractionService creates a new interaction service.
func NewInteractionService(
	interactions repository.InteractionRepository,
	artworks repository.ArtworkRepository,
	users repository.UserRepository,
	notifier *notifications.Notifier,
) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		artworks:     artworks,
		users:        users,
		notifier:     notifier,
	}
}

func toggleAction(active bool) string {
	if active {
		return "on"
	}
	return "off"
}

// ToggleLike flips the viewer's like on an artwork and returns the new
// state with the resulting count. Liking notifies the artwork's owner;
// unliking is silent.
func (s *InteractionService) ToggleLike(ctx context.Context, userID, artworkID uint) (*models.ToggleResult, error) {
	artwork, err := s.artworks.GetByID(ctx, artworkID, 0)
	if err != nil {
		return nil, models.NewInternalError("failed to load artwork", err)
	}
	if artwork == nil {
		return nil, models.NewNotFoundError("artwork not found", nil)
	}

	active, count, err := s.interactions.ToggleLike(ctx, userID, artworkID)
	if err != nil {
		return nil, models.NewInternalError("failed to toggle like", err)
	}
	observability.ToggleOperations.WithLabelValues("like", toggleAction(active)).Inc()

	if active && s.notifier != nil {
		if err := s.notifier.Notify(ctx, artwork.UserID, userID, models.NotificationKindLike, &artworkID); err != nil {
			slog.WarnContext(ctx, "like notification failed", slog.String("error", err.Error()))
		}
	}
	return &models.ToggleResult{Active: active, Count: count}, nil
}

// ToggleSave flips the viewer's private save. Saves never notify.
func (s *InteractionService) ToggleSave(ctx context.Context, userID, artworkID uint) (*models.ToggleResult, error) {
	artwork, err := s.artworks.GetByID(ctx, artworkID, 0)
	if err != nil {
		return nil, models.NewInternalError("failed to load artwork", err)
	}
	if artwork == nil {
		return nil, models.NewNotFoundError("artwork not found", nil)
	}

	active, count, err := s.interactions.ToggleSave(ctx, userID, artworkID)
	if err != nil {
		return nil, models.NewInternalError("failed to toggle save", err)
	}
	observability.ToggleOperations.WithLabelValues("save", toggleAction(active)).Inc()

	return &models.ToggleResult{Active: active, Count: count}, nil
}

// ToggleFollow flips the follow edge toward another artist. Following
// yourself is rejected. Following notifies the followee.
func (s *InteractionService) ToggleFollow(ctx context.Context, followerID, followeeID uint) (*models.ToggleResult, error) {
	if followerID == followeeID {
		return nil, models.NewValidationError("you cannot follow yourself", nil)
	}

	followee, err := s.users.GetByID(ctx, followeeID)
	if err != nil {
		return nil, models.NewInternalError("failed to load user", err)
	}
	if followee == nil {
		return nil, models.NewNotFoundError("user not found", nil)
	}

	active, count, err := s.interactions.ToggleFollow(ctx, followerID, followeeID)
	if err != nil {
		return nil, models.NewInternalError("failed to toggle follow", err)
	}
	observability.ToggleOperations.WithLabelValues("follow", toggleAction(active)).Inc()

	if active && s.notifier != nil {
		if err := s.notifier.Notify(ctx, followeeID, followerID, models.NotificationKindFollow, nil); err != nil {
			slog.WarnContext(ctx, "follow notification failed", slog.String("error", err.Error()))
		}
	}
	return &models.ToggleResult{Active: active, Count: count}, nil
}

// Followers lists the users following userID, newest first.
func (s *InteractionService) Followers(ctx context.Context, userID uint, page, pageSize int) (*models.Page, error) {
	offset := (page - 1) * pageSize
	users, total, err := s.interactions.ListFollowers(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, models.NewInternalError("failed to list followers", err)
	}
	p := models.NewPage(summarize(users), page, pageSize, total)
	return &p, nil
}

// Following lists the users userID follows, newest first.
func (s *InteractionService) Following(ctx context.Context, userID uint, page, pageSize int) (*models.Page, error) {
	offset := (page - 1) * pageSize
	users, total, err := s.interactions.ListFollowing(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, models.NewInternalError("failed to list following", err)
	}
	p := models.NewPage(summarize(users), page, pageSize, total)
	return &p, nil
}

func summarize(users []models.User) []models.AuthorSummary {
	out := make([]models.AuthorSummary, len(users))
	for i := range users {
		out[i] = models.NewAuthorSummary(&users[i])
	}
	return out
}
