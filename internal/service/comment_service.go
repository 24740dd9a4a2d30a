package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"artspace/internal/models"
	"artspace/internal/notifications"
	"artspace/internal/repository"
)

// MaxCommentLength caps comment bodies.
const MaxCommentLength = 2000

// CommentService owns the comment lifecycle.
type CommentService struct {
	comments repository.CommentRepository
	artworks repository.ArtworkRepository
	users    repository.UserRepository
	notifier *notifications.Notifier
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
	now      func() time.Time
}

// NewCommentService creates a new comment service.
func NewCommentService(
	comments repository.CommentRepository,
	artworks repository.ArtworkRepository,
	users repository.UserRepository,
	notifier *notifications.Notifier,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		comments: comments,
		artworks: artworks,
		users:    users,
		notifier: notifier,
		isAdmin:  isAdmin,
		now:      time.Now,
	}
}

// Add posts a comment on an artwork. The artwork must exist and have
// comments enabled. The artwork's owner is notified.
func (s *CommentService) Add(ctx context.Context, userID, artworkID uint, body string) (*models.CommentView, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("comment cannot be empty", nil)
	}
	if len(body) > MaxCommentLength {
		return nil, models.NewValidationError("comment must be at most 2000 characters", nil)
	}

	artwork, err := s.artworks.GetByID(ctx, artworkID, 0)
	if err != nil {
		return nil, models.NewInternalError("failed to load artwork", err)
	}
	if artwork == nil {
		return nil, models.NewNotFoundError("artwork not found", nil)
	}
	if !artwork.CommentsEnabled {
		return nil, models.NewValidationError("comments are disabled on this artwork", nil)
	}

	comment := &models.Comment{
		ArtworkID: artworkID,
		UserID:    userID,
		Body:      body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError("failed to create comment", err)
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError("failed to load comment author", err)
	}
	comment.User = author

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, artwork.UserID, userID, models.NotificationKindComment, &artworkID); err != nil {
			slog.WarnContext(ctx, "comment notification failed", slog.String("error", err.Error()))
		}
	}

	view := models.NewCommentView(comment, s.now())
	return &view, nil
}

// List returns an artwork's comments newest first.
func (s *CommentService) List(ctx context.Context, artworkID uint, page, pageSize int) (*models.Page, error) {
	artwork, err := s.artworks.GetByID(ctx, artworkID, 0)
	if err != nil {
		return nil, models.NewInternalError("failed to load artwork", err)
	}
	if artwork == nil {
		return nil, models.NewNotFoundError("artwork not found", nil)
	}

	offset := (page - 1) * pageSize
	comments, total, err := s.comments.ListByArtwork(ctx, artworkID, offset, pageSize)
	if err != nil {
		return nil, models.NewInternalError("failed to list comments", err)
	}

	now := s.now()
	views := make([]models.CommentView, len(comments))
	for i := range comments {
		views[i] = models.NewCommentView(&comments[i], now)
	}
	p := models.NewPage(views, page, pageSize, total)
	return &p, nil
}

// Delete removes a comment. The comment's author, the artwork's owner,
// and admins may delete.
func (s *CommentService) Delete(ctx context.Context, commentID, requesterID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return models.NewInternalError("failed to load comment", err)
	}
	if comment == nil {
		return models.NewNotFoundError("comment not found", nil)
	}

	allowed := comment.UserID == requesterID
	if !allowed {
		artwork, err := s.artworks.GetByID(ctx, comment.ArtworkID, 0)
		if err != nil {
			return models.NewInternalError("failed to load artwork", err)
		}
		allowed = artwork != nil && artwork.UserID == requesterID
	}
	if !allowed {
		admin, err := s.isAdmin(ctx, requesterID)
		if err != nil {
			return models.NewInternalError("failed to check permissions", err)
		}
		allowed = admin
	}
	if !allowed {
		return models.NewForbiddenError("you do not have permission to delete this comment", nil)
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return models.NewInternalError("failed to delete comment", err)
	}
	return nil
}
