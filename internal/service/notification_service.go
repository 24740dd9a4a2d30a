package service

import (
	"context"
	"time"

	"artspace/internal/models"
	"artspace/internal/repository"
)

// NotificationView is a notification rendered for the API.
type NotificationView struct {
	ID        uint                 `json:"id"`
	Actor     models.AuthorSummary `json:"actor"`
	Kind      string               `json:"kind"`
	ArtworkID *uint                `json:"artwork_id,omitempty"`
	Read      bool                 `json:"read"`
	TimeAgo   string               `json:"time_ago"`
	CreatedAt time.Time            `json:"created_at"`
}

// NotificationService serves the in-app notification feed.
type NotificationService struct {
	notifications repository.NotificationRepository
	now           func() time.Time
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications, now: time.Now}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, page, pageSize int) (*models.Page, error) {
	offset := (page - 1) * pageSize
	rows, total, err := s.notifications.ListByUser(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, models.NewInternalError("failed to list notifications", err)
	}

	now := s.now()
	views := make([]NotificationView, len(rows))
	for i, n := range rows {
		views[i] = NotificationView{
			ID:        n.ID,
			Actor:     models.NewAuthorSummary(n.Actor),
			Kind:      n.Kind,
			ArtworkID: n.ArtworkID,
			Read:      n.Read,
			TimeAgo:   models.TimeAgo(n.CreatedAt, now),
			CreatedAt: n.CreatedAt,
		}
	}
	p := models.NewPage(views, page, pageSize, total)
	return &p, nil
}

// UnreadCount returns how many notifications are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return 0, models.NewInternalError("failed to count notifications", err)
	}
	return count, nil
}

// MarkAllRead marks every notification read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return models.NewInternalError("failed to mark notifications read", err)
	}
	return nil
}
