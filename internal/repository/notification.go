package repository

import (
	"context"

	"artspace/internal/models"
	"artspace/internal/observability"

	"gorm.io/gorm"
)

// NotificationRepository handles notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	done := observability.TrackQuery("insert", "notifications")
	defer done()
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error) {
	done := observability.TrackQuery("select", "notifications")
	defer done()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := r.db.WithContext(ctx).Preload("Actor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	done := observability.TrackQuery("count", "notifications")
	defer done()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	done := observability.TrackQuery("update", "notifications")
	defer done()

	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
