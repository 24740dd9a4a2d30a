// Package notifications persists in-app notifications and fans them out
// over Redis pub/sub for connected clients.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"artspace/internal/models"
	"artspace/internal/observability"
	"artspace/internal/repository"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix is the per-user pub/sub channel. Subscribers listen on
// notify:user:<id>.
const ChannelPrefix = "notify:user:%d"

// Notifier stores notification rows and publishes them. Publishing is
// best-effort: a Redis outage never fails the interaction that
// triggered the notification.
type Notifier struct {
	repo  repository.NotificationRepository
	redis *redis.Client
}

// NewNotifier creates a notifier. A nil Redis client disables pub/sub
// fan-out but keeps row persistence.
func NewNotifier(repo repository.NotificationRepository, rdb *redis.Client) *Notifier {
	return &Notifier{repo: repo, redis: rdb}
}

// Notify records a notification for userID about actorID's action. It
// drops self-notifications so users never hear about their own likes
// and comments.
func (n *Notifier) Notify(ctx context.Context, userID, actorID uint, kind string, artworkID *uint) error {
	if userID == actorID {
		return nil
	}

	row := &models.Notification{
		UserID:    userID,
		ActorID:   actorID,
		Kind:      kind,
		ArtworkID: artworkID,
	}
	if err := n.repo.Create(ctx, row); err != nil {
		return err
	}

	n.publish(ctx, row)
	observability.NotificationsPublished.WithLabelValues(kind).Inc()
	return nil
}

func (n *Notifier) publish(ctx context.Context, row *models.Notification) {
	if n.redis == nil {
		return
	}
	payload, err := json.Marshal(row)
	if err != nil {
		return
	}
	channel := fmt.Sprintf(ChannelPrefix, row.UserID)
	if err := n.redis.Publish(ctx, channel, payload).Err(); err != nil {
		slog.WarnContext(ctx, "notification publish failed",
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
	}
}
