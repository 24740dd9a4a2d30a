package models

import "time"

// Notification kinds
const (
	NotificationKindLike    = "like"
	NotificationKindComment = "comment"
	NotificationKindFollow  = "follow"
	NotificationKindMessage = "message"
)

// Notification is an in-app notification row. A copy of each one is
// also published over Redis pub/sub for connected clients.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	ActorID   uint      `json:"actor_id" gorm:"not null"`
	Actor     *User     `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
	Kind      string    `json:"kind" gorm:"size:20;not null"`
	ArtworkID *uint     `json:"artwork_id,omitempty"`
	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
