package models

import "time"

// Like records a user liking an artwork. The composite unique index is
// the idempotency anchor for the toggle path: inserts race through
// ON CONFLICT DO NOTHING against it.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_like_pair;not null"`
	ArtworkID uint      `json:"artwork_id" gorm:"uniqueIndex:idx_like_pair;index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Save records a user bookmarking an artwork into their private collection.
type Save struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_save_pair;not null"`
	ArtworkID uint      `json:"artwork_id" gorm:"uniqueIndex:idx_save_pair;index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow records one user following another. Self-follows are rejected
// at the service layer.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"uniqueIndex:idx_follow_pair;not null"`
	FolloweeID uint      `json:"followee_id" gorm:"uniqueIndex:idx_follow_pair;index;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
