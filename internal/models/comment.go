package models

import "time"

// Comment is a user's comment on an artwork.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ArtworkID uint      `json:"artwork_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Body      string    `json:"body" gorm:"size:2000;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
