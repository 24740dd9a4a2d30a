// Package models contains the domain models for the application.
package models

import "time"

// User represents an artist account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:20;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	DisplayName  string    `json:"display_name" gorm:"size:80"`
	Bio          string    `json:"bio" gorm:"size:500"`
	Age          *int      `json:"age,omitempty"`
	AvatarURL    string    `json:"avatar_url" gorm:"size:512"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayOrUsername returns the display name, falling back to the username.
func (u *User) DisplayOrUsername() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
