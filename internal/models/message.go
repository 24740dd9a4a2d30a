package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is a direct-message thread between two users. The pair
// is stored ordered (UserAID < UserBID) so one row exists per pair.
type Conversation struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserAID       uint      `json:"user_a_id" gorm:"uniqueIndex:idx_conversation_pair;not null"`
	UserBID       uint      `json:"user_b_id" gorm:"uniqueIndex:idx_conversation_pair;not null"`
	LastMessageAt time.Time `json:"last_message_at" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate normalizes the pair ordering before insert.
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.UserAID > c.UserBID {
		c.UserAID, c.UserBID = c.UserBID, c.UserAID
	}
	return nil
}

// OtherParticipant returns the counterpart of the given user in the thread.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// Involves reports whether the user is one of the two participants.
func (c *Conversation) Involves(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// Message is a single direct message inside a conversation. ReadAt is
// set when the recipient opens the thread.
type Message struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ConversationID uint       `json:"conversation_id" gorm:"index;not null"`
	SenderID       uint       `json:"sender_id" gorm:"not null"`
	Body           string     `json:"body" gorm:"size:2000;not null"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
}
