package repository

import (
	"context"
	"errors"
	"time"

	"artspace/internal/models"
	"artspace/internal/observability"

	"gorm.io/gorm"
)

// MessageRepository handles direct-message threads.
type MessageRepository interface {
	GetOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID uint, offset, limit int) ([]models.Conversation, int64, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, conversationID uint, offset, limit int) ([]models.Message, int64, error)
	MarkThreadRead(ctx context.Context, conversationID, readerID uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) GetOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	done := observability.TrackQuery("upsert", "conversations")
	defer done()

	if userA > userB {
		userA, userB = userB, userA
	}

	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", userA, userB).
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{UserAID: userA, UserBID: userB, LastMessageAt: time.Now()}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *messageRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	done := observability.TrackQuery("select", "conversations")
	defer done()

	var conv models.Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *messageRepository) ListConversations(ctx context.Context, userID uint, offset, limit int) ([]models.Conversation, int64, error) {
	done := observability.TrackQuery("select", "conversations")
	defer done()

	q := r.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var convs []models.Conversation
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("last_message_at DESC").
		Offset(offset).Limit(limit).
		Find(&convs).Error
	return convs, total, err
}

func (r *messageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	done := observability.TrackQuery("insert", "messages")
	defer done()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", msg.CreatedAt).Error
	})
}

func (r *messageRepository) ListMessages(ctx context.Context, conversationID uint, offset, limit int) ([]models.Message, int64, error) {
	done := observability.TrackQuery("select", "messages")
	defer done()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&msgs).Error
	return msgs, total, err
}

// MarkThreadRead stamps read_at on the other participant's unread
// messages when the reader opens the thread.
func (r *messageRepository) MarkThreadRead(ctx context.Context, conversationID, readerID uint) error {
	done := observability.TrackQuery("update", "messages")
	defer done()

	return r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, readerID).
		Update("read_at", time.Now()).Error
}
