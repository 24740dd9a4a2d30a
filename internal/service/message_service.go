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

// MaxMessageLength caps direct-message bodies.
const MaxMessageLength = 2000

// ConversationView is a thread summary for the inbox.
type ConversationView struct {
	ID            uint                 `json:"id"`
	Participant   models.AuthorSummary `json:"participant"`
	LastMessageAt time.Time            `json:"last_message_at"`
}

// MessageView is a message rendered for the API.
type MessageView struct {
	ID        uint       `json:"id"`
	SenderID  uint       `json:"sender_id"`
	Body      string     `json:"body"`
	TimeAgo   string     `json:"time_ago"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// MessageService owns direct-message threads between artists.
type MessageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	notifier *notifications.Notifier
	now      func() time.Time
}

// NewMessageService creates a new message service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, notifier *notifications.Notifier) *MessageService {
	return &MessageService{messages: messages, users: users, notifier: notifier, now: time.Now}
}

// Send delivers a message to another user, creating the thread on
// first contact.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uint, body string) (*MessageView, error) {
	if senderID == recipientID {
		return nil, models.NewValidationError("you cannot message yourself", nil)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("message cannot be empty", nil)
	}
	if len(body) > MaxMessageLength {
		return nil, models.NewValidationError("message must be at most 2000 characters", nil)
	}

	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil {
		return nil, models.NewInternalError("failed to load recipient", err)
	}
	if recipient == nil {
		return nil, models.NewNotFoundError("user not found", nil)
	}

	conv, err := s.messages.GetOrCreateConversation(ctx, senderID, recipientID)
	if err != nil {
		return nil, models.NewInternalError("failed to open conversation", err)
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, models.NewInternalError("failed to send message", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, recipientID, senderID, models.NotificationKindMessage, nil); err != nil {
			slog.WarnContext(ctx, "message notification failed", slog.String("error", err.Error()))
		}
	}

	return &MessageView{
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Body:      msg.Body,
		TimeAgo:   models.TimeAgo(msg.CreatedAt, s.now()),
		CreatedAt: msg.CreatedAt,
	}, nil
}

// Inbox lists the caller's threads, most recently active first.
func (s *MessageService) Inbox(ctx context.Context, userID uint, page, pageSize int) (*models.Page, error) {
	offset := (page - 1) * pageSize
	convs, total, err := s.messages.ListConversations(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, models.NewInternalError("failed to list conversations", err)
	}

	views := make([]ConversationView, len(convs))
	for i, conv := range convs {
		other, err := s.users.GetByID(ctx, conv.OtherParticipant(userID))
		if err != nil {
			return nil, models.NewInternalError("failed to load participant", err)
		}
		views[i] = ConversationView{
			ID:            conv.ID,
			Participant:   models.NewAuthorSummary(other),
			LastMessageAt: conv.LastMessageAt,
		}
	}
	p := models.NewPage(views, page, pageSize, total)
	return &p, nil
}

// Thread lists one conversation's messages, newest first. Only its two
// participants may read it.
func (s *MessageService) Thread(ctx context.Context, conversationID, userID uint, page, pageSize int) (*models.Page, error) {
	conv, err := s.messages.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, models.NewInternalError("failed to load conversation", err)
	}
	if conv == nil || !conv.Involves(userID) {
		// Hide existence from non-participants.
		return nil, models.NewNotFoundError("conversation not found", nil)
	}

	// Opening the thread counts as reading it.
	if err := s.messages.MarkThreadRead(ctx, conversationID, userID); err != nil {
		slog.WarnContext(ctx, "mark thread read failed", slog.String("error", err.Error()))
	}

	offset := (page - 1) * pageSize
	msgs, total, err := s.messages.ListMessages(ctx, conversationID, offset, pageSize)
	if err != nil {
		return nil, models.NewInternalError("failed to list messages", err)
	}

	now := s.now()
	views := make([]MessageView, len(msgs))
	for i, m := range msgs {
		views[i] = MessageView{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Body:      m.Body,
			TimeAgo:   models.TimeAgo(m.CreatedAt, now),
			CreatedAt: m.CreatedAt,
			ReadAt:    m.ReadAt,
		}
	}
	p := models.NewPage(views, page, pageSize, total)
	return &p, nil
}
