package server

import (
	"artspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetConversations handles GET /api/conversations — the inbox.
func (s *Server) GetConversations(c *fiber.Ctx) error {
	p := parsePage(c)

	page, err := s.messageService.Inbox(c.Context(), currentUserID(c), p.Page, p.PageSize)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, page)
}

// SendMessage handles POST /api/conversations — first contact with
// another artist. The thread is created if it does not exist yet.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		RecipientID uint   `json:"recipient_id"`
		Body        string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondBadRequest(c, "Invalid request body")
	}
	if req.RecipientID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("recipient_id is required", nil))
	}

	view, err := s.messageService.Send(c.Context(), currentUserID(c), req.RecipientID, req.Body)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessageData(c, "Message sent", view)
}

// GetMessages handles GET /api/conversations/:id/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePage(c)

	page, svcErr := s.messageService.Thread(c.Context(), id, currentUserID(c), p.Page, p.PageSize)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, page)
}

// ReplyMessage handles POST /api/conversations/:id/messages
func (s *Server) ReplyMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if bodyErr := c.BodyParser(&req); bodyErr != nil {
		return models.RespondBadRequest(c, "Invalid request body")
	}

	userID := currentUserID(c)
	conv, convErr := s.messageRepo.GetConversation(c.Context(), id)
	if convErr != nil {
		return models.RespondWithError(c, models.NewInternalError("failed to load conversation", convErr))
	}
	if conv == nil || !conv.Involves(userID) {
		return models.RespondWithError(c, models.NewNotFoundError("conversation not found", nil))
	}

	view, svcErr := s.messageService.Send(c.Context(), userID, conv.OtherParticipant(userID), req.Body)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondMessageData(c, "Message sent", view)
}
