package server

import (
	"artspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	p := parsePage(c)

	page, err := s.notificationService.List(c.Context(), currentUserID(c), p.Page, p.PageSize)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, page)
}

// GetUnreadCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notificationService.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, fiber.Map{"unread": count})
}

// MarkNotificationsRead handles POST /api/notifications/read
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.Context(), currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessage(c, "Notifications marked read")
}
