package server

import (
	"artspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /api/artworks/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
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

	view, svcErr := s.commentService.Add(c.Context(), currentUserID(c), id, req.Body)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondMessageData(c, "Comment added", view)
}

// GetComments handles GET /api/artworks/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePage(c)

	page, svcErr := s.commentService.List(c.Context(), id, p.Page, p.PageSize)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, page)
}

// DeleteComment handles DELETE /api/artworks/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	if _, err := s.parseID(c, "id"); err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if svcErr := s.commentService.Delete(c.Context(), commentID, currentUserID(c)); svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondMessage(c, "Comment deleted")
}
