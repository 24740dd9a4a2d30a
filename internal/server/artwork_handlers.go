package server

import (
	"strings"

	"artspace/internal/models"
	"artspace/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateArtwork handles POST /api/artworks. Tags arrive either as a
// JSON array or a comma-joined string; the relational split happens
// here at the boundary.
func (s *Server) CreateArtwork(c *fiber.Ctx) error {
	var req struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		ImageURL        string   `json:"image_url"`
		Category        string   `json:"category"`
		UsedAI          bool     `json:"used_ai"`
		AITools         string   `json:"ai_tools"`
		NSFW            bool     `json:"nsfw"`
		CommentsEnabled *bool    `json:"comments_enabled"`
		Tags            []string `json:"tags"`
		TagString       string   `json:"tag_string"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondBadRequest(c, "Invalid request body")
	}

	tags := req.Tags
	if len(tags) == 0 && req.TagString != "" {
		tags = strings.Split(req.TagString, ",")
	}

	commentsEnabled := true
	if req.CommentsEnabled != nil {
		commentsEnabled = *req.CommentsEnabled
	}

	view, err := s.feedService.Create(c.Context(), currentUserID(c), service.CreateArtworkInput{
		Title:           req.Title,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		Category:        req.Category,
		UsedAI:          req.UsedAI,
		AITools:         req.AITools,
		NSFW:            req.NSFW,
		CommentsEnabled: commentsEnabled,
		Tags:            tags,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessageData(c, "Artwork published", view)
}

// UpdateArtwork handles PUT /api/artworks/:id
func (s *Server) UpdateArtwork(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		Category        string `json:"category"`
		UsedAI          bool   `json:"used_ai"`
		AITools         string `json:"ai_tools"`
		NSFW            bool   `json:"nsfw"`
		CommentsEnabled bool   `json:"comments_enabled"`
	}
	if bodyErr := c.BodyParser(&req); bodyErr != nil {
		return models.RespondBadRequest(c, "Invalid request body")
	}

	view, svcErr := s.feedService.Update(c.Context(), id, currentUserID(c), service.UpdateArtworkInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		UsedAI:          req.UsedAI,
		AITools:         req.AITools,
		NSFW:            req.NSFW,
		CommentsEnabled: req.CommentsEnabled,
	})
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, view)
}

// DeleteArtwork handles DELETE /api/artworks/:id
func (s *Server) DeleteArtwork(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.feedService.Delete(c.Context(), id, currentUserID(c)); svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondMessage(c, "Artwork deleted")
}

// GetArtistArtworks handles GET /api/artists/:id/artworks
func (s *Server) GetArtistArtworks(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePage(c)

	page, svcErr := s.feedService.ByUser(c.Context(), id, viewerID(c), p.Page, p.PageSize)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, page)
}

// GetSavedArtworks handles GET /api/users/me/saved
func (s *Server) GetSavedArtworks(c *fiber.Ctx) error {
	p := parsePage(c)

	page, err := s.feedService.Saved(c.Context(), currentUserID(c), p.Page, p.PageSize)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, page)
}
