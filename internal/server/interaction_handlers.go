package server

import (
	"artspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

func toggleActionLabel(active bool, on, off string) string {
	if active {
		return on
	}
	return off
}

// LikeArtwork handles POST /api/artworks/:id/like — an idempotent
// toggle. The same call likes or unlikes depending on current state.
func (s *Server) LikeArtwork(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, svcErr := s.interactionService.ToggleLike(c.Context(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, fiber.Map{
		"action":      toggleActionLabel(result.Active, "liked", "unliked"),
		"liked":       result.Active,
		"likes_count": result.Count,
	})
}

// SaveArtwork handles POST /api/artworks/:id/save — an idempotent
// toggle on the viewer's private collection.
func (s *Server) SaveArtwork(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, svcErr := s.interactionService.ToggleSave(c.Context(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, fiber.Map{
		"action": toggleActionLabel(result.Active, "saved", "unsaved"),
		"saved":  result.Active,
	})
}

// FollowArtist handles POST /api/artists/:id/follow — an idempotent
// toggle on the follow edge.
func (s *Server) FollowArtist(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, svcErr := s.interactionService.ToggleFollow(c.Context(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, fiber.Map{
		"action":         toggleActionLabel(result.Active, "followed", "unfollowed"),
		"following":      result.Active,
		"follower_count": result.Count,
	})
}

// GetFollowers handles GET /api/artists/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePage(c)

	page, svcErr := s.interactionService.Followers(c.Context(), id, p.Page, p.PageSize)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, page)
}

// GetFollowing handles GET /api/artists/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePage(c)

	page, svcErr := s.interactionService.Following(c.Context(), id, p.Page, p.PageSize)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, page)
}
