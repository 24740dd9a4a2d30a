package server

import (
	"artspace/internal/models"
	"artspace/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	profile, err := s.userService.ProfileByID(c.Context(), userID, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, profile)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName string `json:"display_name"`
		Bio         string `json:"bio"`
		Age         *int   `json:"age"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondBadRequest(c, "Invalid request body")
	}

	profile, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), service.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Age:         req.Age,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessageData(c, "Profile updated", profile)
}

// GetArtistProfile handles GET /api/artists/:id. The ID segment also
// accepts a username so profile links work both ways.
func (s *Server) GetArtistProfile(c *fiber.Ctx) error {
	viewer := viewerID(c)

	if id, err := c.ParamsInt("id"); err == nil && id > 0 {
		profile, svcErr := s.userService.ProfileByID(c.Context(), uint(id), viewer)
		if svcErr != nil {
			return models.RespondWithError(c, svcErr)
		}
		return models.RespondData(c, profile)
	}

	profile, err := s.userService.ProfileByUsername(c.Context(), c.Params("id"), viewer)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, profile)
}

// SetUserRole handles PUT /api/admin/users/:id/role — admin
// promote/demote.
func (s *Server) SetUserRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		IsAdmin bool `json:"is_admin"`
	}
	if bodyErr := c.BodyParser(&req); bodyErr != nil {
		return models.RespondBadRequest(c, "Invalid request body")
	}

	profile, svcErr := s.userService.SetAdmin(c.Context(), id, req.IsAdmin)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondMessageData(c, "Role updated", profile)
}
