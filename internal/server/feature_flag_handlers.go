package server

import (
	"artspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/admin/feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return models.RespondData(c, fiber.Map{"flags": s.featureFlags.Snapshot()})
}

// SetFeatureFlag handles PUT /api/admin/feature-flags/:name
func (s *Server) SetFeatureFlag(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return models.RespondBadRequest(c, "Invalid flag name")
	}

	var req struct {
		Enabled bool `json:"enabled"`
		Rollout *int `json:"rollout"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondBadRequest(c, "Invalid request body")
	}

	rollout := 100
	if req.Rollout != nil {
		rollout = *req.Rollout
	}
	s.featureFlags.Set(name, req.Enabled, rollout)

	return models.RespondData(c, fiber.Map{"flags": s.featureFlags.Snapshot()})
}
