package server

import (
	"artspace/internal/models"
	"artspace/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetArtworks handles GET /api/artworks — the public explore feed.
// Query: sort (trending|popular|latest), tag, category, q, page, page_size.
func (s *Server) GetArtworks(c *fiber.Ctx) error {
	p := parsePage(c)

	page, err := s.feedService.Explore(c.Context(), viewerID(c), service.ExploreQuery{
		Sort:     c.Query("sort"),
		Tag:      c.Query("tag"),
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}, p.Page, p.PageSize)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, page)
}

// GetFeed handles GET /api/feed — the personal feed. With
// following_only=true it restricts to followed authors plus the viewer;
// otherwise it mirrors explore.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p := parsePage(c)
	viewer := viewerID(c)

	if c.QueryBool("following_only", false) {
		if viewer == 0 {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Sign in to see your feed", nil))
		}
		page, err := s.feedService.Following(c.Context(), viewer, c.Query("sort", "latest"), c.Query("category"), p.Page, p.PageSize)
		if err != nil {
			return models.RespondWithError(c, err)
		}
		return models.RespondData(c, page)
	}

	page, err := s.feedService.Explore(c.Context(), viewer, service.ExploreQuery{
		Sort:     c.Query("sort"),
		Tag:      c.Query("tag"),
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}, p.Page, p.PageSize)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, page)
}

// GetArtworkDetail handles GET /api/artworks/:id. Reading the detail
// page counts as a view.
func (s *Server) GetArtworkDetail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, svcErr := s.feedService.Detail(c.Context(), id, viewerID(c))
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondData(c, view)
}

// GetTags handles GET /api/tags — the trending tags strip.
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagService.Trending(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, fiber.Map{"tags": tags})
}
